package cli

type Options struct {
	ConfigURL       string   `short:"c" long:"config" description:"interceptor config URL" required:"true"`
	OAuth2ConfigURL string   `short:"o" long:"oauth2" description:"oauth2 client config URL" required:"true"`
	EncryptionKey   string   `short:"k" long:"key" description:"oauth2 config encryption key"`
	URL             string   `short:"u" long:"url" description:"request URL" required:"true"`
	Method          string   `short:"X" long:"method" description:"request method" default:"GET"`
	Data            string   `short:"d" long:"data" description:"request body"`
	Headers         []string `short:"H" long:"header" description:"request header 'Name: value'"`
	StorePath       string   `short:"s" long:"store" description:"token store file"`
	Verbose         bool     `short:"v" long:"verbose" description:"debug logging"`
}
