package bearer

import (
	"errors"
	"net/http"

	"github.com/viant/bearer/client/auth/service"
	"github.com/viant/bearer/client/auth/transport"
	"github.com/viant/bearer/config"
)

// NewClient returns an HTTP client whose transport attaches bearer tokens as configured.
// Options are applied after the ones implied by cfg.
func NewClient(cfg *config.Config, srv service.Service, options ...transport.Option) (*http.Client, error) {
	if cfg == nil {
		return nil, errors.New("config was empty")
	}
	cfgOptions, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	roundTripper, err := transport.New(&cfg.Config, srv, append(cfgOptions, options...)...)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: roundTripper}, nil
}
