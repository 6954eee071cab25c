package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/viant/bearer"
	"github.com/viant/bearer/client/auth/service"
	"github.com/viant/bearer/client/auth/store"
	"github.com/viant/bearer/client/auth/transport"
	"github.com/viant/bearer/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Service sends the configured request through the bearer interceptor.
type Service struct {
	options *Options
	auth    *service.OAuth2
	client  *http.Client
	logger  *zap.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New builds the command service; serviceOptions are applied after the defaults.
func New(ctx context.Context, options *Options, clientConfig *oauth2.Config, logger *zap.Logger, serviceOptions ...service.Option) (*Service, error) {
	cfg, err := config.Load(ctx, options.ConfigURL)
	if err != nil {
		return nil, err
	}
	ret := &Service{options: options, logger: logger, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}

	var aStore store.Store = store.NewMemoryStore()
	if options.StorePath != "" {
		if aStore, err = store.NewFileStore(options.StorePath); err != nil {
			return nil, fmt.Errorf("failed to open token store %v: %w", options.StorePath, err)
		}
	}
	authOptions := []service.Option{
		service.WithStore(aStore),
		service.WithLogger(logger),
		service.WithNavigator(service.NavigatorFunc(func(ctx context.Context, URL string) error {
			return service.NewWriterNavigator(ret.stderr).Navigate(ctx, URL)
		})),
	}
	if cfg.RedirectURI != "" {
		authOptions = append(authOptions, service.WithRedirectURI(cfg.RedirectURI))
	}
	if ret.auth, err = service.New(clientConfig, append(authOptions, serviceOptions...)...); err != nil {
		return nil, err
	}
	if ret.client, err = bearer.NewClient(cfg, ret.auth, transport.WithLogger(logger)); err != nil {
		return nil, err
	}
	return ret, nil
}

// Do sends the request, completing a redirect flow when one is started.
func (s *Service) Do(ctx context.Context) error {
	resp, err := s.send(ctx)
	if errors.Is(err, transport.ErrRedirectInProgress) {
		if err = s.completeRedirect(ctx); err != nil {
			return err
		}
		resp, err = s.send(ctx)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err = io.Copy(s.stdout, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%v %v: %v", s.options.Method, s.options.URL, resp.Status)
	}
	return nil
}

func (s *Service) send(ctx context.Context) (*http.Response, error) {
	var body io.Reader
	if s.options.Data != "" {
		body = strings.NewReader(s.options.Data)
	}
	method := s.options.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, s.options.URL, body)
	if err != nil {
		return nil, err
	}
	for _, header := range s.options.Headers {
		name, value, ok := strings.Cut(header, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", header)
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return s.client.Do(req)
}

func (s *Service) completeRedirect(ctx context.Context) error {
	_, _ = fmt.Fprintln(s.stderr, "Paste the URL you were redirected to:")
	line, err := bufio.NewReader(s.stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("failed to read redirect URL: %w", err)
	}
	result, err := s.auth.HandleRedirect(ctx, strings.TrimSpace(line))
	if err != nil {
		return err
	}
	s.logger.Info("Signed in.", zap.String("account", result.Account.String()), zap.String("startPage", result.StartPage))
	return nil
}
