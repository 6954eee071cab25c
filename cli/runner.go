package cli

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/viant/scy/auth/authorizer"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(options.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	clientConfig, err := loadClientConfig(ctx, options)
	if err != nil {
		return err
	}
	srv, err := New(ctx, options, clientConfig, logger)
	if err != nil {
		return err
	}
	return srv.Do(ctx)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadClientConfig(ctx context.Context, options *Options) (*oauth2.Config, error) {
	configURL := options.OAuth2ConfigURL
	if options.EncryptionKey != "" {
		configURL += "|" + options.EncryptionKey
	}
	auth := authorizer.New()
	oAuthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := auth.EnsureConfig(ctx, oAuthConfig); err != nil {
		return nil, fmt.Errorf("failed to load oauth2 config %v: %w", options.OAuth2ConfigURL, err)
	}
	return oAuthConfig.Config, nil
}
