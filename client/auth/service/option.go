package service

import (
	"github.com/viant/bearer/client/auth/store"
	"github.com/viant/scy/auth/flow"
	"go.uber.org/zap"
)

type Option func(*OAuth2)

// WithStore sets store
func WithStore(store store.Store) Option {
	return func(s *OAuth2) {
		s.store = store
	}
}

// WithPopupFlow sets the interactive flow used for popup acquisition.
func WithPopupFlow(flow flow.AuthFlow) Option {
	return func(s *OAuth2) {
		s.popup = flow
	}
}

// WithNavigator sets the navigator used for redirect acquisition.
func WithNavigator(navigator Navigator) Option {
	return func(s *OAuth2) {
		s.navigator = navigator
	}
}

// WithRedirectURI sets the redirect URI of the redirect flow.
func WithRedirectURI(URI string) Option {
	return func(s *OAuth2) {
		s.redirectURI = URI
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *OAuth2) {
		s.logger = logger
	}
}
