package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/viant/scy/auth/flow"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const pendingRedirectTTL = 10 * time.Minute

type pendingRedirect struct {
	verifier string
	request  *Request
	created  time.Time
}

func (s *OAuth2) AcquireTokenRedirect(ctx context.Context, request *Request) error {
	if s.navigator == nil {
		return errors.New("redirect acquisition requires a navigator")
	}
	if request == nil {
		request = &Request{}
	}
	config := s.interactiveConfig(request)
	state := flow.GenerateCodeVerifier()
	verifier := flow.GenerateCodeVerifier()
	URL := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	s.mux.Lock()
	s.expirePendingIfNeeded()
	s.pending[state] = &pendingRedirect{verifier: verifier, request: request.WithScopes(request.Scopes), created: time.Now()}
	s.mux.Unlock()

	s.logger.Info("Starting redirect token acquisition.", zap.Strings("scopes", request.Scopes), zap.String("startPage", request.RedirectStartPage))
	if err := s.navigator.Navigate(ctx, URL); err != nil {
		s.mux.Lock()
		delete(s.pending, state)
		s.mux.Unlock()
		return fmt.Errorf("failed to navigate to authorization endpoint: %w", err)
	}
	return nil
}

// HandleRedirect completes a redirect flow with the callback URL the identity provider redirected to.
func (s *OAuth2) HandleRedirect(ctx context.Context, callbackURL string) (*RedirectResult, error) {
	callback, err := url.Parse(callbackURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect callback: %w", err)
	}
	query := callback.Query()
	state := query.Get("state")
	s.mux.Lock()
	pending, ok := s.pending[state]
	delete(s.pending, state)
	s.mux.Unlock()
	if !ok || time.Since(pending.created) > pendingRedirectTTL {
		return nil, ErrUnknownState
	}
	if code := query.Get("error"); code != "" {
		if description := query.Get("error_description"); description != "" {
			return nil, fmt.Errorf("authorization failed: %s: %s", code, description)
		}
		return nil, fmt.Errorf("authorization failed: %s", code)
	}
	code := query.Get("code")
	if code == "" {
		return nil, errors.New("redirect callback had no authorization code")
	}
	config := s.interactiveConfig(pending.request)
	token, err := config.Exchange(ctx, code, oauth2.VerifierOption(pending.verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	result, err := s.complete(token, pending.request.Scopes)
	if err != nil {
		return nil, err
	}
	return &RedirectResult{Result: result, StartPage: pending.request.RedirectStartPage}, nil
}

func (s *OAuth2) expirePendingIfNeeded() {
	for state, pending := range s.pending {
		if time.Since(pending.created) > pendingRedirectTTL {
			delete(s.pending, state)
		}
	}
}
