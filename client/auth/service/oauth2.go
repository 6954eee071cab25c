package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/viant/bearer/client/auth/account"
	"github.com/viant/bearer/client/auth/store"
	"github.com/viant/scy/auth/flow"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// OAuth2 is a Service backed by an OAuth2 authorization code client.
type OAuth2 struct {
	config      *oauth2.Config
	store       store.Store
	popup       flow.AuthFlow
	navigator   Navigator
	redirectURI string
	logger      *zap.Logger
	group       singleflight.Group
	mux         sync.Mutex
	pending     map[string]*pendingRedirect
}

// New creates an OAuth2 service for the client config.
func New(config *oauth2.Config, options ...Option) (*OAuth2, error) {
	if config == nil {
		return nil, errors.New("oauth2 config was empty")
	}
	ret := &OAuth2{
		config:  config,
		store:   store.NewMemoryStore(),
		popup:   flow.NewBrowserFlow(),
		logger:  zap.NewNop(),
		pending: map[string]*pendingRedirect{},
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

// Store returns the account and token store.
func (s *OAuth2) Store() store.Store {
	return s.store
}

func (s *OAuth2) ActiveAccount() *account.Account {
	return s.store.ActiveAccount()
}

func (s *OAuth2) Accounts() []*account.Account {
	return s.store.Accounts()
}

// SetActiveAccount selects the account used by default.
func (s *OAuth2) SetActiveAccount(anAccount *account.Account) error {
	return s.store.SetActiveAccount(anAccount)
}

func (s *OAuth2) AcquireTokenSilent(ctx context.Context, request *SilentRequest) (*Result, error) {
	if request == nil || request.Account == nil {
		return nil, ErrNoAccount
	}
	key := store.NewTokenKey(request.Account, request.Scopes)
	groupKey := key.Account + "|" + key.Scopes
	if request.ForceRefresh {
		groupKey += "|refresh"
	}
	// a caller's cancellation ends only its own wait
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(groupKey, func() (interface{}, error) {
		return s.acquireTokenSilent(shared, request, key)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrInteractionRequired, ctx.Err())
	case ret := <-ch:
		if ret.Err != nil {
			return nil, ret.Err
		}
		return ret.Val.(*Result), nil
	}
}

func (s *OAuth2) acquireTokenSilent(ctx context.Context, request *SilentRequest, key store.TokenKey) (*Result, error) {
	cached, _ := s.store.LookupToken(key)
	if cached == nil {
		return nil, fmt.Errorf("%w: no cached token for scopes %q", ErrInteractionRequired, key.Scopes)
	}
	if cached.Valid() && !request.ForceRefresh {
		return newResult(cached, request.Scopes, request.Account, true), nil
	}
	if cached.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token expired for scopes %q", ErrInteractionRequired, key.Scopes)
	}
	refreshed, err := s.refreshToken(ctx, cached)
	if err != nil {
		s.logger.Debug("Token refresh failed.", zap.String("account", request.Account.String()), zap.String("scopes", key.Scopes), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInteractionRequired, err)
	}
	if err = s.store.AddToken(key, refreshed); err != nil {
		return nil, fmt.Errorf("failed to store refreshed token: %w", err)
	}
	return newResult(refreshed, request.Scopes, request.Account, false), nil
}

func (s *OAuth2) refreshToken(ctx context.Context, cached *oauth2.Token) (*oauth2.Token, error) {
	expired := &oauth2.Token{RefreshToken: cached.RefreshToken, Expiry: time.Unix(1, 0)}
	refreshed, err := s.config.TokenSource(ctx, expired).Token()
	if err != nil {
		return nil, err
	}
	// preserve refresh token if provider omitted it
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cached.RefreshToken
	}
	return refreshed, nil
}

func (s *OAuth2) AcquireTokenPopup(ctx context.Context, request *Request) (*Result, error) {
	if request == nil {
		request = &Request{}
	}
	config := s.interactiveConfig(request)
	token, err := s.popup.Token(ctx, config, flow.WithPKCE(true))
	if err != nil {
		return nil, fmt.Errorf("popup token acquisition failed: %w", err)
	}
	if token == nil {
		return nil, errors.New("popup token acquisition returned no token")
	}
	return s.complete(token, request.Scopes)
}

// interactiveConfig returns a copy of the client config carrying request scopes and extras.
func (s *OAuth2) interactiveConfig(request *Request) *oauth2.Config {
	config := *s.config
	config.Scopes = mergeScopes(request.Scopes, s.config.Scopes)
	if s.redirectURI != "" {
		config.RedirectURL = s.redirectURI
	}
	if params := request.authParams(); len(params) > 0 {
		config.Endpoint.AuthURL = appendQuery(config.Endpoint.AuthURL, params)
	}
	return &config
}

// complete stores the account and token of an interactive acquisition.
func (s *OAuth2) complete(token *oauth2.Token, scopes []string) (*Result, error) {
	anAccount := s.ActiveAccount()
	if idToken, _ := token.Extra("id_token").(string); idToken != "" {
		var err error
		if anAccount, err = account.FromIDToken(idToken); err != nil {
			return nil, err
		}
	}
	if anAccount == nil {
		return nil, errors.New("token response had no id_token and no account is active")
	}
	if err := s.store.AddAccount(anAccount); err != nil {
		return nil, fmt.Errorf("failed to store account: %w", err)
	}
	// the account that just signed in becomes active
	if active := s.store.ActiveAccount(); active == nil || !active.Equal(anAccount) {
		if err := s.store.SetActiveAccount(anAccount); err != nil {
			return nil, err
		}
	}
	if err := s.store.AddToken(store.NewTokenKey(anAccount, scopes), token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	s.logger.Debug("Token acquired interactively.", zap.String("account", anAccount.String()), zap.Strings("scopes", scopes))
	return newResult(token, scopes, anAccount, false), nil
}

func newResult(token *oauth2.Token, scopes []string, anAccount *account.Account, fromCache bool) *Result {
	ret := &Result{
		AccessToken: token.AccessToken,
		TokenType:   token.Type(),
		ExpiresOn:   token.Expiry,
		Scopes:      append([]string(nil), scopes...),
		Account:     anAccount,
		FromCache:   fromCache,
	}
	ret.IDToken, _ = token.Extra("id_token").(string)
	return ret
}

func mergeScopes(scopes []string, defaults []string) []string {
	var ret = make([]string, 0, len(scopes)+len(defaults))
	var seen = map[string]bool{}
	for _, list := range [][]string{scopes, defaults} {
		for _, scope := range list {
			if scope == "" || seen[scope] {
				continue
			}
			seen[scope] = true
			ret = append(ret, scope)
		}
	}
	return ret
}

func appendQuery(URL string, params url.Values) string {
	if strings.Contains(URL, "?") {
		return URL + "&" + params.Encode()
	}
	return URL + "?" + params.Encode()
}
