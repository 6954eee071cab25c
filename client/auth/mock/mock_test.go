package mock

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestAuthorizationService_CodeFlow(t *testing.T) {
	server, err := NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	config := NewTestClient(server.Issuer)
	verifier := oauth2.GenerateVerifier()
	authURL := config.AuthCodeURL("state-1", oauth2.S256ChallengeOption(verifier), oauth2.SetAuthURLParam("scope", "api.read"))

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(authURL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "state-1", location.Query().Get("state"))

	ctx := context.Background()
	_, err = config.Exchange(ctx, location.Query().Get("code"), oauth2.VerifierOption("wrong"))
	assert.Error(t, err, "code is single use and verifier must match")

	resp, err = client.Get(authURL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	location, err = url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	token, err := config.Exchange(ctx, location.Query().Get("code"), oauth2.VerifierOption(verifier))
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.NotEmpty(t, token.Extra("id_token"))
	assert.Equal(t, 2, server.AuthorizeRequests())
	assert.Equal(t, 2, server.CodeRequests())

	req, err := http.NewRequest(http.MethodGet, server.Issuer+"/api/azure/items", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthorizationService_Refresh(t *testing.T) {
	server, err := NewHTTPTestAuthorizationServer(WithExpiresIn(time.Minute))
	require.NoError(t, err)
	defer server.Close()

	config := NewTestClient(server.Issuer)
	ctx := context.Background()
	token, err := config.Exchange(ctx, TestAuthorizationCode)
	require.NoError(t, err)

	expired := &oauth2.Token{RefreshToken: token.RefreshToken, Expiry: time.Now().Add(-time.Minute)}
	refreshed, err := config.TokenSource(ctx, expired).Token()
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, 1, server.RefreshRequests())

	server.FailRefresh(true)
	_, err = config.TokenSource(ctx, expired).Token()
	assert.Error(t, err)
}
