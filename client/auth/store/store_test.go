package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bearer/client/auth/account"
	"golang.org/x/oauth2"
)

func TestScopeKey(t *testing.T) {
	var testCases = []struct {
		description string
		scopes      []string
		expect      string
	}{
		{description: "sorted", scopes: []string{"User.Read", "openid"}, expect: "openid user.read"},
		{description: "deduplicated", scopes: []string{"a", "A", " a "}, expect: "a"},
		{description: "empty", scopes: nil, expect: ""},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ScopeKey(testCase.scopes), testCase.description)
	}
}

func TestMemoryStore_Accounts(t *testing.T) {
	first := &account.Account{HomeAccountID: "1", Username: "first"}
	second := &account.Account{HomeAccountID: "2", Username: "second"}
	aStore := NewMemoryStore(WithAccount(first))
	assert.Nil(t, aStore.ActiveAccount())

	require.NoError(t, aStore.AddAccount(second))
	require.NoError(t, aStore.AddAccount(&account.Account{HomeAccountID: "1", Username: "renamed"}))
	accounts := aStore.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, "renamed", accounts[0].Username)
	assert.Equal(t, "second", accounts[1].Username)

	assert.ErrorIs(t, aStore.SetActiveAccount(&account.Account{HomeAccountID: "3"}), ErrUnknownAccount)
	require.NoError(t, aStore.SetActiveAccount(second))
	assert.Equal(t, second, aStore.ActiveAccount())
	require.NoError(t, aStore.SetActiveAccount(nil))
	assert.Nil(t, aStore.ActiveAccount())

	assert.Error(t, aStore.AddAccount(nil))
}

func TestMemoryStore_Tokens(t *testing.T) {
	aStore := NewMemoryStore()
	key := NewTokenKey(&account.Account{HomeAccountID: "1"}, []string{"b", "a"})
	assert.Equal(t, TokenKey{Account: "1", Scopes: "a b"}, key)
	_, ok := aStore.LookupToken(key)
	assert.False(t, ok)
	require.NoError(t, aStore.AddToken(key, &oauth2.Token{AccessToken: "t"}))
	token, ok := aStore.LookupToken(key)
	require.True(t, ok)
	assert.Equal(t, "t", token.AccessToken)
	require.NoError(t, aStore.RemoveToken(key))
	_, ok = aStore.LookupToken(key)
	assert.False(t, ok)
}

func TestFileStore(t *testing.T) {
	var testCases = []struct {
		description string
		account     *account.Account
		scopes      []string
	}{
		{description: "object and tenant id", account: &account.Account{HomeAccountID: "oid.tid", Username: "jane"}, scopes: []string{"user.read"}},
		{description: "subject with separator", account: &account.Account{HomeAccountID: "auth0|123", Username: "joe"}, scopes: []string{"api://todo/access", "user.read"}},
	}

	for _, testCase := range testCases {
		path := filepath.Join(t.TempDir(), "nested", "tokens.json")
		aStore, err := NewFileStore(path)
		require.NoError(t, err, testCase.description)

		anAccount := testCase.account
		require.NoError(t, aStore.AddAccount(anAccount), testCase.description)
		require.NoError(t, aStore.SetActiveAccount(anAccount), testCase.description)
		key := NewTokenKey(anAccount, testCase.scopes)
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		require.NoError(t, aStore.AddToken(key, &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: expiry}), testCase.description)

		reloaded, err := NewFileStore(path)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, []*account.Account{anAccount}, reloaded.Accounts(), testCase.description)
		assert.Equal(t, anAccount, reloaded.ActiveAccount(), testCase.description)
		token, ok := reloaded.LookupToken(key)
		require.True(t, ok, testCase.description)
		assert.Equal(t, "access", token.AccessToken, testCase.description)
		assert.Equal(t, "refresh", token.RefreshToken, testCase.description)
		assert.True(t, expiry.Equal(token.Expiry), testCase.description)
	}
}
