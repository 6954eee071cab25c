package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/viant/bearer/client/auth/account"
	"golang.org/x/oauth2"
)

// ErrUnknownAccount is returned when activating an account the store does not hold.
var ErrUnknownAccount = errors.New("unknown account")

// TokenKey identifies a token by account and normalized scopes.
type TokenKey struct {
	Account string
	Scopes  string
}

// NewTokenKey creates a token key for the account and scopes.
func NewTokenKey(anAccount *account.Account, scopes []string) TokenKey {
	return TokenKey{Account: anAccount.Key(), Scopes: ScopeKey(scopes)}
}

// ScopeKey normalizes scopes: lower-cased, deduplicated, sorted, space separated.
func ScopeKey(scopes []string) string {
	var unique = make(map[string]bool, len(scopes))
	var ret = make([]string, 0, len(scopes))
	for _, scope := range scopes {
		scope = strings.ToLower(strings.TrimSpace(scope))
		if scope == "" || unique[scope] {
			continue
		}
		unique[scope] = true
		ret = append(ret, scope)
	}
	sort.Strings(ret)
	return strings.Join(ret, " ")
}

// Store is a pluggable persistence layer for accounts & tokens.
// The in‑memory default is fine for CLI tools; swap with a shared backend for fleets.
type Store interface {
	AddAccount(anAccount *account.Account) error
	Accounts() []*account.Account
	LookupAccount(homeAccountID string) (*account.Account, bool)
	ActiveAccount() *account.Account
	SetActiveAccount(anAccount *account.Account) error
	AddToken(key TokenKey, token *oauth2.Token) error
	LookupToken(key TokenKey) (*oauth2.Token, bool)
	RemoveToken(key TokenKey) error
}

type MemoryStoreOption func(*memoryStore)

// WithAccount seeds the store with an account.
func WithAccount(anAccount *account.Account) MemoryStoreOption {
	return func(m *memoryStore) {
		m.addAccount(anAccount)
	}
}

// WithActiveAccount seeds the store with an active account.
func WithActiveAccount(anAccount *account.Account) MemoryStoreOption {
	return func(m *memoryStore) {
		m.addAccount(anAccount)
		m.active = anAccount.Key()
	}
}

type memoryStore struct {
	mu       sync.RWMutex
	accounts []*account.Account
	active   string
	tokens   map[TokenKey]*oauth2.Token
}

func (m *memoryStore) AddAccount(anAccount *account.Account) error {
	if anAccount == nil || anAccount.Key() == "" {
		return errors.New("account was empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addAccount(anAccount)
	return nil
}

func (m *memoryStore) addAccount(anAccount *account.Account) {
	for i, candidate := range m.accounts {
		if candidate.Equal(anAccount) {
			m.accounts[i] = anAccount
			return
		}
	}
	m.accounts = append(m.accounts, anAccount)
}

func (m *memoryStore) Accounts() []*account.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*account.Account(nil), m.accounts...)
}

func (m *memoryStore) LookupAccount(homeAccountID string) (*account.Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookupAccount(homeAccountID)
}

func (m *memoryStore) lookupAccount(homeAccountID string) (*account.Account, bool) {
	for _, candidate := range m.accounts {
		if candidate.HomeAccountID == homeAccountID {
			return candidate, true
		}
	}
	return nil, false
}

func (m *memoryStore) ActiveAccount() *account.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == "" {
		return nil
	}
	ret, _ := m.lookupAccount(m.active)
	return ret
}

func (m *memoryStore) SetActiveAccount(anAccount *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if anAccount == nil {
		m.active = ""
		return nil
	}
	if _, ok := m.lookupAccount(anAccount.Key()); !ok {
		return ErrUnknownAccount
	}
	m.active = anAccount.Key()
	return nil
}

func (m *memoryStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tokens != nil {
		if token, ok := m.tokens[key]; ok {
			return token, true
		}
	}
	return nil, false
}

func (m *memoryStore) AddToken(key TokenKey, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[TokenKey]*oauth2.Token{}
	}
	m.tokens[key] = token
	return nil
}

func (m *memoryStore) RemoveToken(key TokenKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(options ...MemoryStoreOption) Store {
	return newMemoryStore(options...)
}

func newMemoryStore(options ...MemoryStoreOption) *memoryStore {
	ret := &memoryStore{
		tokens: map[TokenKey]*oauth2.Token{},
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
