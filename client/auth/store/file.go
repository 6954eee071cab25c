package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/viant/bearer/client/auth/account"
	"golang.org/x/oauth2"
)

// FileStore persists accounts, the active account and tokens to a JSON file.
// It is a lightweight way to survive process restarts in CLI or single-host services.
type FileStore struct {
	mu     sync.Mutex
	path   string
	memory *memoryStore
}

// NewFileStore creates a Store persisted at the given path.
func NewFileStore(path string, options ...MemoryStoreOption) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		memory: newMemoryStore(options...),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) AddAccount(anAccount *account.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.memory.AddAccount(anAccount); err != nil {
		return err
	}
	return f.save()
}

func (f *FileStore) Accounts() []*account.Account {
	return f.memory.Accounts()
}

func (f *FileStore) LookupAccount(homeAccountID string) (*account.Account, bool) {
	return f.memory.LookupAccount(homeAccountID)
}

func (f *FileStore) ActiveAccount() *account.Account {
	return f.memory.ActiveAccount()
}

func (f *FileStore) SetActiveAccount(anAccount *account.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.memory.SetActiveAccount(anAccount); err != nil {
		return err
	}
	return f.save()
}

func (f *FileStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	return f.memory.LookupToken(key)
}

func (f *FileStore) AddToken(key TokenKey, token *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.memory.AddToken(key, token)
	return f.save()
}

func (f *FileStore) RemoveToken(key TokenKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.memory.RemoveToken(key)
	return f.save()
}

// ---- persistence ----

type fileSnapshot struct {
	Accounts []*account.Account `json:"accounts,omitempty"`
	Active   string             `json:"active,omitempty"`
	Tokens   []*tokenRecord     `json:"tokens"`
}

type tokenRecord struct {
	Account string        `json:"account"`
	Scopes  string        `json:"scopes"`
	Token   *oauth2.Token `json:"token"`
}

func (f *FileStore) save() error {
	m := f.memory
	m.mu.RLock()
	snap := fileSnapshot{
		Accounts: append([]*account.Account(nil), m.accounts...),
		Active:   m.active,
		Tokens:   make([]*tokenRecord, 0, len(m.tokens)),
	}
	for k, v := range m.tokens {
		snap.Tokens = append(snap.Tokens, &tokenRecord{Account: k.Account, Scopes: k.Scopes, Token: v})
	}
	m.mu.RUnlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return err
	}
	m := f.memory
	for _, anAccount := range snap.Accounts {
		if anAccount.Key() != "" {
			m.addAccount(anAccount)
		}
	}
	if _, ok := m.lookupAccount(snap.Active); ok {
		m.active = snap.Active
	}
	for _, record := range snap.Tokens {
		if record == nil || record.Token == nil {
			continue
		}
		m.tokens[TokenKey{Account: record.Account, Scopes: record.Scopes}] = record.Token
	}
	return nil
}
