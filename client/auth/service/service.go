package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/bearer/client/auth/account"
)

var (
	// ErrInteractionRequired is returned when a token cannot be acquired silently.
	ErrInteractionRequired = errors.New("interaction required")
	// ErrNoAccount is returned by silent acquisition without an account; it is an interaction required error.
	ErrNoAccount = fmt.Errorf("%w: no account", ErrInteractionRequired)
	// ErrUnknownState is returned when a redirect callback does not match a pending request.
	ErrUnknownState = errors.New("unknown or expired redirect state")
)

// Service acquires tokens from an identity provider.
type Service interface {
	ActiveAccount() *account.Account
	Accounts() []*account.Account
	AcquireTokenSilent(ctx context.Context, request *SilentRequest) (*Result, error)
	AcquireTokenPopup(ctx context.Context, request *Request) (*Result, error)
	// AcquireTokenRedirect starts a redirect flow; the token arrives through the redirect callback.
	AcquireTokenRedirect(ctx context.Context, request *Request) error
}

// CurrentAccount returns the active account, else the first known account.
func CurrentAccount(service Service) *account.Account {
	if active := service.ActiveAccount(); active != nil {
		return active
	}
	if accounts := service.Accounts(); len(accounts) > 0 {
		return accounts[0]
	}
	return nil
}
