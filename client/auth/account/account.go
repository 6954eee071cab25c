// Package account describes the signed-in identity tokens are acquired for.
package account

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
)

// Account is an opaque handle for a signed-in identity.
type Account struct {
	HomeAccountID string `json:"homeAccountId"`
	Environment   string `json:"environment,omitempty"`
	TenantID      string `json:"tenantId,omitempty"`
	Username      string `json:"username,omitempty"`
	Name          string `json:"name,omitempty"`
}

// Key returns account identity key.
func (a *Account) Key() string {
	if a == nil {
		return ""
	}
	return a.HomeAccountID
}

// Equal reports whether both handles denote the same account.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.HomeAccountID == other.HomeAccountID
}

func (a *Account) String() string {
	if a == nil {
		return "<nil>"
	}
	if a.Username != "" {
		return a.Username
	}
	return a.HomeAccountID
}

// FromIDToken builds an account from ID token claims. The token signature is
// not verified; the token comes straight from the token endpoint response.
func FromIDToken(idToken string) (*Account, error) {
	if idToken == "" {
		return nil, errors.New("id token was empty")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token: %w", err)
	}
	ret := &Account{
		TenantID: claimString(claims, "tid"),
		Name:     claimString(claims, "name"),
	}
	ret.Username = claimString(claims, "preferred_username")
	if ret.Username == "" {
		ret.Username = claimString(claims, "email")
	}
	if issuer, _ := claims.GetIssuer(); issuer != "" {
		if URL, err := url.Parse(issuer); err == nil {
			ret.Environment = URL.Host
		}
	}
	objectID := claimString(claims, "oid")
	subject, _ := claims.GetSubject()
	switch {
	case objectID != "" && ret.TenantID != "":
		ret.HomeAccountID = objectID + "." + ret.TenantID
	case objectID != "":
		ret.HomeAccountID = objectID
	default:
		ret.HomeAccountID = subject
	}
	if ret.HomeAccountID == "" {
		return nil, errors.New("id token has neither oid nor sub claim")
	}
	return ret, nil
}

func claimString(claims jwt.MapClaims, name string) string {
	value, ok := claims[name]
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return text
}
