package service

import (
	"net/url"
	"time"

	"github.com/viant/bearer/client/auth/account"
)

// Request carries interactive token request parameters.
type Request struct {
	Scopes               []string          `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	Prompt               string            `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	LoginHint            string            `yaml:"loginHint,omitempty" json:"loginHint,omitempty"`
	DomainHint           string            `yaml:"domainHint,omitempty" json:"domainHint,omitempty"`
	ExtraQueryParameters map[string]string `yaml:"extraQueryParameters,omitempty" json:"extraQueryParameters,omitempty"`
	// RedirectStartPage is the location to return to after a redirect flow.
	RedirectStartPage string `yaml:"redirectStartPage,omitempty" json:"redirectStartPage,omitempty"`
}

// WithScopes returns a copy of r with scopes replaced; r can be nil.
func (r *Request) WithScopes(scopes []string) *Request {
	ret := &Request{}
	if r != nil {
		*ret = *r
		if len(r.ExtraQueryParameters) > 0 {
			ret.ExtraQueryParameters = make(map[string]string, len(r.ExtraQueryParameters))
			for k, v := range r.ExtraQueryParameters {
				ret.ExtraQueryParameters[k] = v
			}
		}
	}
	ret.Scopes = append([]string(nil), scopes...)
	return ret
}

// authParams returns authorization URL parameters other than scope.
func (r *Request) authParams() url.Values {
	values := url.Values{}
	if r == nil {
		return values
	}
	for k, v := range r.ExtraQueryParameters {
		values.Set(k, v)
	}
	if r.Prompt != "" {
		values.Set("prompt", r.Prompt)
	}
	if r.LoginHint != "" {
		values.Set("login_hint", r.LoginHint)
	}
	if r.DomainHint != "" {
		values.Set("domain_hint", r.DomainHint)
	}
	return values
}

// SilentRequest asks for a token without user interaction.
type SilentRequest struct {
	Scopes       []string
	Account      *account.Account
	ForceRefresh bool
}

// Result is an acquired token.
type Result struct {
	AccessToken string
	TokenType   string
	ExpiresOn   time.Time
	Scopes      []string
	Account     *account.Account
	IDToken     string
	FromCache   bool
}

// RedirectResult is a completed redirect flow.
type RedirectResult struct {
	*Result
	// StartPage is the location the redirect flow was started from.
	StartPage string
}
