package mock

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// defaultAuthorizeHandler handles /authorize requests
func (m *AuthorizationService) defaultAuthorizeHandler(w http.ResponseWriter, r *http.Request) {
	m.authorizeRequests.Add(1)
	query := r.URL.Query()
	if query.Get("client_id") != m.ClientID {
		http.Error(w, "Invalid client ID", http.StatusBadRequest)
		return
	}
	redirectURI := query.Get("redirect_uri")
	if redirectURI == "" {
		http.Error(w, "Missing redirect URI", http.StatusBadRequest)
		return
	}
	target, err := url.Parse(redirectURI)
	if err != nil {
		http.Error(w, "Invalid redirect URI", http.StatusBadRequest)
		return
	}
	code := uuid.NewString()
	m.putGrant(code, &grant{
		redirectURI:   redirectURI,
		scope:         query.Get("scope"),
		codeChallenge: query.Get("code_challenge"),
	})
	values := target.Query()
	values.Set("code", code)
	values.Set("state", query.Get("state"))
	target.RawQuery = values.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}
