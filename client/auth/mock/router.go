package mock

import (
	"net/http"
	"strings"
)

// Handler routes HTTP requests to the appropriate mock identity provider endpoints.
type Handler struct {
	// Server is the mock identity provider with endpoint handlers.
	Server *AuthorizationService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/token":
		if h.Server.TokenHandler != nil {
			h.Server.TokenHandler(w, r)
		} else {
			h.Server.defaultTokenHandler(w, r)
		}
	case r.URL.Path == "/authorize":
		if h.Server.AuthorizeHandler != nil {
			h.Server.AuthorizeHandler(w, r)
		} else {
			h.Server.defaultAuthorizeHandler(w, r)
		}
	case strings.HasPrefix(r.URL.Path, "/api/"):
		if h.Server.ResourceHandler != nil {
			h.Server.ResourceHandler(w, r)
		} else {
			h.Server.defaultResourceHandler(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}
