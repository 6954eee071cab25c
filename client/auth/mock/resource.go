package mock

import (
	"encoding/json"
	"net/http"
	"strings"
)

// defaultResourceHandler simulates a protected API under /api/
func (m *AuthorizationService) defaultResourceHandler(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		w.Header().Set("WWW-Authenticate", `Bearer realm="`+m.Issuer+`"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization header", http.StatusBadRequest)
		return
	}
	claims, err := m.parseJWT(parts[1], "access_token")
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"path":  r.URL.Path,
		"user":  claims["preferred_username"],
		"scope": claims["scp"],
	})
}
