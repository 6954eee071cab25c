package mock

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// defaultTokenHandler handles /token requests
func (m *AuthorizationService) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if m.TokenDelay > 0 {
		time.Sleep(m.TokenDelay)
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.FormValue("client_id")
		clientSecret = r.FormValue("client_secret")
	}
	if clientID != m.ClientID || clientSecret != m.ClientSecret {
		writeError(w, http.StatusUnauthorized, "invalid_client")
		return
	}
	var scope string
	switch r.FormValue("grant_type") {
	case "authorization_code":
		m.codeRequests.Add(1)
		code := r.FormValue("code")
		if code == TestAuthorizationCode {
			scope = r.FormValue("scope")
			break
		}
		aGrant, ok := m.takeGrant(code)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		if aGrant.codeChallenge != "" && challenge(r.FormValue("code_verifier")) != aGrant.codeChallenge {
			writeError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		scope = aGrant.scope
	case "refresh_token":
		m.refreshRequests.Add(1)
		if m.failRefresh.Load() {
			writeError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		claims, err := m.parseJWT(r.FormValue("refresh_token"), "refresh_token")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		scope, _ = claims["scp"].(string)
		if requested := r.FormValue("scope"); requested != "" {
			scope = requested
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported_grant_type")
		return
	}

	expiresIn := int(m.ExpiresIn.Seconds())
	accessToken, err := m.createJWT(clientID, "access_token", scope, m.ExpiresIn)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	refreshToken, err := m.createJWT(clientID, "refresh_token", scope, 24*m.ExpiresIn)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	idToken, err := m.createJWT(clientID, "id_token", "", m.ExpiresIn)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	response := map[string]interface{}{
		"access_token":  accessToken,
		"token_type":    "Bearer",
		"refresh_token": refreshToken,
		"expires_in":    expiresIn,
		"id_token":      idToken,
		"scope":         scope,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
