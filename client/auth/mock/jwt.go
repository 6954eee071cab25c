package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// createJWT creates a signed JWT token for clientID with the given type and expiry
func (m *AuthorizationService) createJWT(clientID, tokenType, scope string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":                m.Issuer,
		"sub":                m.ObjectID,
		"oid":                m.ObjectID,
		"tid":                m.TenantID,
		"preferred_username": m.Username,
		"name":               m.Name,
		"aud":                clientID,
		"exp":                now.Add(expiry).Unix(),
		"iat":                now.Unix(),
		"jti":                now.UnixNano(),
		"typ":                tokenType,
	}
	if scope != "" {
		claims["scp"] = scope
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(m.PrivateKey)
}

// parseJWT validates a token issued by this service and returns its claims.
func (m *AuthorizationService) parseJWT(text, tokenType string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(text, claims, func(token *jwt.Token) (interface{}, error) {
		return m.PrivateKey.Public(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithIssuer(m.Issuer))
	if err != nil {
		return nil, err
	}
	if claims["typ"] != tokenType {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
