package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// TestAuthorizationCode is always accepted by the token endpoint.
const TestAuthorizationCode = "test_authorization_code"

type grant struct {
	redirectURI   string
	scope         string
	codeChallenge string
}

// AuthorizationService is a test server that simulates an OAuth2 identity provider.
type AuthorizationService struct {
	PrivateKey   *rsa.PrivateKey
	Issuer       string
	ClientID     string
	ClientSecret string
	ObjectID     string
	TenantID     string
	Username     string
	Name         string
	ExpiresIn    time.Duration

	// TokenDelay slows down every /token response.
	TokenDelay time.Duration

	TokenHandler     func(w http.ResponseWriter, r *http.Request)
	AuthorizeHandler func(w http.ResponseWriter, r *http.Request)
	ResourceHandler  func(w http.ResponseWriter, r *http.Request)

	failRefresh       atomic.Bool
	authorizeRequests atomic.Int32
	codeRequests      atomic.Int32
	refreshRequests   atomic.Int32

	mux    sync.Mutex
	grants map[string]*grant
}

type Option func(*AuthorizationService)

// WithClient sets client credentials.
func WithClient(clientID, clientSecret string) Option {
	return func(s *AuthorizationService) {
		s.ClientID = clientID
		s.ClientSecret = clientSecret
	}
}

// WithIdentity sets the identity placed into ID tokens.
func WithIdentity(objectID, tenantID, username string) Option {
	return func(s *AuthorizationService) {
		s.ObjectID = objectID
		s.TenantID = tenantID
		s.Username = username
	}
}

// WithExpiresIn sets issued access token lifetime.
func WithExpiresIn(expiresIn time.Duration) Option {
	return func(s *AuthorizationService) {
		s.ExpiresIn = expiresIn
	}
}

// WithTokenDelay delays every token endpoint response.
func WithTokenDelay(delay time.Duration) Option {
	return func(s *AuthorizationService) {
		s.TokenDelay = delay
	}
}

// NewAuthorizationService creates a new mock OAuth2 identity provider
func NewAuthorizationService(opts ...Option) (*AuthorizationService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}
	service := &AuthorizationService{
		PrivateKey:   privateKey,
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		ObjectID:     "00000000-0000-0000-0000-000000000001",
		TenantID:     "00000000-0000-0000-0000-0000000000aa",
		Username:     "user@contoso.com",
		Name:         "Test User",
		ExpiresIn:    time.Hour,
		grants:       map[string]*grant{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// FailRefresh makes refresh_token grants fail with invalid_grant.
func (m *AuthorizationService) FailRefresh(fail bool) {
	m.failRefresh.Store(fail)
}

// AuthorizeRequests returns number of /authorize requests served.
func (m *AuthorizationService) AuthorizeRequests() int {
	return int(m.authorizeRequests.Load())
}

// CodeRequests returns number of authorization_code grants served.
func (m *AuthorizationService) CodeRequests() int {
	return int(m.codeRequests.Load())
}

// RefreshRequests returns number of refresh_token grants served.
func (m *AuthorizationService) RefreshRequests() int {
	return int(m.refreshRequests.Load())
}

// HomeAccountID returns home account id of the issued identity.
func (m *AuthorizationService) HomeAccountID() string {
	return m.ObjectID + "." + m.TenantID
}

func (m *AuthorizationService) putGrant(code string, aGrant *grant) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.grants[code] = aGrant
}

func (m *AuthorizationService) takeGrant(code string) (*grant, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	aGrant, ok := m.grants[code]
	delete(m.grants, code)
	return aGrant, ok
}

// Register registers HTTP handlers for all mock endpoints onto the given ServeMux.
func (m *AuthorizationService) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Server: m})
}

// Handler returns an http.Handler for all mock endpoints, suitable for any HTTP server.
func (m *AuthorizationService) Handler() http.Handler {
	mux := http.NewServeMux()
	m.Register(mux)
	return mux
}
