package transport

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bearer/client/auth/mock"
	"github.com/viant/bearer/client/auth/resource"
	"github.com/viant/bearer/client/auth/service"
	"github.com/viant/scy/auth/flow"
	"golang.org/x/oauth2"
)

type exchangeFlow struct {
	calls int
}

func (e *exchangeFlow) Token(ctx context.Context, config *oauth2.Config, options ...flow.Option) (*oauth2.Token, error) {
	e.calls++
	return config.Exchange(ctx, mock.TestAuthorizationCode)
}

func TestRoundTripper_WithIdentityProvider(t *testing.T) {
	server, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	popup := &exchangeFlow{}
	srv, err := service.New(mock.NewTestClient(server.Issuer), service.WithPopupFlow(popup))
	require.NoError(t, err)
	rt, err := New(&Config{
		InteractionType:      service.InteractionPopup,
		ProtectedResourceMap: resource.NewMap(resource.Entry{Pattern: server.Issuer + "/api/**", Scopes: []string{"api://todo/access"}}),
	}, srv)
	require.NoError(t, err)
	client := &http.Client{Transport: rt}

	for i := 0; i < 2; i++ {
		resp, err := client.Get(server.Issuer + "/api/azure/items")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Contains(t, string(body), "user@contoso.com")
	}
	assert.Equal(t, 1, popup.calls)
	assert.Equal(t, 1, server.CodeRequests())

	resp, err := client.Get(server.Issuer + "/api/todolist")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "outside the allow list")
}
