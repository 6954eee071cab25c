package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bearer/client/auth/mock"
	"github.com/viant/bearer/client/auth/service"
	"github.com/viant/scy/auth/flow"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type exchangeFlow struct{}

func (e *exchangeFlow) Token(ctx context.Context, config *oauth2.Config, options ...flow.Option) (*oauth2.Token, error) {
	return config.Exchange(ctx, mock.TestAuthorizationCode)
}

func writeConfig(t *testing.T, interaction, issuer string) string {
	path := filepath.Join(t.TempDir(), "bearer.yaml")
	document := "interactionType: " + interaction + "\nprotectedResourceMap:\n  " + issuer + "/api/**: [\"api://todo/access\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))
	return path
}

func TestService_Do_Popup(t *testing.T) {
	server, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	options := &Options{
		ConfigURL: writeConfig(t, "popup", server.Issuer),
		URL:       server.Issuer + "/api/azure/items",
		Method:    http.MethodGet,
		Headers:   []string{"Accept: application/json"},
		StorePath: filepath.Join(t.TempDir(), "tokens.json"),
	}
	srv, err := New(context.Background(), options, mock.NewTestClient(server.Issuer), zap.NewNop(), service.WithPopupFlow(&exchangeFlow{}))
	require.NoError(t, err)
	stdout := &bytes.Buffer{}
	srv.stdout = stdout
	require.NoError(t, srv.Do(context.Background()))
	assert.Contains(t, stdout.String(), "user@contoso.com")

	restarted, err := New(context.Background(), options, mock.NewTestClient(server.Issuer), zap.NewNop(), service.WithPopupFlow(&exchangeFlow{}))
	require.NoError(t, err)
	restarted.stdout = &bytes.Buffer{}
	require.NoError(t, restarted.Do(context.Background()))
	assert.Equal(t, 1, server.CodeRequests(), "token is reused from the store file")
}

func TestService_Do_Redirect(t *testing.T) {
	server, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	stdin := &bytes.Buffer{}
	noRedirect := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	navigator := service.NavigatorFunc(func(ctx context.Context, URL string) error {
		resp, err := noRedirect.Get(URL)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		stdin.WriteString(resp.Header.Get("Location") + "\n")
		return nil
	})
	options := &Options{
		ConfigURL: writeConfig(t, "redirect", server.Issuer),
		URL:       server.Issuer + "/api/azure/items",
	}
	srv, err := New(context.Background(), options, mock.NewTestClient(server.Issuer), zap.NewNop(), service.WithNavigator(navigator))
	require.NoError(t, err)
	stdout := &bytes.Buffer{}
	srv.stdin = stdin
	srv.stdout = stdout
	srv.stderr = &bytes.Buffer{}
	require.NoError(t, srv.Do(context.Background()))
	assert.Contains(t, stdout.String(), "user@contoso.com")
	assert.Equal(t, 1, server.AuthorizeRequests())
}

func TestService_Do_Error(t *testing.T) {
	server, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer server.Close()

	options := &Options{
		ConfigURL: writeConfig(t, "popup", server.Issuer),
		URL:       server.Issuer + "/missing",
		Headers:   []string{"invalid"},
	}
	srv, err := New(context.Background(), options, mock.NewTestClient(server.Issuer), zap.NewNop())
	require.NoError(t, err)
	srv.stdout = &bytes.Buffer{}
	assert.Error(t, srv.Do(context.Background()), "invalid header")

	options.Headers = nil
	assert.Error(t, srv.Do(context.Background()), "404 is reported")
}

func TestRun_MissingFlags(t *testing.T) {
	assert.Error(t, Run([]string{"-u", "http://localhost"}))
}
