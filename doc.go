// Package bearer provides an HTTP client that attaches bearer tokens to
// requests targeting protected resources.
//
// A protected resource map assigns scopes to URL patterns. For a matching
// request a token is acquired silently from the authentication service, with a
// single fallback to an interactive popup or redirect flow, and sent as an
// `Authorization: Bearer` header. Other requests pass through unchanged.
//
// Example:
//
//	cfg, _ := config.Load(ctx, "bearer.yaml")
//	srv, _ := service.New(oauth2Config, service.WithStore(store.NewMemoryStore()))
//	client, _ := bearer.NewClient(cfg, srv)
//	resp, err := client.Get("https://localhost:44351/api/azure/items")
//
// The building blocks live in client/auth: resource matching, accounts, stores,
// the authentication service and the transport.
package bearer
