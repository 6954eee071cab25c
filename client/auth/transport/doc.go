// Package transport implements an http.RoundTripper that attaches bearer tokens
// to requests targeting protected resources.
//
// The protected resource map decides which scopes a request needs. A token is
// first acquired silently; when that fails the RoundTripper falls back once to
// the configured interaction: a popup flow whose token is used for the request,
// or a redirect flow that leaves the request unsent and returns
// ErrRedirectInProgress.
package transport
