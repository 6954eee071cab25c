// Package mock provides an httptest OAuth2 identity provider that facilitates
// unit testing of token acquisition and bearer injection.
//
// The provider issues RS256 signed access, refresh and ID tokens, serves a
// protected resource that validates them, and counts requests so tests can
// assert how often the identity provider was contacted.
package mock
