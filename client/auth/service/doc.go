// Package service defines the authentication service used by the bearer
// interceptor: account lookup plus silent, popup and redirect token
// acquisition.
//
// OAuth2 is the provided implementation. It serves silent requests from its
// store (refreshing expired tokens), runs an interactive auth flow for popup
// requests and hands an authorization URL to a Navigator for redirect requests,
// completed later with HandleRedirect.
package service
