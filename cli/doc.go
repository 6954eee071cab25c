// Package cli implements the bearer command: it sends a single HTTP request
// through the bearer interceptor and prints the response body.
//
// In redirect mode the command prints the authorization URL, reads the URL the
// identity provider redirected to from standard input, completes the flow and
// replays the request.
package cli
