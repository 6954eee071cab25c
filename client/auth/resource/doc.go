// Package resource maps request URLs to the scopes protecting them.
//
// A Map keeps protected resource patterns in insertion order; the first pattern
// that glob-matches a URL, or is contained in it, decides the scopes. An
// AllowList is a second, independent gate applied to the URL path following
// the "api/" marker.
package resource
