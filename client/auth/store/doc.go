// Package store defines account and token stores used by the authentication
// service in the sibling `service` package.
//
// It ships with an in-memory implementation that is sufficient for most
// CLI or unit-test scenarios, and a JSON file store that survives process
// restarts.
package store
