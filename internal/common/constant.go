// Package common contains shared constants and sentinel errors used across
// bookshelf components.
package common

const (
	// AuthTokenKey is the durable storage key holding the session token as
	// plain text.
	AuthTokenKey = "authToken"

	// RequestIDHeaderName carries a per-request correlation id on outbound
	// API calls.
	RequestIDHeaderName = "X-Request-ID"

	// AuthorizationHeaderName carries the bearer token on authenticated calls.
	AuthorizationHeaderName = "Authorization"
)
