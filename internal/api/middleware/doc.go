// Package middleware holds the HTTP middleware shared by every API route:
// per-request tracing and bearer-token authentication.
package middleware
