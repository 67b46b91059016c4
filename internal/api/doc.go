// Package api adapts HTTP requests to the application services. Handlers
// decode and validate JSON bodies, call a service, and map results and
// errors to JSON responses.
package api
