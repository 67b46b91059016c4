// Package logger builds the JSON slog logger used across the server and
// carries request-scoped loggers in context.Context.
package logger
