// Package logger configures the process-wide slog logger (JSON in
// production, colourised tint output for local runs) and carries
// request-scoped loggers through a context.Context.
package logger
