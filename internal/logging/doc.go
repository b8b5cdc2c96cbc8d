// Package logging assembles the structured slog loggers used by rabbit-tools.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stderr plus an optional log file from the config). Helpers tag loggers with
// component names and a per-invocation session id, and a no-op logger is
// available for tests and wiring code that cannot fail.
package logging
