// Package logging provides structured logging for the devm CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. Text output is TTY-optimized with color
// when the destination supports it (NO_COLOR and TERM=dumb are honored).
//
// InitFile installs a process-wide file logger exactly once; repeated calls
// report whether this call performed the initialization, so callers can
// distinguish first-call side effects from idempotent no-ops.
package logging
