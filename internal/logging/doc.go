// Package logging assembles structured slog loggers and formatting helpers used
// across cinewrapped.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so HTTP handlers and pipeline
// code can tag log lines with request IDs. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Console output goes to stderr by default so stdout stays free for rendered
// slides and JSON reports.
package logging
