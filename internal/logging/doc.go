// Package logging assembles structured slog loggers and formatting helpers used
// across moviedb.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes small attribute helpers so storage, catalog, and
// metadata code emit log lines with the same shape. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components route
// output the same way the CLI does.
package logging
