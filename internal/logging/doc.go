// Package logging assembles the slog loggers used by filmroll.
//
// It owns the console and JSON handlers, level parsing, and output routing.
// Context helpers tag every line with the import run ID and the media class
// being processed, so a single run can be followed across the scanner, the
// metadata resolver and the transfer workers. NewNop gives tests and optional
// wiring a logger that cannot fail.
package logging
