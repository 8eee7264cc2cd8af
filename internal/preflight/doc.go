// Package preflight runs readiness checks before an import touches the
// destination.
//
// The checks confirm the source is readable, the destination (or its nearest
// existing ancestor) is writable, and the destination filesystem has room for
// the scanned files. Results are advisory: the CLI prints failures as
// warnings and lets per-file errors surface during the transfer itself.
package preflight
