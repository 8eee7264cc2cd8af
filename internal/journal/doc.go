// Package journal keeps an SQLite audit log of import runs.
//
// Each run stores its roots, dry-run flag, timing and per-action totals,
// followed by one row per processed file with the resolved capture date,
// destination, action and error text. The journal is write-after-run: the
// importer produces a Report and SaveReport persists it in one transaction.
//
// Schema changes bump schemaVersion in schema.go; an older database is
// rejected with ErrSchemaMismatch and must be moved aside.
package journal
