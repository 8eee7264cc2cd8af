// Package fileutil holds the filesystem primitives the importer relies on:
// idempotent directory creation, existence checks, and a verified copy that
// never replaces an existing file.
package fileutil
