// Package main hosts the filmroll CLI entrypoint and command graph.
//
// The root command scans a camera card (or any directory), classifies what it
// finds as raw, raster, or video media, and copies each file into a dated
// library tree. Flags select count-only and dry-run modes; subcommands
// scaffold configuration and show the import journal.
//
// Keep this package thin: the import pipeline lives in internal/importer and
// the commands here only translate flags into its options and render results.
package main
