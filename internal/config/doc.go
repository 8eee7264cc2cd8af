// Package config loads, normalizes, and validates filmroll configuration.
//
// Configuration is optional: the CLI runs on built-in defaults and reads a
// TOML file only when one is named with --config. The Config type carries the
// extension sets for each media class, transfer settings, and logging
// options, and command-line flags override whatever the file provides.
package config
