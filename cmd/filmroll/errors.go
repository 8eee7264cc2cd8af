package main

import "github.com/mcaimi/tmux-filmroll/internal/config"

// syntaxError reports a malformed invocation. It is raised before any file is
// scanned.
type syntaxError struct {
	msg string
}

func (e *syntaxError) Error() string {
	return "syntax error: " + e.msg
}

func (e *syntaxError) Unwrap() error {
	return config.ErrConfig
}
