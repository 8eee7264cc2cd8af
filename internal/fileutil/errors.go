package fileutil

import (
	"errors"
	"fmt"
)

var (
	// ErrFilesystem marks failures creating directories, stat'ing or copying
	// files.
	ErrFilesystem = errors.New("filesystem error")
	// ErrExists reports that a copy target already exists. It is not a
	// filesystem failure.
	ErrExists = errors.New("destination exists")
)

// Error describes a failed filesystem operation.
type Error struct {
	Op   string // mkdir, stat, copy
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFilesystem) match any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrFilesystem
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}
