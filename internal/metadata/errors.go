package metadata

import (
	"errors"
	"fmt"
)

// ErrOpen marks files the metadata layer could not open at all.
var ErrOpen = errors.New("metadata open failed")

// OpenError reports a file that could not be opened or stat'ed. The resolver
// never falls back to a timestamp for these files.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s for metadata: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrOpen) match any OpenError.
func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}

// IsOpenError reports whether err is (or wraps) an OpenError.
func IsOpenError(err error) bool {
	var e *OpenError
	return errors.As(err, &e)
}
