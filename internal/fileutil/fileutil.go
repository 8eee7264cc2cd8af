package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// EnsureDir creates path and any missing parents. An existing directory is
// not an error.
func EnsureDir(path string) error {
	return wrap("mkdir", path, os.MkdirAll(path, 0o755))
}

// Exists reports whether anything is present at path. Only a definite "not
// found" yields false; other stat failures are returned as *Error.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, wrap("stat", path, err)
	}
}

// CopyNoOverwrite copies src to dst, preserving permission bits and access and
// modification times. dst is created exclusively: if it already exists the
// copy returns ErrExists and leaves it untouched. A target whose length differs
// from the source is removed.
func CopyNoOverwrite(src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, wrap("stat", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, wrap("copy", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, fmt.Errorf("%s: %w", dst, ErrExists)
		}
		return 0, wrap("copy", dst, err)
	}

	written, err := copySized(out, in, srcInfo.Size())
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, wrap("copy", dst, err)
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return written, wrap("copy", dst, err)
	}
	if err := os.Chtimes(dst, accessTime(src, srcInfo), srcInfo.ModTime()); err != nil {
		return written, wrap("copy", dst, err)
	}
	return written, nil
}

// copySized copies in to out and fails unless exactly size bytes were written.
func copySized(out io.Writer, in io.Reader, size int64) (int64, error) {
	written, err := io.Copy(out, in)
	if err != nil {
		return written, err
	}
	if written != size {
		return written, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", size, written)
	}
	return written, nil
}
