package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

var errUnsupported = errors.New("free space check unsupported")

// CheckSourceReadable verifies the source directory can be listed.
func CheckSourceReadable(path string) Result {
	const name = "Source"

	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := access(path, accessRead); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDestinationWritable verifies the destination, or the closest existing
// parent that will hold it, accepts new entries.
func CheckDestinationWritable(path string) Result {
	const name = "Destination"

	existing, err := nearestExisting(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := access(existing, accessWrite); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s not writable: %v)", path, existing, err)}
	}
	if existing != path {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created under %s)", path, existing)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
}

// CheckFreeSpace compares needed bytes with the space available to
// unprivileged users on the destination filesystem.
func CheckFreeSpace(path string, needed int64) Result {
	const name = "Free space"

	existing, err := nearestExisting(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	available, err := availableBytes(existing)
	if err != nil {
		if errors.Is(err, errUnsupported) {
			return Result{Name: name, Passed: true, Detail: "not checked on this platform"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", existing, err)}
	}
	detail := fmt.Sprintf("%s needed, %s available", humanize.IBytes(uint64(max(needed, 0))), humanize.IBytes(available))
	if needed > 0 && uint64(needed) > available {
		return Result{Name: name, Detail: detail}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// nearestExisting walks up from path to the first directory that exists.
func nearestExisting(path string) (string, error) {
	current := filepath.Clean(path)
	for {
		info, err := os.Stat(current)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", current)
			}
			return current, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", err
		}
		current = parent
	}
}
