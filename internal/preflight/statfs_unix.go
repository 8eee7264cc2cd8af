//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package preflight

import "golang.org/x/sys/unix"

const (
	accessRead  = unix.R_OK | unix.X_OK
	accessWrite = unix.W_OK | unix.X_OK
)

func access(path string, mode uint32) error {
	return unix.Access(path, mode)
}

func availableBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
