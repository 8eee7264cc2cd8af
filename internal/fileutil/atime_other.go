//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package fileutil

import (
	"io/fs"
	"time"
)

func accessTime(_ string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
