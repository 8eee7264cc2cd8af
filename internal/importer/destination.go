package importer

import (
	"path/filepath"
	"strconv"

	"github.com/mcaimi/tmux-filmroll/internal/media"
	"github.com/mcaimi/tmux-filmroll/internal/metadata"
)

// Destination builds target paths under an import root.
type Destination struct {
	Root string
}

// Dir returns {root}/{year}/{month}/{day}/{subfolder}. Numbers are not zero
// padded, so May 14th 2023 becomes 2023/5/14.
func (d Destination) Dir(date metadata.CaptureDate, class media.Class) string {
	return filepath.Join(
		d.Root,
		strconv.Itoa(date.Year),
		strconv.Itoa(date.Month),
		strconv.Itoa(date.Day),
		class.Subfolder(),
	)
}

// PathFor returns the final path of file: its directory plus the unchanged
// source base name.
func (d Destination) PathFor(date metadata.CaptureDate, file media.File) string {
	return filepath.Join(d.Dir(date, file.Class), file.Base())
}
