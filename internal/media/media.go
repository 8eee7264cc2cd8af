package media

import "path/filepath"

// Class identifies which import group a file belongs to.
type Class int

const (
	Unclassified Class = iota
	Raw
	Raster
	Video
)

// TransferOrder lists the classes in the order an import processes them.
var TransferOrder = []Class{Raster, Raw, Video}

// String returns the lowercase class label used in logs and reports.
func (c Class) String() string {
	switch c {
	case Raw:
		return "raw"
	case Raster:
		return "raster"
	case Video:
		return "video"
	default:
		return "unclassified"
	}
}

// Subfolder returns the destination subfolder name for the class. Unclassified
// files have no subfolder.
func (c Class) Subfolder() string {
	switch c {
	case Raw:
		return "raw"
	case Raster:
		return "rasters"
	case Video:
		return "video"
	default:
		return ""
	}
}

// File is a single discovered source file. Values are immutable once built by
// a Classifier.
type File struct {
	Path  string
	Class Class
	// Ext is the normalized extension (".CR2"). For sniffed files it is the
	// extension implied by the detected content type.
	Ext     string
	Sniffed bool
}

// Base returns the file's base name.
func (f File) Base() string {
	return filepath.Base(f.Path)
}
