package media

import (
	"github.com/h2non/filetype"
)

// Sniffer guesses a file extension from file content.
type Sniffer interface {
	Sniff(path string) (ext string, ok bool)
}

// ContentSniffer inspects the file header with h2non/filetype.
type ContentSniffer struct{}

// Sniff reads the file header and returns the matching extension, if any.
// Read errors are treated as "unknown"; the file then stays unclassified.
func (ContentSniffer) Sniff(path string) (string, bool) {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	return kind.Extension, true
}
