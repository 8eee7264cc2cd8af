package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	exifv3 "github.com/dsoprea/go-exif/v3"
	"github.com/rwcarlsen/goexif/exif"
)

const exifTimestampLayout = "2006:01:02 15:04:05"

// ExifSource reads DateTimeOriginal (or DateTime) from EXIF metadata.
type ExifSource struct{}

// Open implements Source.
func (ExifSource) Open(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lookup, decodeErr := decodeExif(f)
	if decodeErr == nil {
		return lookup, nil
	}

	// goexif only understands TIFF, JPEG and bare EXIF blocks; other
	// containers still embed a standard EXIF block somewhere in the file.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	lookup, searchErr := searchExif(f)
	if searchErr != nil {
		return ReadFailed(fmt.Errorf("decode exif: %w; search exif: %w", decodeErr, searchErr)), nil
	}
	return lookup, nil
}

// decodeExif returns an error only when goexif could not make sense of the
// container at all.
func decodeExif(r io.Reader) (lookup Lookup, err error) {
	defer func() {
		if state := recover(); state != nil {
			err = fmt.Errorf("exif decoder panic: %v", state)
		}
	}()

	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		if err == nil {
			err = errors.New("no exif data")
		}
		return Lookup{}, err
	}

	when, err := x.DateTime()
	if err != nil {
		if exif.IsTagNotPresentError(err) {
			return NotPresent(), nil
		}
		return ReadFailed(err), nil
	}
	if when.IsZero() {
		return NotPresent(), nil
	}
	return FoundAt(when), nil
}

func searchExif(r io.Reader) (lookup Lookup, err error) {
	defer func() {
		if state := recover(); state != nil {
			err = fmt.Errorf("exif search panic: %v", state)
		}
	}()

	raw, err := exifv3.SearchAndExtractExifWithReader(r)
	if err != nil {
		if errors.Is(err, exifv3.ErrNoExif) {
			return NotPresent(), nil
		}
		return Lookup{}, err
	}

	entries, _, err := exifv3.GetFlatExifData(raw, nil)
	if err != nil {
		return Lookup{}, err
	}

	value, ok := findExifDateTime(entries)
	if !ok {
		return NotPresent(), nil
	}
	when, err := parseExifTimestamp(value)
	if err != nil {
		return ReadFailed(err), nil
	}
	return FoundAt(when), nil
}

func findExifDateTime(entries []exifv3.ExifTag) (string, bool) {
	for _, name := range []string{"DateTimeOriginal", "DateTime"} {
		for _, entry := range entries {
			if entry.TagName != name {
				continue
			}
			if value, ok := entry.Value.(string); ok && strings.TrimSpace(value) != "" {
				return value, true
			}
		}
	}
	return "", false
}

// parseExifTimestamp keeps the camera's wall clock; EXIF timestamps carry no
// zone so the local location is attached without conversion.
func parseExifTimestamp(value string) (time.Time, error) {
	value = strings.TrimRight(strings.TrimSpace(value), "\x00")
	when, err := time.ParseInLocation(exifTimestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse exif timestamp %q: %w", value, err)
	}
	if when.Year() < 1 {
		return time.Time{}, fmt.Errorf("exif timestamp %q out of range", value)
	}
	return when, nil
}
