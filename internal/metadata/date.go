package metadata

import (
	"fmt"
	"time"
)

// Origin records where a capture date came from.
type Origin string

const (
	OriginMetadata   Origin = "metadata"
	OriginFilesystem Origin = "filesystem"
)

// CaptureDate is the calendar day a file was produced. Month and Day are
// 1-indexed.
type CaptureDate struct {
	Year   int
	Month  int
	Day    int
	Origin Origin
}

// DateOf takes the wall-clock date of t in whatever location t carries. No
// timezone conversion happens here.
func DateOf(t time.Time, origin Origin) CaptureDate {
	return CaptureDate{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Origin: origin,
	}
}

// String formats the date as YYYY-MM-DD.
func (d CaptureDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date was never set.
func (d CaptureDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}
