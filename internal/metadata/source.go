package metadata

import (
	"time"
)

// Metadata is the opened view of one file's metadata.
//
// HasDateTime must be checked before DateTime; DateTime returns the zero time
// when no date is present. Err is non-nil when the container was opened but
// could not be parsed, which callers treat like an absent date.
type Metadata interface {
	HasDateTime() bool
	DateTime() time.Time
	Err() error
}

// Source opens files for metadata reading. Open returns an error only for hard
// I/O failures (missing file, permissions); parse problems are reported
// through Metadata.Err.
type Source interface {
	Open(path string) (Metadata, error)
}

// LookupKind tags the outcome of a metadata read.
type LookupKind int

const (
	Absent LookupKind = iota
	Found
	Unreadable
)

func (k LookupKind) String() string {
	switch k {
	case Found:
		return "found"
	case Unreadable:
		return "unreadable"
	default:
		return "absent"
	}
}

// Lookup is the tagged result of a metadata read: Found(Time), Absent, or
// Unreadable(Cause).
type Lookup struct {
	Kind  LookupKind
	Time  time.Time
	Cause error
}

// FoundAt builds a Found lookup.
func FoundAt(t time.Time) Lookup { return Lookup{Kind: Found, Time: t} }

// NotPresent builds an Absent lookup.
func NotPresent() Lookup { return Lookup{Kind: Absent} }

// ReadFailed builds an Unreadable lookup.
func ReadFailed(cause error) Lookup { return Lookup{Kind: Unreadable, Cause: cause} }

// HasDateTime implements Metadata.
func (l Lookup) HasDateTime() bool { return l.Kind == Found && !l.Time.IsZero() }

// DateTime implements Metadata.
func (l Lookup) DateTime() time.Time {
	if !l.HasDateTime() {
		return time.Time{}
	}
	return l.Time
}

// Err implements Metadata.
func (l Lookup) Err() error {
	if l.Kind == Unreadable {
		return l.Cause
	}
	return nil
}

// Inspect converts any Metadata into its tagged form.
func Inspect(md Metadata) Lookup {
	if md == nil {
		return NotPresent()
	}
	if md.HasDateTime() {
		return FoundAt(md.DateTime())
	}
	if err := md.Err(); err != nil {
		return ReadFailed(err)
	}
	return NotPresent()
}
