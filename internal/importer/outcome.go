package importer

import (
	"time"

	"github.com/mcaimi/tmux-filmroll/internal/media"
	"github.com/mcaimi/tmux-filmroll/internal/metadata"
)

// Action is what happened to one file.
type Action string

const (
	ActionCopied    Action = "copied"
	ActionSkipped   Action = "skipped"
	ActionWouldCopy Action = "would_copy"
	ActionFailed    Action = "failed"
)

// Outcome records the result of processing a single file.
type Outcome struct {
	File        media.File
	Date        metadata.CaptureDate
	Destination string
	Action      Action
	// NewDir is set on the first outcome that created (or, in a dry run,
	// would create) its destination directory.
	NewDir bool
	Bytes  int64
	Err    error
}

// Counts holds the number of pending files per class.
type Counts struct {
	Raw    int
	Raster int
	Video  int
}

// Total returns the number of classified files.
func (c Counts) Total() int {
	return c.Raw + c.Raster + c.Video
}

// Of returns the count for class.
func (c Counts) Of(class media.Class) int {
	switch class {
	case media.Raw:
		return c.Raw
	case media.Raster:
		return c.Raster
	case media.Video:
		return c.Video
	default:
		return 0
	}
}

// Report aggregates every outcome of a transfer. Outcomes are ordered rasters,
// then raws, then videos, each in scan order, regardless of worker count.
type Report struct {
	RunID       string
	Source      string
	Destination string
	DryRun      bool
	// RootCreated reports that the destination root was missing; in a dry run
	// it was not actually created.
	RootCreated bool
	// Interrupted is set when cancellation stopped the transfer before every
	// file was processed.
	Interrupted bool
	StartedAt   time.Time
	FinishedAt  time.Time
	Outcomes    []Outcome
}

// Count returns the number of outcomes with action.
func (r Report) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be imported.
func (r Report) Failed() int {
	return r.Count(ActionFailed)
}

// Failures returns the failed outcomes in report order.
func (r Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Action == ActionFailed {
			out = append(out, o)
		}
	}
	return out
}

// BytesCopied sums the bytes written by successful copies.
func (r Report) BytesCopied() int64 {
	var total int64
	for _, o := range r.Outcomes {
		if o.Action == ActionCopied {
			total += o.Bytes
		}
	}
	return total
}

// Duration is the wall time of the transfer.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
