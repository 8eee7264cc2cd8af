package importer

import "github.com/mcaimi/tmux-filmroll/internal/media"

// Observer receives progress events from a transfer. With more than one
// worker, OnOutcome is called from several goroutines, though never
// concurrently: the session serializes calls.
type Observer interface {
	// OnClassStart is called before the files of class are dispatched.
	OnClassStart(class media.Class, files int)
	// OnOutcome is called once per processed file. done counts processed
	// files so far, total is the number of files in the transfer.
	OnOutcome(done, total int, outcome Outcome)
}

type nopObserver struct{}

func (nopObserver) OnClassStart(media.Class, int) {}

func (nopObserver) OnOutcome(int, int, Outcome) {}
