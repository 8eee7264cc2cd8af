package main

import (
	"context"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/mcaimi/tmux-filmroll/internal/importer"
)

// scanWithSpinner runs the source scan, animating a spinner on w when it is a
// terminal.
func scanWithSpinner(ctx context.Context, w io.Writer, session *importer.Session) error {
	if !shouldColorize(w) {
		return session.Scan(ctx)
	}
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	spin.Suffix = " scanning " + session.Source()
	spin.Start()
	defer spin.Stop()
	return session.Scan(ctx)
}
