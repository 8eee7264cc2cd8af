package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mcaimi/tmux-filmroll/internal/importer"
	"github.com/mcaimi/tmux-filmroll/internal/media"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// progressPrinter writes one status line per transferred file.
type progressPrinter struct {
	out      io.Writer
	colorize bool
}

func newProgressPrinter(out io.Writer, colorize bool) *progressPrinter {
	return &progressPrinter{out: out, colorize: colorize}
}

func (p *progressPrinter) OnClassStart(class media.Class, files int) {
	if files == 0 {
		return
	}
	p.line(ansiBlue, "== %s: %d %s ==", class.Subfolder(), files, plural(files, "file", "files"))
}

func (p *progressPrinter) OnOutcome(done, total int, outcome importer.Outcome) {
	dir := filepath.Dir(outcome.Destination)
	if outcome.NewDir {
		p.createdDir(dir)
	}
	switch outcome.Action {
	case importer.ActionSkipped:
		p.line(ansiYellow, "\t--> Skipping existing file %s...", outcome.Destination)
	case importer.ActionCopied, importer.ActionWouldCopy:
		p.line(ansiGreen, "=| [%d/%d] Importing [%s] to [%s]...", done, total, outcome.File.Path, dir)
	case importer.ActionFailed:
		p.line(ansiRed, "=! [%d/%d] Failed to import [%s]: %v", done, total, outcome.File.Path, outcome.Err)
	}
}

func (p *progressPrinter) createdDir(dir string) {
	p.line("", "\t->Need to create directory: %s", dir)
}

func (p *progressPrinter) line(color, format string, args ...any) {
	fmt.Fprintln(p.out, paint(p.colorize && color != "", color, fmt.Sprintf(format, args...)))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
