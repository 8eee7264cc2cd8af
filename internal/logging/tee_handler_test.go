package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestTeeCollapses(t *testing.T) {
	if h := tee(nil, nil); h != slog.DiscardHandler {
		t.Fatalf("expected discard handler, got %T", h)
	}

	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := tee(nil, inner, nil); h != inner {
		t.Fatal("expected a single handler to be returned unwrapped")
	}
}

func TestTeeRespectsEachLevel(t *testing.T) {
	var console, file bytes.Buffer
	h := tee(
		newConsoleHandler(&console, slog.LevelInfo, false),
		newJSONHandler(&file, slog.LevelDebug, false),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled through the file handler")
	}

	logger := slog.New(h)
	logger.Debug("resolving date")
	logger.Info("copied")

	if strings.Contains(console.String(), "resolving date") {
		t.Fatalf("console handler received debug record: %q", console.String())
	}
	if !strings.Contains(console.String(), "copied") {
		t.Fatalf("console handler missing info record: %q", console.String())
	}
	if !strings.Contains(file.String(), "resolving date") || !strings.Contains(file.String(), "copied") {
		t.Fatalf("file handler missing records: %q", file.String())
	}
}

func TestTeeWithAttrsAndGroup(t *testing.T) {
	var a, b bytes.Buffer
	h := tee(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))

	logger := slog.New(h).With("run_id", "r1").WithGroup("file")
	logger.Info("imported", "path", "/src/a.jpg")

	for name, buf := range map[string]*bytes.Buffer{"a": &a, "b": &b} {
		out := buf.String()
		if !strings.Contains(out, `"run_id":"r1"`) {
			t.Fatalf("%s: missing run_id: %s", name, out)
		}
		if !strings.Contains(out, `"file":{"path":"/src/a.jpg"}`) {
			t.Fatalf("%s: missing grouped path: %s", name, out)
		}
	}
}

func TestTeeJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	h := tee(failingHandler{slog.NewJSONHandler(&buf, nil)}, slog.NewJSONHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "copied", 0))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !strings.Contains(buf.String(), "copied") {
		t.Fatalf("healthy handler skipped: %q", buf.String())
	}
}

func TestConsoleHandlerGroupsAndScope(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo, false)).
		With(FieldComponent, "metadata").
		WithGroup("exif")
	logger.Info("decoded", "tag", "DateTimeOriginal", "bytes", 42, "ok", true)

	line := buf.String()
	for _, want := range []string{"INFO  [metadata] decoded", "exif.tag=DateTimeOriginal", "exif.bytes=42", "exif.ok=true"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", line)
	}
}
