package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcaimi/tmux-filmroll/internal/media"
	"github.com/mcaimi/tmux-filmroll/internal/metadata"
)

func TestDestinationPaths(t *testing.T) {
	dest := Destination{Root: "/library"}
	date := metadata.CaptureDate{Year: 2023, Month: 5, Day: 4}

	tests := []struct {
		class media.Class
		want  string
	}{
		{media.Raw, "/library/2023/5/4/raw"},
		{media.Raster, "/library/2023/5/4/rasters"},
		{media.Video, "/library/2023/5/4/video"},
	}
	for _, tt := range tests {
		if got := dest.Dir(date, tt.class); got != filepath.FromSlash(tt.want) {
			t.Fatalf("Dir(%s) = %q, want %q", tt.class, got, tt.want)
		}
	}

	file := media.File{Path: "/card/DCIM/100/IMG_0042.CR2", Class: media.Raw}
	if got, want := dest.PathFor(date, file), filepath.FromSlash("/library/2023/5/4/raw/IMG_0042.CR2"); got != want {
		t.Fatalf("PathFor = %q, want %q", got, want)
	}

	trailing := Destination{Root: "/library/"}
	if got := trailing.Dir(date, media.Video); got != filepath.FromSlash("/library/2023/5/4/video") {
		t.Fatalf("trailing separator not cleaned: %q", got)
	}
}

func TestLockIsExclusive(t *testing.T) {
	root := t.TempDir()

	first, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	if filepath.Base(first.Path()) != LockFileName {
		t.Fatalf("unexpected lock path %s", first.Path())
	}

	if _, err := AcquireLock(root); err == nil {
		t.Fatal("expected second lock to fail")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(first.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("lock file left behind: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
	var none *Lock
	if err := none.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}

	again, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("AcquireLock after release: %v", err)
	}
	_ = again.Release()
}
