package metadata_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcaimi/tmux-filmroll/internal/logging"
	"github.com/mcaimi/tmux-filmroll/internal/media"
	"github.com/mcaimi/tmux-filmroll/internal/metadata"
	"github.com/mcaimi/tmux-filmroll/internal/testsupport"
)

type stubSource struct {
	md  metadata.Metadata
	err error
}

func (s stubSource) Open(string) (metadata.Metadata, error) {
	return s.md, s.err
}

func TestResolvePrefersMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_0001.JPG")
	testsupport.WriteFile(t, path, 16)
	testsupport.SetModTime(t, path, time.Date(2020, 1, 1, 12, 0, 0, 0, time.Local))

	shot := time.Date(2023, 5, 14, 10, 20, 30, 0, time.Local)
	resolver := metadata.NewResolver(logging.NewNop(),
		metadata.WithSource(media.Raster, stubSource{md: metadata.FoundAt(shot)}))

	date, err := resolver.Resolve(context.Background(), media.File{Path: path, Class: media.Raster})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := metadata.CaptureDate{Year: 2023, Month: 5, Day: 14, Origin: metadata.OriginMetadata}
	if date != want {
		t.Fatalf("date = %+v, want %+v", date, want)
	}
}

func TestResolveFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "DSC_0001.NEF")
	testsupport.WriteFile(t, path, 16)
	testsupport.SetModTime(t, path, time.Date(2020, 1, 1, 12, 0, 0, 0, time.Local))

	cases := map[string]metadata.Metadata{
		"absent":     metadata.NotPresent(),
		"unreadable": metadata.ReadFailed(errors.New("truncated ifd")),
		"nil":        nil,
	}
	for name, md := range cases {
		t.Run(name, func(t *testing.T) {
			resolver := metadata.NewResolver(logging.NewNop(),
				metadata.WithSource(media.Raw, stubSource{md: md}))

			date, err := resolver.Resolve(context.Background(), media.File{Path: path, Class: media.Raw})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			want := metadata.CaptureDate{Year: 2020, Month: 1, Day: 1, Origin: metadata.OriginFilesystem}
			if date != want {
				t.Fatalf("date = %+v, want %+v", date, want)
			}
		})
	}
}

func TestResolveOpenFailure(t *testing.T) {
	resolver := metadata.NewResolver(logging.NewNop(),
		metadata.WithSource(media.Video, stubSource{err: errors.New("permission denied")}))

	_, err := resolver.Resolve(context.Background(), media.File{Path: "/nowhere/clip.mov", Class: media.Video})
	if !errors.Is(err, metadata.ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	var openErr *metadata.OpenError
	if !errors.As(err, &openErr) || openErr.Path != "/nowhere/clip.mov" {
		t.Fatalf("expected OpenError for path, got %#v", err)
	}
}

func TestResolveMissingFileWithDefaultSources(t *testing.T) {
	resolver := metadata.NewResolver(logging.NewNop())
	missing := filepath.Join(t.TempDir(), "gone.jpg")

	_, err := resolver.Resolve(context.Background(), media.File{Path: missing, Class: media.Raster})
	if !metadata.IsOpenError(err) {
		t.Fatalf("expected OpenError, got %v", err)
	}
}

func TestResolveDefaultSourcesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2019, 7, 4, 9, 0, 0, 0, time.Local)

	raster := filepath.Join(dir, "a.jpg")
	testsupport.WriteBytes(t, raster, testsupport.JPEGWithDate(time.Date(2023, 5, 14, 10, 20, 30, 0, time.Local)))
	raw := filepath.Join(dir, "b.tif")
	testsupport.WriteBytes(t, raw, testsupport.TIFFWithDate(time.Date(2022, 12, 31, 23, 59, 59, 0, time.Local)))
	video := filepath.Join(dir, "c.mp4")
	testsupport.WriteBytes(t, video, testsupport.MP4WithCreation(time.Date(2021, 3, 9, 8, 0, 0, 0, time.UTC)))
	bare := filepath.Join(dir, "d.jpg")
	testsupport.WriteBytes(t, bare, testsupport.JPEGWithoutExif())
	for _, p := range []string{raster, raw, video, bare} {
		testsupport.SetModTime(t, p, mtime)
	}

	resolver := metadata.NewResolver(logging.NewNop())
	tests := []struct {
		file media.File
		want metadata.CaptureDate
	}{
		{media.File{Path: raster, Class: media.Raster}, metadata.CaptureDate{Year: 2023, Month: 5, Day: 14, Origin: metadata.OriginMetadata}},
		{media.File{Path: raw, Class: media.Raw}, metadata.CaptureDate{Year: 2022, Month: 12, Day: 31, Origin: metadata.OriginMetadata}},
		{media.File{Path: video, Class: media.Video}, metadata.CaptureDate{Year: 2021, Month: 3, Day: 9, Origin: metadata.OriginMetadata}},
		{media.File{Path: bare, Class: media.Raster}, metadata.CaptureDate{Year: 2019, Month: 7, Day: 4, Origin: metadata.OriginFilesystem}},
	}
	for _, tt := range tests {
		got, err := resolver.Resolve(context.Background(), tt.file)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", tt.file.Path, err)
		}
		if got != tt.want {
			t.Fatalf("Resolve(%s) = %+v, want %+v", filepath.Base(tt.file.Path), got, tt.want)
		}
	}
}

func TestCaptureDateString(t *testing.T) {
	d := metadata.CaptureDate{Year: 2023, Month: 5, Day: 4}
	if got := d.String(); got != "2023-05-04" {
		t.Fatalf("String() = %q", got)
	}
	if d.IsZero() {
		t.Fatal("expected non-zero date")
	}
	if !(metadata.CaptureDate{}).IsZero() {
		t.Fatal("expected zero date")
	}
}
