package metadata

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mcaimi/tmux-filmroll/internal/logging"
	"github.com/mcaimi/tmux-filmroll/internal/media"
)

// Resolver derives capture dates, preferring structured metadata and falling
// back to the filesystem modification time.
type Resolver struct {
	sources  map[media.Class]Source
	fallback Source
	stat     func(string) (fs.FileInfo, error)
	logger   *slog.Logger
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithSource overrides the metadata source used for class.
func WithSource(class media.Class, src Source) ResolverOption {
	return func(r *Resolver) {
		if class == media.Unclassified {
			r.fallback = src
			return
		}
		r.sources[class] = src
	}
}

// NewResolver returns a resolver wired with the EXIF source for raw and raster
// files and the MP4 source for video.
func NewResolver(logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		sources: map[media.Class]Source{
			media.Raw:    ExifSource{},
			media.Raster: ExifSource{},
			media.Video:  MP4Source{},
		},
		fallback: ExifSource{},
		stat:     os.Stat,
		logger:   logging.NewComponentLogger(logger, "metadata"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the capture date for file. The only error it returns is an
// *OpenError for files that cannot be opened or stat'ed.
func (r *Resolver) Resolve(ctx context.Context, file media.File) (CaptureDate, error) {
	logger := logging.WithContext(ctx, r.logger).With(logging.String(logging.FieldPath, file.Path))

	md, err := r.sourceFor(file.Class).Open(file.Path)
	if err != nil {
		return CaptureDate{}, &OpenError{Path: file.Path, Err: err}
	}

	lookup := Inspect(md)
	if lookup.Kind == Found {
		date := DateOf(lookup.Time, OriginMetadata)
		logger.Debug("capture date from metadata", logging.String("date", date.String()))
		return date, nil
	}

	info, err := r.stat(file.Path)
	if err != nil {
		return CaptureDate{}, &OpenError{Path: file.Path, Err: err}
	}
	date := DateOf(info.ModTime(), OriginFilesystem)

	attrs := []logging.Attr{
		logging.String("date", date.String()),
		logging.String("lookup", lookup.Kind.String()),
	}
	if lookup.Cause != nil {
		attrs = append(attrs, logging.Error(lookup.Cause))
	}
	logger.Debug("capture date from modification time", logging.Args(attrs...)...)
	return date, nil
}

func (r *Resolver) sourceFor(class media.Class) Source {
	if src, ok := r.sources[class]; ok && src != nil {
		return src
	}
	return r.fallback
}
