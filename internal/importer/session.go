package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/mcaimi/tmux-filmroll/internal/config"
	"github.com/mcaimi/tmux-filmroll/internal/fileutil"
	"github.com/mcaimi/tmux-filmroll/internal/logging"
	"github.com/mcaimi/tmux-filmroll/internal/media"
	"github.com/mcaimi/tmux-filmroll/internal/metadata"
)

// DateResolver derives the capture date of a file.
type DateResolver interface {
	Resolve(ctx context.Context, file media.File) (metadata.CaptureDate, error)
}

// Options configures a Session.
type Options struct {
	Source      string
	Destination string
	DryRun      bool
	// Workers bounds parallel transfers; values below 2 transfer sequentially.
	Workers    int
	Classifier *media.Classifier
	Resolver   DateResolver
	Logger     *slog.Logger
	Observer   Observer
	// RunID correlates logs and journal entries; generated when empty.
	RunID string
}

// Session is one import invocation: a scanned source tree and the settings
// used to transfer it.
type Session struct {
	runID      string
	source     string
	dest       Destination
	dryRun     bool
	workers    int
	classifier *media.Classifier
	resolver   DateResolver
	logger     *slog.Logger
	observer   Observer

	files map[media.Class][]media.File
	sizes map[string]int64

	rootCreated bool

	dirMu sync.Mutex
	dirs  map[string]struct{}
}

// New validates opts and returns a session ready to Scan. Missing or identical
// source and destination paths are configuration errors.
func New(opts Options) (*Session, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return nil, fmt.Errorf("%w: source path is required", config.ErrConfig)
	}
	if strings.TrimSpace(opts.Destination) == "" {
		return nil, fmt.Errorf("%w: destination path is required", config.ErrConfig)
	}
	source, err := config.ExpandPath(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %w", config.ErrConfig, err)
	}
	dest, err := config.ExpandPath(opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: destination: %w", config.ErrConfig, err)
	}
	if source == dest {
		return nil, fmt.Errorf("%w: source and destination are the same directory (%s)", config.ErrConfig, source)
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %w", config.ErrConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: source %s is not a directory", config.ErrConfig, source)
	}
	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: destination %s is not a directory", config.ErrConfig, dest)
	}

	classifier := opts.Classifier
	if classifier == nil {
		if classifier, err = media.NewClassifier(media.DefaultExtensionSets()); err != nil {
			return nil, err
		}
	}
	runID := strings.TrimSpace(opts.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = metadata.NewResolver(opts.Logger)
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Session{
		runID:      runID,
		source:     source,
		dest:       Destination{Root: dest},
		dryRun:     opts.DryRun,
		workers:    workers,
		classifier: classifier,
		resolver:   resolver,
		logger:     logging.NewComponentLogger(opts.Logger, "importer"),
		observer:   observer,
		files:      make(map[media.Class][]media.File),
		sizes:      make(map[string]int64),
		dirs:       make(map[string]struct{}),
	}, nil
}

// RunID returns the identifier of this session.
func (s *Session) RunID() string { return s.runID }

// Source returns the absolute source root.
func (s *Session) Source() string { return s.source }

// Destination returns the absolute destination root.
func (s *Session) Destination() string { return s.dest.Root }

// DryRun reports whether the session only plans its actions.
func (s *Session) DryRun() bool { return s.dryRun }

// Context returns ctx tagged with the session run ID for logging.
func (s *Session) Context(ctx context.Context) context.Context {
	return logging.WithRunID(ctx, s.runID)
}

// Scan walks the source tree in lexical order and records every classified
// regular file. Unreadable subdirectories are logged and skipped; only a
// failure to read the source root is returned. Scanning again replaces the
// previous results.
func (s *Session) Scan(ctx context.Context) error {
	ctx = s.Context(ctx)
	logger := logging.WithContext(ctx, s.logger)

	files := make(map[media.Class][]media.File)
	sizes := make(map[string]int64)
	var ignored int

	err := filepath.WalkDir(s.source, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == s.source {
				return &fileutil.Error{Op: "stat", Path: path, Err: walkErr}
			}
			logging.WarnWithContext(logger, "cannot read source entry", "scan_entry_unreadable",
				logging.String(logging.FieldPath, path),
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check permissions on the source tree"),
				logging.String(logging.FieldImpact, "entry not imported"),
			)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != s.source && path == s.dest.Root {
				logger.Debug("skipping destination nested in source", logging.String(logging.FieldPath, path))
				return filepath.SkipDir
			}
			return nil
		}

		info, ok := regularFileInfo(path, d)
		if !ok {
			return nil
		}
		file := s.classifier.Classify(path)
		if file.Class == media.Unclassified {
			ignored++
			logger.Debug("ignoring unsupported file", logging.String(logging.FieldPath, path))
			return nil
		}
		files[file.Class] = append(files[file.Class], file)
		sizes[path] = info.Size()
		return nil
	})
	if err != nil {
		return err
	}

	s.files = files
	s.sizes = sizes
	counts := s.Count()
	logger.Info("scan complete",
		logging.Int("raw", counts.Raw),
		logging.Int("raster", counts.Raster),
		logging.Int("video", counts.Video),
		logging.Int("ignored", ignored),
	)
	return nil
}

// regularFileInfo resolves d to a regular file, following symlinks.
func regularFileInfo(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	}
	if !d.Type().IsRegular() {
		return nil, false
	}
	info, err := d.Info()
	if err != nil {
		return nil, false
	}
	return info, true
}

// Count returns the number of scanned files per class.
func (s *Session) Count() Counts {
	return Counts{
		Raw:    len(s.files[media.Raw]),
		Raster: len(s.files[media.Raster]),
		Video:  len(s.files[media.Video]),
	}
}

// Files returns a copy of the scanned files of class, in scan order.
func (s *Session) Files(class media.Class) []media.File {
	return append([]media.File(nil), s.files[class]...)
}

// PendingBytes returns the total size of every scanned file.
func (s *Session) PendingBytes() int64 {
	var total int64
	for _, size := range s.sizes {
		total += size
	}
	return total
}

// TransferAll imports every scanned file: rasters first, then raws, then
// videos. It never returns early on a per-file error; cancellation of ctx
// stops dispatching further files and marks the report interrupted.
func (s *Session) TransferAll(ctx context.Context) Report {
	ctx = s.Context(ctx)
	logger := logging.WithContext(ctx, s.logger)

	report := Report{
		RunID:       s.runID,
		Source:      s.source,
		Destination: s.dest.Root,
		DryRun:      s.dryRun,
		StartedAt:   time.Now().UTC(),
	}
	s.dirMu.Lock()
	s.dirs = make(map[string]struct{})
	s.dirMu.Unlock()
	report.RootCreated = s.rootCreated

	var ordered []media.File
	for _, class := range media.TransferOrder {
		ordered = append(ordered, s.files[class]...)
	}

	outcomes := make([]Outcome, len(ordered))
	processed := make([]bool, len(ordered))
	progress := &progressTracker{observer: s.observer, total: len(ordered)}

	if s.workers > 1 && len(ordered) > 1 {
		report.Interrupted = s.transferParallel(ctx, logger, ordered, outcomes, processed, progress)
	} else {
		report.Interrupted = s.transferSequential(ctx, ordered, outcomes, processed, progress)
	}

	for i, done := range processed {
		if done {
			report.Outcomes = append(report.Outcomes, outcomes[i])
		}
	}
	report.FinishedAt = time.Now().UTC()

	logger.Info("transfer complete",
		logging.Bool("dry_run", s.dryRun),
		logging.Int("copied", report.Count(ActionCopied)),
		logging.Int("skipped", report.Count(ActionSkipped)),
		logging.Int("would_copy", report.Count(ActionWouldCopy)),
		logging.Int("failed", report.Failed()),
		logging.Bool("interrupted", report.Interrupted),
		logging.Duration("duration", report.Duration()),
	)
	return report
}

// RootCreated reports whether PrepareDestination found the destination root
// missing.
func (s *Session) RootCreated() bool {
	return s.rootCreated
}

// PrepareDestination creates a missing destination root and, for real runs,
// takes the import lock on it. A dry run creates nothing and returns a nil
// Lock. Whether the root was missing is carried into the next Report.
func (s *Session) PrepareDestination(ctx context.Context) (*Lock, error) {
	logger := logging.WithContext(s.Context(ctx), s.logger)
	root := s.dest.Root

	exists, err := fileutil.Exists(root)
	if err != nil {
		logging.ErrorWithContext(logger, "cannot inspect destination root", "destination_root_failed",
			logging.String(logging.FieldDestination, root),
			logging.Error(err),
		)
		return nil, err
	}
	s.rootCreated = !exists

	switch {
	case exists:
	case s.dryRun:
		logger.Info("destination root would be created", logging.String(logging.FieldDestination, root))
	default:
		if err := fileutil.EnsureDir(root); err != nil {
			logging.ErrorWithContext(logger, "cannot create destination root", "destination_root_failed",
				logging.String(logging.FieldDestination, root),
				logging.Error(err),
			)
			return nil, err
		}
		logger.Info("created destination root", logging.String(logging.FieldDestination, root))
	}

	if s.dryRun {
		return nil, nil
	}
	return AcquireLock(root)
}

func (s *Session) transferSequential(ctx context.Context, files []media.File, outcomes []Outcome, processed []bool, progress *progressTracker) bool {
	for i, file := range files {
		if ctx.Err() != nil {
			return true
		}
		progress.classStart(file.Class, s.Count().Of(file.Class))
		outcomes[i] = s.transferOne(ctx, file)
		processed[i] = true
		progress.done(outcomes[i])
	}
	return false
}

func (s *Session) transferParallel(ctx context.Context, logger *slog.Logger, files []media.File, outcomes []Outcome, processed []bool, progress *progressTracker) bool {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		logger.Warn("worker pool unavailable; transferring sequentially", logging.Error(err))
		return s.transferSequential(ctx, files, outcomes, processed, progress)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	interrupted := false
	for i, file := range files {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		progress.classStart(file.Class, s.Count().Of(file.Class))
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = s.transferOne(ctx, file)
			processed[i] = true
			progress.done(outcomes[i])
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i] = s.failed(ctx, file, metadata.CaptureDate{}, "", fmt.Errorf("dispatch transfer: %w", submitErr))
			processed[i] = true
			progress.done(outcomes[i])
		}
	}
	wg.Wait()
	return interrupted
}

// transferOne runs the per-file pipeline: resolve the date, prepare the
// directory, then copy unless the target exists or the run is dry.
func (s *Session) transferOne(ctx context.Context, file media.File) Outcome {
	ctx = logging.WithClass(ctx, file.Class.String())
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldPath, file.Path))

	date, err := s.resolver.Resolve(ctx, file)
	if err != nil {
		return s.failed(ctx, file, date, "", err)
	}

	dir := s.dest.Dir(date, file.Class)
	target := filepath.Join(dir, file.Base())
	outcome := Outcome{File: file, Date: date, Destination: target}

	newDir, err := s.prepareDir(dir)
	if err != nil {
		return s.failed(ctx, file, date, target, err)
	}
	outcome.NewDir = newDir
	if newDir {
		verb := "created directory"
		if s.dryRun {
			verb = "directory would be created"
		}
		logger.Debug(verb, logging.String(logging.FieldDestination, dir))
	}

	exists, err := fileutil.Exists(target)
	if err != nil {
		return s.failed(ctx, file, date, target, err)
	}
	if exists {
		outcome.Action = ActionSkipped
		logger.Info("skipping existing file", logging.String(logging.FieldDestination, target))
		return outcome
	}

	if s.dryRun {
		outcome.Action = ActionWouldCopy
		logger.Debug("would import", logging.String(logging.FieldDestination, target))
		return outcome
	}

	written, err := fileutil.CopyNoOverwrite(file.Path, target)
	switch {
	case errors.Is(err, fileutil.ErrExists):
		outcome.Action = ActionSkipped
		logger.Info("skipping existing file", logging.String(logging.FieldDestination, target))
		return outcome
	case err != nil:
		return s.failed(ctx, file, date, target, err)
	}

	outcome.Action = ActionCopied
	outcome.Bytes = written
	logger.Info("imported",
		logging.String(logging.FieldDestination, target),
		logging.String("date", date.String()),
		logging.String("date_origin", string(date.Origin)),
		logging.Int64("bytes", written),
	)
	return outcome
}

func (s *Session) failed(ctx context.Context, file media.File, date metadata.CaptureDate, target string, err error) Outcome {
	logger := logging.WithContext(logging.WithClass(ctx, file.Class.String()), s.logger)

	eventType := "import_failed"
	hint := "check permissions and free space on the destination"
	if errors.Is(err, metadata.ErrOpen) {
		eventType = "metadata_open_failed"
		hint = "check that the source file is readable"
	}
	logging.WarnWithContext(logger, "file not imported", eventType,
		logging.String(logging.FieldPath, file.Path),
		logging.String(logging.FieldAction, string(ActionFailed)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
	)
	return Outcome{File: file, Date: date, Destination: target, Action: ActionFailed, Err: err}
}

// prepareDir makes sure dir exists (real runs) and reports whether this call
// is the first to find it missing. Dry runs only check.
func (s *Session) prepareDir(dir string) (bool, error) {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()

	if _, seen := s.dirs[dir]; seen {
		return false, nil
	}
	exists, err := fileutil.Exists(dir)
	if err != nil {
		return false, err
	}
	if !exists && !s.dryRun {
		if err := fileutil.EnsureDir(dir); err != nil {
			return false, err
		}
	}
	s.dirs[dir] = struct{}{}
	return !exists, nil
}

// progressTracker serializes observer calls coming from worker goroutines.
type progressTracker struct {
	mu        sync.Mutex
	observer  Observer
	total     int
	completed int
	started   map[media.Class]bool
}

func (p *progressTracker) classStart(class media.Class, files int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started == nil {
		p.started = make(map[media.Class]bool)
	}
	if p.started[class] {
		return
	}
	p.started[class] = true
	p.observer.OnClassStart(class, files)
}

func (p *progressTracker) done(outcome Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
	p.observer.OnOutcome(p.completed, p.total, outcome)
}
