package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/mcaimi/tmux-filmroll/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose file paths live in a per-test temp
// directory, then applies opts.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithJournal enables the journal at a temp path.
func WithJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transfer.JournalPath = filepath.Join(b.baseDir, "journal.db")
	}
}

// WithWorkers sets the transfer worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transfer.Workers = n
	}
}

// WithExtensions replaces the extension sets.
func WithExtensions(raw, raster, video []string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Media.RawExtensions = raw
		b.cfg.Media.RasterExtensions = raster
		b.cfg.Media.VideoExtensions = video
	}
}

// WriteConfigFile serializes cfg as TOML into a temp file and returns its path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := config.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "filmroll.toml")
	WriteBytes(t, path, data)
	return path
}
