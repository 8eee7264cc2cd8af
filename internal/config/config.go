package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mcaimi/tmux-filmroll/internal/media"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrConfig marks configuration and usage errors. They are fatal and reported
// before any file is scanned.
var ErrConfig = errors.New("configuration error")

// Media configures how files are classified.
type Media struct {
	RawExtensions      []string `toml:"raw_extensions"`
	RasterExtensions   []string `toml:"raster_extensions"`
	VideoExtensions    []string `toml:"video_extensions"`
	SniffExtensionless bool     `toml:"sniff_extensionless"`
}

// Transfer configures the copy stage.
type Transfer struct {
	Workers     int    `toml:"workers"`
	JournalPath string `toml:"journal_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates every setting filmroll reads.
type Config struct {
	Media    Media    `toml:"media"`
	Transfer Transfer `toml:"transfer"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath is where 'filmroll config init' writes when no path is
// given. Load never reads it implicitly.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/filmroll/config.toml")
}

// Load returns the defaults overlaid with the TOML file at path, normalized
// and validated. An empty path yields the defaults; a named file must exist.
// It also returns the resolved file path and whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	var resolved string
	if strings.TrimSpace(path) != "" {
		var err error
		if resolved, err = decodeFile(path, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, resolved != "", nil
}

// decodeFile strictly decodes the file at path into cfg and returns the
// resolved path.
func decodeFile(path string, cfg *Config) (string, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfig, err)
	}
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: config file %s not found (create one with 'filmroll config init')", ErrConfig, resolved)
	case err != nil:
		return "", fmt.Errorf("%w: read config: %w", ErrConfig, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return "", fmt.Errorf("%w: %s: unknown setting\n%s", ErrConfig, resolved, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return "", fmt.Errorf("%w: %s:%d:%d: %s", ErrConfig, resolved, row, col, decodeErr.Error())
		}
		return "", fmt.Errorf("%w: parse %s: %w", ErrConfig, resolved, err)
	}
	return resolved, nil
}

// ExtensionSets returns the configured extensions in the form the classifier
// consumes.
func (c *Config) ExtensionSets() media.ExtensionSets {
	return media.ExtensionSets{
		Raw:    append([]string(nil), c.Media.RawExtensions...),
		Raster: append([]string(nil), c.Media.RasterExtensions...),
		Video:  append([]string(nil), c.Media.VideoExtensions...),
	}
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// ExpandPath resolves a leading "~" to the home directory and returns the
// cleaned absolute path. The empty string is returned unchanged.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		path = home + path[1:]
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return absolute, nil
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories. An existing file is never replaced.
func CreateSample(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if _, err := io.WriteString(f, sampleConfig); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
