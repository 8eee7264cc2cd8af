package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Media.RawExtensions = normalizeExtensions(c.Media.RawExtensions)
	c.Media.RasterExtensions = normalizeExtensions(c.Media.RasterExtensions)
	c.Media.VideoExtensions = normalizeExtensions(c.Media.VideoExtensions)

	if c.Transfer.Workers == 0 {
		c.Transfer.Workers = defaultWorkers
	}
	var err error
	if c.Transfer.JournalPath, err = ExpandPath(strings.TrimSpace(c.Transfer.JournalPath)); err != nil {
		return fmt.Errorf("%w: transfer.journal_path: %w", ErrConfig, err)
	}

	c.normalizeLogging()
	if c.Logging.File, err = ExpandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("%w: logging.file: %w", ErrConfig, err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeExtensions lowercases, adds the leading dot, and drops blanks and
// duplicates while preserving order.
func normalizeExtensions(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimLeft(strings.TrimSpace(value), "."))
		if ext == "" {
			continue
		}
		ext = "." + ext
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}
