package config

import (
	"fmt"

	"github.com/mcaimi/tmux-filmroll/internal/media"
)

// Validate ensures the configuration is usable. Every failure wraps ErrConfig.
func (c *Config) Validate() error {
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateTransfer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMedia() error {
	sets := c.ExtensionSets()
	if len(sets.Raw)+len(sets.Raster)+len(sets.Video) == 0 {
		return fmt.Errorf("%w: media: at least one extension must be configured", ErrConfig)
	}
	if _, err := media.NewClassifier(sets); err != nil {
		return fmt.Errorf("%w: media: %w", ErrConfig, err)
	}
	return nil
}

func (c *Config) validateTransfer() error {
	if c.Transfer.Workers < 1 || c.Transfer.Workers > maxWorkers {
		return fmt.Errorf("%w: transfer.workers must be between 1 and %d, got %d", ErrConfig, maxWorkers, c.Transfer.Workers)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrConfig, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error, got %q", ErrConfig, c.Logging.Level)
	}
	return nil
}
