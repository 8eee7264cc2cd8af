package config

import "github.com/mcaimi/tmux-filmroll/internal/media"

const (
	defaultWorkers   = 1
	maxWorkers       = 64
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with built-in defaults.
func Default() Config {
	sets := media.DefaultExtensionSets()
	return Config{
		Media: Media{
			RawExtensions:    append([]string(nil), sets.Raw...),
			RasterExtensions: append([]string(nil), sets.Raster...),
			VideoExtensions:  append([]string(nil), sets.Video...),
		},
		Transfer: Transfer{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
