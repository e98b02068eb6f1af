package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // paths to scan for music library

	// Initial volume level in [0.0, 1.0]; runtime changes are persisted
	// separately and override this on later runs.
	Volume float64 `koanf:"volume"`

	// Tick loop cadence in milliseconds.
	TickIntervalMS int `koanf:"tick_interval_ms"`

	Playback PlaybackConfig `koanf:"playback"`
}

// PlaybackConfig holds the initial playback settings.
type PlaybackConfig struct {
	RepeatMode    string `koanf:"repeat_mode"` // "all" or "one"
	RepeatEnabled bool   `koanf:"repeat_enabled"`
	Shuffle       bool   `koanf:"shuffle"`

	// Autoplay starts a session over the library as soon as it has
	// tracks, without waiting for a remote command.
	Autoplay bool `koanf:"autoplay"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Volume:         1.0,
		TickIntervalMS: 100,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in library_sources
	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}

	if cfg.Volume < 0 {
		cfg.Volume = 0
	}
	if cfg.Volume > 1 {
		cfg.Volume = 1
	}
	if cfg.TickIntervalMS <= 0 {
		cfg.TickIntervalMS = 100
	}
	if cfg.Playback.RepeatMode != "one" {
		cfg.Playback.RepeatMode = "all"
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/segue/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "segue", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
