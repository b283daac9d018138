package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/chimera.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration. It matches the
// embedded defaults/chimera.yaml.
func DefaultConfig() Config {
	return Config{
		Story: "chimera",
		Text: TextConfig{
			LineDelay: time.Second,
		},
		Log: LogConfig{
			File:  "game.log",
			Level: "info",
		},
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  "~/.chimera/journal.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
