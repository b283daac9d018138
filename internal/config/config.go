// Package config provides YAML-based configuration loading with environment
// overrides and narrative pacing presets.
package config

import "time"

// Config is the full game configuration.
type Config struct {
	Story   string        `yaml:"story"   env:"CHIMERA_STORY"`
	Text    TextConfig    `yaml:"text"`
	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`
	Server  ServerConfig  `yaml:"server"`
}

// TextConfig controls narrative pacing.
type TextConfig struct {
	LineDelay time.Duration `yaml:"line_delay" env:"CHIMERA_LINE_DELAY"`
	Pace      string        `yaml:"pace"       env:"CHIMERA_PACE"`
}

// LogConfig controls the log destination and verbosity.
type LogConfig struct {
	File  string `yaml:"file"  env:"CHIMERA_LOG_FILE"`
	Level string `yaml:"level" env:"CHIMERA_LOG_LEVEL"`
}

// JournalConfig controls the SQLite run journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" env:"CHIMERA_JOURNAL"`
	DBPath  string `yaml:"db_path" env:"CHIMERA_DB"`
}

// ServerConfig controls the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"       env:"CHIMERA_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"CHIMERA_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env:"CHIMERA_IDLE_TIMEOUT"`
}

// EffectiveDelay resolves the effective pause between narrative lines.
// A valid pace preset wins over the explicit delay.
func (c TextConfig) EffectiveDelay() time.Duration {
	if c.Pace != "" {
		if preset, ok := ParsePacePreset(c.Pace); ok {
			return DelayForPreset(preset)
		}
	}
	if c.LineDelay < 0 {
		return 0
	}
	return c.LineDelay
}
