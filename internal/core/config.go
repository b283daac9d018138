package core

import "time"

// RuntimeConfig contains the per-run settings handed to the menu and the
// story routine. Each game run (local terminal or SSH connection) gets its
// own copy.
type RuntimeConfig struct {
	LineDelay time.Duration // Pause after each narrative line
	StoryID   string        // Registered story pack to play
	Origin    string        // "local" or "ssh:<user>", recorded in the run journal
}

// DefaultLineDelay is the pause between narrative lines.
const DefaultLineDelay = time.Second

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		LineDelay: DefaultLineDelay,
		StoryID:   "chimera",
		Origin:    "local",
	}
}
