package config

import (
	"strings"
	"time"
)

// PacePreset names a narrative pacing level.
type PacePreset string

const (
	PaceInstant  PacePreset = "instant"
	PaceFast     PacePreset = "fast"
	PaceNormal   PacePreset = "normal"
	PaceDramatic PacePreset = "dramatic"
)

// ParsePacePreset parses a preset name (case-insensitive).
func ParsePacePreset(s string) (PacePreset, bool) {
	switch PacePreset(strings.ToLower(strings.TrimSpace(s))) {
	case PaceInstant:
		return PaceInstant, true
	case PaceFast:
		return PaceFast, true
	case PaceNormal:
		return PaceNormal, true
	case PaceDramatic:
		return PaceDramatic, true
	}
	return "", false
}

// DelayForPreset returns the per-line delay for a preset.
func DelayForPreset(p PacePreset) time.Duration {
	switch p {
	case PaceInstant:
		return 0
	case PaceFast:
		return 250 * time.Millisecond
	case PaceDramatic:
		return 2 * time.Second
	default:
		return time.Second
	}
}

// PresetNames lists the accepted preset names, for flag help.
func PresetNames() []string {
	return []string{string(PaceInstant), string(PaceFast), string(PaceNormal), string(PaceDramatic)}
}
