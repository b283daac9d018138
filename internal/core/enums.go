package core

import (
	"fmt"
	"strings"
)

// CharacterState is the physical condition of a character.
type CharacterState int

const (
	CharacterNormal      CharacterState = iota
	CharacterInjured                    // HP below 50%
	CharacterCritical                   // HP below 25%
	CharacterCompromised                // under anomalous influence
	CharacterUnconscious
	CharacterDead
)

var characterStateNames = []string{"normal", "injured", "critical", "compromised", "unconscious", "dead"}

func (s CharacterState) String() string { return enumName(characterStateNames, int(s)) }

// MarshalText encodes the state by name.
func (s CharacterState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name (case-insensitive).
func (s *CharacterState) UnmarshalText(b []byte) error {
	return parseEnum(characterStateNames, "character state", b, (*int)(s))
}

// MentalState is the psychological condition of a character.
type MentalState int

const (
	MentalStable   MentalState = iota
	MentalStressed             // MS below 75%
	MentalUnstable             // MS below 50%
	MentalBreaking             // MS below 25%
	MentalBroken               // MS at 0
)

var mentalStateNames = []string{"stable", "stressed", "unstable", "breaking", "broken"}

func (s MentalState) String() string { return enumName(mentalStateNames, int(s)) }

// MarshalText encodes the state by name.
func (s MentalState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name (case-insensitive).
func (s *MentalState) UnmarshalText(b []byte) error {
	return parseEnum(mentalStateNames, "mental state", b, (*int)(s))
}

// LocationState is the security status of a location.
type LocationState int

const (
	LocationSecure LocationState = iota
	LocationUnsecured
	LocationCompromised
	LocationAnomalous // under active anomalous influence
	LocationInaccessible
)

var locationStateNames = []string{"secure", "unsecured", "compromised", "anomalous", "inaccessible"}

func (s LocationState) String() string { return enumName(locationStateNames, int(s)) }

// MarshalText encodes the state by name.
func (s LocationState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name (case-insensitive).
func (s *LocationState) UnmarshalText(b []byte) error {
	return parseEnum(locationStateNames, "location state", b, (*int)(s))
}

// MissionState tracks progress of a mission or objective.
type MissionState int

const (
	MissionNotStarted MissionState = iota
	MissionAvailable
	MissionInProgress
	MissionCompleted
	MissionFailed
	MissionLocked // prerequisites not met
)

var missionStateNames = []string{"not_started", "available", "in_progress", "completed", "failed", "locked"}

func (s MissionState) String() string { return enumName(missionStateNames, int(s)) }

// MarshalText encodes the state by name.
func (s MissionState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name (case-insensitive).
func (s *MissionState) UnmarshalText(b []byte) error {
	return parseEnum(missionStateNames, "mission state", b, (*int)(s))
}

// AnomalyState is the containment phase of an anomalous entity or effect.
type AnomalyState int

const (
	AnomalyDormant AnomalyState = iota
	AnomalyActive
	AnomalyContained
	AnomalyBreaching
	AnomalyUncontained
)

var anomalyStateNames = []string{"dormant", "active", "contained", "breaching", "uncontained"}

func (s AnomalyState) String() string { return enumName(anomalyStateNames, int(s)) }

// MarshalText encodes the state by name.
func (s AnomalyState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name (case-insensitive).
func (s *AnomalyState) UnmarshalText(b []byte) error {
	return parseEnum(anomalyStateNames, "anomaly state", b, (*int)(s))
}

// TrustLevel is an NPC's disposition toward the player.
type TrustLevel int

const (
	TrustHostile TrustLevel = iota
	TrustSuspicious
	TrustNeutral
	TrustTrusting
	TrustLoyal
)

var trustLevelNames = []string{"hostile", "suspicious", "neutral", "trusting", "loyal"}

func (t TrustLevel) String() string { return enumName(trustLevelNames, int(t)) }

// MarshalText encodes the level by name.
func (t TrustLevel) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a level name (case-insensitive).
func (t *TrustLevel) UnmarshalText(b []byte) error {
	return parseEnum(trustLevelNames, "trust level", b, (*int)(t))
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseEnum(names []string, kind string, b []byte, dst *int) error {
	want := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range names {
		if name == want {
			*dst = i
			return nil
		}
	}
	return fmt.Errorf("core: unknown %s %q", kind, string(b))
}
