// Package models holds the attribute-bag value types for the story world:
// characters, items, locations, missions and dialogue nodes.
//
// None of these types enforce invariants. Constructors only fill in the
// defaults a freshly declared entity should carry.
package models

import "github.com/vovakirdan/chimera/internal/core"

// CharacteristicStats are a character's base attributes.
type CharacteristicStats struct {
	Strength     int `yaml:"strength"`
	Constitution int `yaml:"constitution"`
	Size         int `yaml:"size"`
	Intelligence int `yaml:"intelligence"`
	Power        int `yaml:"power"`
	Dexterity    int `yaml:"dexterity"`
	Appearance   int `yaml:"appearance"`
	Education    int `yaml:"education"`
}

// DefaultCharacteristics returns the baseline of 50 for every attribute.
func DefaultCharacteristics() CharacteristicStats {
	return CharacteristicStats{
		Strength:     50,
		Constitution: 50,
		Size:         50,
		Intelligence: 50,
		Power:        50,
		Dexterity:    50,
		Appearance:   50,
		Education:    50,
	}
}

// DerivedStats are calculated from the characteristics.
type DerivedStats struct {
	HP          int    `yaml:"hp"`
	MaxHP       int    `yaml:"max_hp"`
	MS          int    `yaml:"ms"` // mental stability
	MaxMS       int    `yaml:"max_ms"`
	MP          int    `yaml:"mp"` // magic points
	MaxMP       int    `yaml:"max_mp"`
	DamageBonus string `yaml:"damage_bonus"` // "0", "+1D4", ...
	Build       int    `yaml:"build"`
	Move        int    `yaml:"move"`
}

// DefaultDerivedStats returns the starting derived stats.
func DefaultDerivedStats() DerivedStats {
	return DerivedStats{
		HP:          10,
		MaxHP:       10,
		MS:          50,
		MaxMS:       50,
		MP:          10,
		MaxMP:       10,
		DamageBonus: "0",
		Move:        8,
	}
}

// Skills maps skill names (spot_hidden, handgun, charm, ...) to ratings,
// grouped by category.
type Skills struct {
	Investigative      map[string]int `yaml:"investigative,omitempty"`
	CombatSurvival     map[string]int `yaml:"combat_survival,omitempty"`
	TechnicalKnowledge map[string]int `yaml:"technical_knowledge,omitempty"`
	Social             map[string]int `yaml:"social,omitempty"`
	Other              map[string]int `yaml:"other,omitempty"`
}

// Background is a character's history.
type Background struct {
	Specialization string `yaml:"specialization"`
	ReasonJoining  string `yaml:"reason_joining"`
	Ideology       string `yaml:"ideology"`
	Contact        string `yaml:"contact"`
	Incidents      string `yaml:"incidents"`
	Possession     string `yaml:"possession"`
	Description    string `yaml:"description"`
}

// CombatRoll describes one attack type.
type CombatRoll struct {
	Damage         string `yaml:"damage"` // dice notation, e.g. "1D10"
	AttacksPerTurn int    `yaml:"attacks_per_round"`
	Range          int    `yaml:"range,omitempty"` // 0 for melee
}

// SpecialAbility is an unusual power held by an entity.
type SpecialAbility struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Range      string `yaml:"range,omitempty"`
	Effect     string `yaml:"effect"`
	Resistance string `yaml:"resistance,omitempty"`
	CostMP     int    `yaml:"cost_mp,omitempty"`
	Notes      string `yaml:"notes,omitempty"`
}

// Character is the player or an NPC.
type Character struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Age            string `yaml:"age"` // "34", "70s"
	Nationality    string `yaml:"nationality"`
	ClearanceLevel int    `yaml:"clearance_level,omitempty"`
	Role           string `yaml:"role,omitempty"`
	Alias          bool   `yaml:"alias,omitempty"` // Name is an alias
	Title          bool   `yaml:"title,omitempty"` // Name is a title

	Characteristics CharacteristicStats `yaml:"characteristics"`
	Derived         DerivedStats        `yaml:"derived"`
	Skills          Skills              `yaml:"skills"`
	Background      Background          `yaml:"background"`

	CombatRolls      map[string]CombatRoll     `yaml:"combat_rolls,omitempty"`
	Inventory        map[string]Item           `yaml:"inventory,omitempty"`
	StatusFlags      map[string]string         `yaml:"status_flags,omitempty"`
	SpecialAbilities map[string]SpecialAbility `yaml:"special_abilities,omitempty"`

	Physical core.CharacterState `yaml:"physical_state"`
	Mental   core.MentalState    `yaml:"mental_state"`
	Trust    core.TrustLevel     `yaml:"trust_level"`
}

// NewCharacter returns a character with default stats, a stable mind and
// neutral trust.
func NewCharacter(id, name string) Character {
	return Character{
		ID:               id,
		Name:             name,
		Nationality:      "Unknown",
		Characteristics:  DefaultCharacteristics(),
		Derived:          DefaultDerivedStats(),
		CombatRolls:      make(map[string]CombatRoll),
		Inventory:        make(map[string]Item),
		StatusFlags:      make(map[string]string),
		SpecialAbilities: make(map[string]SpecialAbility),
		Physical:         core.CharacterNormal,
		Mental:           core.MentalStable,
		Trust:            core.TrustNeutral,
	}
}
