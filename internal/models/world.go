package models

import "github.com/vovakirdan/chimera/internal/core"

// Item is anything that can be carried or found.
type Item struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	StillHave bool   `yaml:"still_have"`
	Quantity  string `yaml:"quantity"` // "1", "Varies"

	Wearing bool `yaml:"wearing,omitempty"`
	Charged bool `yaml:"charged,omitempty"`
	On      bool `yaml:"on,omitempty"`
	Loaded  bool `yaml:"loaded,omitempty"`

	Contents map[string]string `yaml:"contents,omitempty"`
	Empty    bool              `yaml:"empty,omitempty"`

	DamageDice     string             `yaml:"damage_dice,omitempty"`
	Healing        string             `yaml:"healing,omitempty"`
	Effect         string             `yaml:"effect,omitempty"`
	AccessLevel    int                `yaml:"access_level,omitempty"`
	AmmoCapacity   int                `yaml:"ammo_capacity,omitempty"`
	AmmoType       string             `yaml:"ammo_type,omitempty"`
	ContentSummary string             `yaml:"content_summary,omitempty"`
	Anomaly        *core.AnomalyState `yaml:"anomalous_state,omitempty"`
}

// NewItem returns an item the player still holds, quantity one.
func NewItem(id, name, itemType string) Item {
	return Item{
		ID:        id,
		Name:      name,
		Type:      itemType,
		StillHave: true,
		Quantity:  "1",
	}
}

// Location is a place in the game world.
type Location struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Connections map[string]string `yaml:"connections,omitempty"` // direction -> location ID
	Items       []string          `yaml:"items,omitempty"`
	NPCs        []string          `yaml:"npcs,omitempty"`
	Visited     bool              `yaml:"visited,omitempty"`
	LockedExits map[string]bool   `yaml:"locked_exits,omitempty"`

	State          core.LocationState `yaml:"state"`
	AnomalyPresent bool               `yaml:"anomaly_present,omitempty"`
	Anomaly        *core.AnomalyState `yaml:"anomaly_state,omitempty"`
}

// NewLocation returns a secure, unvisited location.
func NewLocation(id, name, description string) Location {
	return Location{
		ID:          id,
		Name:        name,
		Description: description,
		Connections: make(map[string]string),
		LockedExits: make(map[string]bool),
		State:       core.LocationSecure,
	}
}

// Mission is an objective in the narrative.
type Mission struct {
	ID                 string            `yaml:"id"`
	Name               string            `yaml:"name"`
	Description        string            `yaml:"description"`
	State              core.MissionState `yaml:"state"`
	Prerequisites      []string          `yaml:"prerequisites,omitempty"`
	CompleteConditions map[string]string `yaml:"complete_conditions,omitempty"`
	Rewards            map[string]string `yaml:"rewards,omitempty"`
	RelatedNPCs        []string          `yaml:"related_npcs,omitempty"`
	RelatedLocations   []string          `yaml:"related_locations,omitempty"`
}

// NewMission returns a locked mission.
func NewMission(id, name, description string) Mission {
	return Mission{
		ID:          id,
		Name:        name,
		Description: description,
		State:       core.MissionLocked,
	}
}

// DialogueNode is one node of a dialogue tree.
type DialogueNode struct {
	ID           string            `yaml:"id"`
	Text         string            `yaml:"text"`
	Responses    map[string]string `yaml:"responses,omitempty"` // response ID -> next node ID
	Requirements map[string]string `yaml:"requirements,omitempty"`
	Effects      map[string]string `yaml:"effects,omitempty"`
}
