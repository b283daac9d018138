// Package story holds the narrative content packs and the routine that
// starts a new game: the premonition intro, the briefing memo and the
// hand-off to the gameplay loop.
package story

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chimera/internal/models"
	"github.com/vovakirdan/chimera/internal/registry"
)

// Content is a story pack decoded from YAML. It is the single source of
// truth for a pack's narrative text.
type Content struct {
	PackID        string             `yaml:"id"`
	PackTitle     string             `yaml:"title"`
	IntroLines    []string           `yaml:"intro"`
	BriefingMemo  string             `yaml:"briefing"`
	Player        models.Character   `yaml:"player"`
	StartLocation models.Location    `yaml:"start_location"`
	Characters    []models.Character `yaml:"characters"`
	Missions      []models.Mission   `yaml:"missions"`
}

// Parse decodes and validates a story pack.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("story: failed to parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) validate() error {
	var errs []error
	if c.PackID == "" {
		errs = append(errs, errors.New("missing id"))
	}
	if c.PackTitle == "" {
		errs = append(errs, errors.New("missing title"))
	}
	if len(c.IntroLines) == 0 {
		errs = append(errs, errors.New("missing intro"))
	}
	if c.BriefingMemo == "" {
		errs = append(errs, errors.New("missing briefing"))
	}
	if c.Player.Name == "" {
		errs = append(errs, errors.New("missing player name"))
	}
	if c.StartLocation.ID == "" {
		errs = append(errs, errors.New("missing start_location id"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("story: invalid content: %w", errors.Join(errs...))
	}
	return nil
}

// ID implements registry.Story.
func (c *Content) ID() string { return c.PackID }

// Title implements registry.Story.
func (c *Content) Title() string { return c.PackTitle }

// Intro implements registry.Story.
func (c *Content) Intro() []string {
	out := make([]string, len(c.IntroLines))
	copy(out, c.IntroLines)
	return out
}

// Briefing implements registry.Story.
func (c *Content) Briefing() string { return c.BriefingMemo }

// Setup implements registry.Story. The player's maps are copied so a run
// never mutates the pack.
func (c *Content) Setup() (models.Character, models.Location) {
	player := c.Player
	player.Inventory = make(map[string]models.Item, len(c.Player.Inventory))
	for k, v := range c.Player.Inventory {
		player.Inventory[k] = v
	}

	loc := c.StartLocation
	loc.Connections = make(map[string]string, len(c.StartLocation.Connections))
	for k, v := range c.StartLocation.Connections {
		loc.Connections[k] = v
	}
	return player, loc
}

var _ registry.Story = (*Content)(nil)
