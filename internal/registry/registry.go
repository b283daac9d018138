// Package registry provides a global registry of story packs.
// Packs register themselves in init() functions, allowing the CLI to
// discover and load narrative content without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/chimera/internal/models"
)

// Story is the narrative content a new game plays through.
type Story interface {
	// ID returns a unique identifier for this pack (e.g., "chimera").
	// Used for the --story flag and the run journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Intro returns the premonition lines shown when a new game starts.
	Intro() []string

	// Briefing returns the mission briefing memo shown after the intro.
	Briefing() string

	// Setup returns fresh player and starting-location placeholders.
	// Called each time a session enters NewGame.
	Setup() (models.Character, models.Location)
}

// StoryInfo contains metadata about a registered pack.
type StoryInfo struct {
	ID    string
	Title string
}

// Factory loads a story pack.
type Factory func() (Story, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a story factory to the registry.
// Typically called from a pack's init() function.
// Panics if a pack with the same ID is already registered or fails to load.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: story %q already registered", id))
	}

	// Load once up front so broken content fails at startup, not mid-game
	s, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: story %q failed to load: %v", id, err))
	}

	factories[id] = f
	titles[id] = s.Title()
}

// List returns information about all registered packs, sorted by ID.
func List() []StoryInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StoryInfo, 0, len(factories))
	for id := range factories {
		result = append(result, StoryInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Load instantiates a pack by its ID.
// Returns an error if the ID is not registered.
func Load(id string) (Story, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown story %q", id)
	}
	return f()
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
