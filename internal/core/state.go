// Package core defines the state enums shared by the menu, the session
// tracker and the story content.
package core

import (
	"fmt"
	"strings"
)

// GameState is the top-level phase of the application.
// Exactly one value is active at a time and transitions are explicit.
type GameState int

const (
	StateInitializing GameState = iota
	StateMainMenu
	StateNewGame
	StateLoading
	StatePlaying
	StatePaused
	StateDialogue
	StateCombat
	StateGameOver
	StateQuitting
)

// AllGameStates lists every GameState in declaration order.
func AllGameStates() []GameState {
	return []GameState{
		StateInitializing,
		StateMainMenu,
		StateNewGame,
		StateLoading,
		StatePlaying,
		StatePaused,
		StateDialogue,
		StateCombat,
		StateGameOver,
		StateQuitting,
	}
}

// String returns a human-readable name for the state.
func (s GameState) String() string {
	switch s {
	case StateInitializing:
		return "Initializing"
	case StateMainMenu:
		return "MainMenu"
	case StateNewGame:
		return "NewGame"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateDialogue:
		return "Dialogue"
	case StateCombat:
		return "Combat"
	case StateGameOver:
		return "GameOver"
	case StateQuitting:
		return "Quitting"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// Valid reports whether s is one of the declared states.
func (s GameState) Valid() bool {
	return s >= StateInitializing && s <= StateQuitting
}

// ParseGameState parses a state name as produced by String (case-insensitive).
func ParseGameState(name string) (GameState, error) {
	for _, s := range AllGameStates() {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("core: unknown game state %q", name)
}

// InteractionState is the sub-mode of play while GameState is Playing.
// It determines which command set is active.
type InteractionState int

const (
	InteractionExploration InteractionState = iota
	InteractionDialogue
	InteractionInvestigation
	InteractionCombat
	InteractionInventory
	InteractionDocumentReview
)

// String returns a human-readable name for the interaction mode.
func (s InteractionState) String() string {
	switch s {
	case InteractionExploration:
		return "Exploration"
	case InteractionDialogue:
		return "Dialogue"
	case InteractionInvestigation:
		return "Investigation"
	case InteractionCombat:
		return "Combat"
	case InteractionInventory:
		return "Inventory"
	case InteractionDocumentReview:
		return "DocumentReview"
	default:
		return fmt.Sprintf("InteractionState(%d)", int(s))
	}
}
