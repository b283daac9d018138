package session

import (
	"context"
	"strings"

	"github.com/vovakirdan/chimera/internal/core"
)

// Console is the input/output the gameplay handlers need.
type Console interface {
	Prompt(prompt string) (string, error)
	Println(a ...any)
}

// Messages printed by the stub handlers.
const (
	PlayingHelp         = "Commands: look, investigate, inventory, documents, talk, fight, pause, menu, quit"
	InvestigationStub   = "Investigation: Not implemented yet."
	InventoryStub       = "Inventory: Not implemented yet."
	DocumentReviewStub  = "Document review: Not implemented yet."
	DialogueStub        = "Dialogue system: Not implemented yet."
	CombatStub          = "Combat system: Not implemented yet."
	PausedPrompt        = "\n-- PAUSED -- [R]esume or [M]ain menu: "
	PausedInvalid       = "Please choose R or M."
	NoLocationMessage   = "There is nothing to see here."
	ReturningToMainMenu = "Returning to the main menu..."
)

type stubs struct {
	console Console
}

// DefaultTable wires the four gameplay handlers (Playing, Dialogue, Combat,
// Paused). MainMenu, Quitting and GameOver end the loop; Initializing,
// NewGame and Loading are faults.
func DefaultTable(c Console) Table {
	h := stubs{console: c}
	return Table{
		core.StateInitializing: Fault(),
		core.StateMainMenu:     Exit(),
		core.StateNewGame:      Fault(),
		core.StateLoading:      Fault(),
		core.StatePlaying:      Handle(h.playing),
		core.StatePaused:       Handle(h.paused),
		core.StateDialogue:     Handle(h.dialogue),
		core.StateCombat:       Handle(h.combat),
		core.StateGameOver:     Exit(),
		core.StateQuitting:     Exit(),
	}
}

func (h stubs) playing(_ context.Context, s *Session) (core.GameState, error) {
	input, err := h.console.Prompt("\n[" + s.Interaction().String() + "] What will you do? ")
	if err != nil {
		return s.State(), err
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "look", "explore":
		s.SetInteraction(core.InteractionExploration)
		h.describe(s)
	case "investigate":
		s.SetInteraction(core.InteractionInvestigation)
		h.console.Println(InvestigationStub)
	case "inventory", "i":
		s.SetInteraction(core.InteractionInventory)
		h.console.Println(InventoryStub)
	case "documents", "read":
		s.SetInteraction(core.InteractionDocumentReview)
		h.console.Println(DocumentReviewStub)
	case "talk":
		s.SetInteraction(core.InteractionDialogue)
		return core.StateDialogue, nil
	case "fight":
		s.SetInteraction(core.InteractionCombat)
		return core.StateCombat, nil
	case "pause", "p":
		return core.StatePaused, nil
	case "menu":
		h.console.Println(ReturningToMainMenu)
		return core.StateMainMenu, nil
	case "quit", "q":
		return core.StateQuitting, nil
	default:
		h.console.Println(PlayingHelp)
	}
	return core.StatePlaying, nil
}

func (h stubs) describe(s *Session) {
	loc := s.Location()
	if loc == nil {
		h.console.Println(NoLocationMessage)
		return
	}
	h.console.Println("\n" + loc.Name)
	h.console.Println(loc.Description)
	loc.Visited = true
}

func (h stubs) dialogue(_ context.Context, s *Session) (core.GameState, error) {
	h.console.Println(DialogueStub)
	s.SetInteraction(core.InteractionExploration)
	return core.StatePlaying, nil
}

func (h stubs) combat(_ context.Context, s *Session) (core.GameState, error) {
	h.console.Println(CombatStub)
	s.SetInteraction(core.InteractionExploration)
	return core.StatePlaying, nil
}

func (h stubs) paused(_ context.Context, s *Session) (core.GameState, error) {
	input, err := h.console.Prompt(PausedPrompt)
	if err != nil {
		return s.State(), err
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "r":
		return core.StatePlaying, nil
	case "m":
		h.console.Println(ReturningToMainMenu)
		return core.StateMainMenu, nil
	}
	h.console.Println(PausedInvalid)
	return core.StatePaused, nil
}
