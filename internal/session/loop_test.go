package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/chimera/internal/core"
)

// scriptedConsole feeds fixed lines to the handlers and captures output.
type scriptedConsole struct {
	inputs []string
	out    strings.Builder
}

func (c *scriptedConsole) Prompt(prompt string) (string, error) {
	c.out.WriteString(prompt)
	if len(c.inputs) == 0 {
		return "", errors.New("script exhausted")
	}
	line := c.inputs[0]
	c.inputs = c.inputs[1:]
	return line, nil
}

func (c *scriptedConsole) Println(a ...any) {
	for i, v := range a {
		if i > 0 {
			c.out.WriteString(" ")
		}
		c.out.WriteString(v.(string))
	}
	c.out.WriteString("\n")
}

func fullTable() Table {
	noop := func(_ context.Context, s *Session) (core.GameState, error) { return core.StateMainMenu, nil }
	table := Table{}
	for _, st := range core.AllGameStates() {
		table[st] = Exit()
	}
	table[core.StatePlaying] = Handle(noop)
	return table
}

func TestNewLoopRejectsMissingState(t *testing.T) {
	table := fullTable()
	delete(table, core.StateCombat)

	if _, err := NewLoop(table, nil); !errors.Is(err, ErrIncompleteTable) {
		t.Errorf("expected ErrIncompleteTable, got %v", err)
	}
}

func TestNewLoopRejectsUndeclaredState(t *testing.T) {
	table := fullTable()
	table[core.GameState(42)] = Exit()

	if _, err := NewLoop(table, nil); !errors.Is(err, ErrIncompleteTable) {
		t.Errorf("expected ErrIncompleteTable, got %v", err)
	}
}

func TestNewLoopRejectsNilHandler(t *testing.T) {
	table := fullTable()
	table[core.StatePaused] = Handle(nil)

	if _, err := NewLoop(table, nil); !errors.Is(err, ErrIncompleteTable) {
		t.Errorf("expected ErrIncompleteTable, got %v", err)
	}
}

func TestDefaultTableIsComplete(t *testing.T) {
	if _, err := NewLoop(DefaultTable(&scriptedConsole{}), nil); err != nil {
		t.Fatalf("DefaultTable should be valid: %v", err)
	}
}

func TestLoopHaltsOnFaultState(t *testing.T) {
	loop, err := NewLoop(DefaultTable(&scriptedConsole{}), nil)
	if err != nil {
		t.Fatal(err)
	}

	// A fresh session is Initializing, which is a fault entry.
	err = loop.Run(context.Background(), New())
	if !errors.Is(err, ErrUnhandledState) {
		t.Errorf("expected ErrUnhandledState, got %v", err)
	}
}

func TestLoopExitsOnExitState(t *testing.T) {
	loop, err := NewLoop(DefaultTable(&scriptedConsole{}), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := New()
	s.TransitionTo(context.Background(), core.StateGameOver)

	if err := loop.Run(context.Background(), s); err != nil {
		t.Errorf("expected clean exit, got %v", err)
	}
}

func startPlaying(t *testing.T) *Session {
	t.Helper()
	s := New(WithSetup(testSetup))
	ctx := context.Background()
	s.TransitionTo(ctx, core.StateNewGame)
	s.TransitionTo(ctx, core.StatePlaying)
	return s
}

func TestStubGameplayScript(t *testing.T) {
	console := &scriptedConsole{inputs: []string{
		"look",
		"talk",
		"fight",
		"inventory",
		"pause",
		"x",
		"r",
		"dance",
		"menu",
	}}
	loop, err := NewLoop(DefaultTable(console), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := startPlaying(t)

	if err := loop.Run(context.Background(), s); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if s.State() != core.StateMainMenu {
		t.Errorf("final state = %v, want MainMenu", s.State())
	}
	out := console.out.String()
	for _, want := range []string{
		"Thorne Residence",
		DialogueStub,
		CombatStub,
		InventoryStub,
		PausedInvalid,
		PlayingHelp,
		ReturningToMainMenu,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !s.Location().Visited {
		t.Error("look should mark the location visited")
	}

	var visited []core.GameState
	for _, tr := range s.History() {
		visited = append(visited, tr.To)
	}
	want := []core.GameState{
		core.StateNewGame, core.StatePlaying,
		core.StateDialogue, core.StatePlaying,
		core.StateCombat, core.StatePlaying,
		core.StatePaused, core.StatePlaying,
		core.StateMainMenu,
	}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, visited[i], want[i])
		}
	}
}

func TestPausedToMainMenu(t *testing.T) {
	console := &scriptedConsole{inputs: []string{"p", "m"}}
	loop, _ := NewLoop(DefaultTable(console), nil)
	s := startPlaying(t)

	if err := loop.Run(context.Background(), s); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if s.State() != core.StateMainMenu {
		t.Errorf("final state = %v, want MainMenu", s.State())
	}
}

func TestQuitCommandEndsInQuitting(t *testing.T) {
	console := &scriptedConsole{inputs: []string{"look", "quit"}}
	loop, _ := NewLoop(DefaultTable(console), nil)
	s := startPlaying(t)

	if err := loop.Run(context.Background(), s); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if s.State() != core.StateQuitting {
		t.Errorf("final state = %v, want Quitting", s.State())
	}
	if strings.Contains(console.out.String(), ReturningToMainMenu) {
		t.Error("quit should not return to the main menu")
	}
}

func TestLoopPropagatesInputError(t *testing.T) {
	console := &scriptedConsole{}
	loop, _ := NewLoop(DefaultTable(console), nil)
	s := startPlaying(t)

	if err := loop.Run(context.Background(), s); err == nil {
		t.Error("expected input error to stop the loop")
	}
}

func TestLoopStopsOnCancelledContext(t *testing.T) {
	console := &scriptedConsole{inputs: []string{"look"}}
	loop, _ := NewLoop(DefaultTable(console), nil)
	s := startPlaying(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Run(ctx, s); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
