package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/platform/terminal"
	"github.com/vovakirdan/chimera/internal/session"
)

type fakeStarter struct {
	calls int
	state core.GameState
	err   error
}

func (f *fakeStarter) StartNewGame(ctx context.Context, s *session.Session) error {
	f.calls++
	if f.state != 0 {
		s.TransitionTo(ctx, f.state)
	}
	return f.err
}

type run struct {
	out     string
	clears  int
	starter *fakeStarter
	session *session.Session
	err     error
}

func runMenu(t *testing.T, starter *fakeStarter, lines ...string) run {
	t.Helper()
	if starter == nil {
		starter = &fakeStarter{}
	}

	var out bytes.Buffer
	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	console := terminal.NewConsole(strings.NewReader(input), &out)

	clears := 0
	s := session.New()
	c := New(console, starter, s, WithClearer(terminal.ClearFunc(func() { clears++ })))

	err := c.Run(context.Background())
	return run{out: out.String(), clears: clears, starter: starter, session: s, err: err}
}

func TestQuitImmediately(t *testing.T) {
	r := runMenu(t, nil, "", "q")
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}

	if !strings.Contains(r.out, "PROJECT CHIMERA") {
		t.Error("expected title screen")
	}
	if got := strings.Count(r.out, "----- MAIN MENU -----"); got != 1 {
		t.Errorf("menu shown %d times, want 1", got)
	}
	if got := strings.Count(r.out, ExitMessage); got != 1 {
		t.Errorf("exit message shown %d times, want 1", got)
	}
	if r.clears != 3 {
		t.Errorf("clears = %d, want 3 (title, menu, quit)", r.clears)
	}
	if r.starter.calls != 0 {
		t.Error("starter should not run")
	}
	if r.session.State() != core.StateQuitting {
		t.Errorf("final state = %v, want Quitting", r.session.State())
	}
}

func TestInvalidSelectionRedrawsMenu(t *testing.T) {
	r := runMenu(t, nil, "", "x", "", "q")
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}

	if got := strings.Count(r.out, InvalidSelection); got != 1 {
		t.Errorf("invalid message shown %d times, want 1", got)
	}
	if !strings.Contains(r.out, PressEnterRetry) {
		t.Error("expected retry acknowledgement")
	}
	if got := strings.Count(r.out, "----- MAIN MENU -----"); got != 2 {
		t.Errorf("menu shown %d times, want 2", got)
	}
	if r.session.State() != core.StateQuitting {
		t.Errorf("final state = %v", r.session.State())
	}
}

func TestRepeatedInvalidInputHasNoRetryLimit(t *testing.T) {
	lines := []string{""}
	for range 20 {
		lines = append(lines, "nope", "")
	}
	lines = append(lines, "q")

	r := runMenu(t, nil, lines...)
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}
	if got := strings.Count(r.out, InvalidSelection); got != 20 {
		t.Errorf("invalid message shown %d times, want 20", got)
	}
}

func TestNewGameInvokesStarterOnce(t *testing.T) {
	r := runMenu(t, nil, "", "n", "", "q")
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}

	if r.starter.calls != 1 {
		t.Errorf("starter called %d times, want 1", r.starter.calls)
	}
	if !strings.Contains(r.out, "Starting New Game...") {
		t.Error("expected new game message")
	}
	if !strings.Contains(r.out, PressEnterToMenu) {
		t.Error("expected return-to-menu acknowledgement")
	}

	var path []core.GameState
	for _, tr := range r.session.History() {
		path = append(path, tr.To)
	}
	want := []core.GameState{core.StateMainMenu, core.StateNewGame, core.StateMainMenu, core.StateQuitting}
	if len(path) != len(want) {
		t.Fatalf("transitions = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, path[i], want[i])
		}
	}
	if r.session.Player() == nil {
		t.Error("entering NewGame should create the player placeholder")
	}
}

func TestSelectionIsCaseInsensitive(t *testing.T) {
	r := runMenu(t, nil, "", "N", "", "Q")
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}
	if r.starter.calls != 1 {
		t.Errorf("starter called %d times, want 1", r.starter.calls)
	}
	if r.session.State() != core.StateQuitting {
		t.Errorf("final state = %v", r.session.State())
	}
}

func TestLoadAndOptionsDoNotChangeState(t *testing.T) {
	r := runMenu(t, nil, "", "l", "", "o", "", "l", "", "q")
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}

	if got := strings.Count(r.out, LoadingGame); got != 2 {
		t.Errorf("loading placeholder shown %d times, want 2", got)
	}
	if got := strings.Count(r.out, OpeningOptions); got != 1 {
		t.Errorf("options placeholder shown %d times, want 1", got)
	}
	if got := len(r.session.History()); got != 2 {
		t.Errorf("expected only MainMenu and Quitting transitions, got %d", got)
	}
}

func TestStarterEndingInQuittingExits(t *testing.T) {
	r := runMenu(t, &fakeStarter{state: core.StateQuitting}, "", "n")
	if r.err != nil {
		t.Fatalf("Run() failed: %v", r.err)
	}
	if got := strings.Count(r.out, ExitMessage); got != 1 {
		t.Errorf("exit message shown %d times, want 1", got)
	}
	quits := 0
	for _, tr := range r.session.History() {
		if tr.To == core.StateQuitting {
			quits++
		}
	}
	if quits != 1 {
		t.Errorf("entered Quitting %d times, want 1", quits)
	}
}

func TestStarterErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	r := runMenu(t, &fakeStarter{err: boom}, "", "n")
	if !errors.Is(r.err, boom) {
		t.Fatalf("expected starter error, got %v", r.err)
	}
}

func TestClosedInputEndsWithEOF(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "at title", lines: nil},
		{name: "at selection", lines: []string{""}},
		{name: "at retry", lines: []string{"", "x"}},
		{name: "at return to menu", lines: []string{"", "o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runMenu(t, nil, tt.lines...)
			if !errors.Is(r.err, io.EOF) {
				t.Errorf("expected io.EOF, got %v", r.err)
			}
		})
	}
}

func TestCancelledContextStopsMenu(t *testing.T) {
	var out bytes.Buffer
	console := terminal.NewConsole(strings.NewReader("\nq\n"), &out)
	c := New(console, &fakeStarter{}, session.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
