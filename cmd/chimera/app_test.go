package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/chimera/internal/config"
	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/logging"
	"github.com/vovakirdan/chimera/internal/menu"
	"github.com/vovakirdan/chimera/internal/platform/terminal"
	"github.com/vovakirdan/chimera/internal/registry"
	"github.com/vovakirdan/chimera/internal/storage"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	st, err := registry.Load("chimera")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	cfg.Text.Pace = string(config.PaceInstant)
	return &app{cfg: cfg, logger: logging.Discard(), story: st, store: store}
}

func playScript(t *testing.T, a *app, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	console := terminal.NewConsole(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	err := a.play(context.Background(), a.runtime("local"), console, terminal.NopClearer{})
	return out.String(), err
}

func TestPlayFullRunIsJournaled(t *testing.T) {
	a := newTestApp(t)

	out, err := playScript(t, a,
		"",     // title
		"n",    // new game
		"",     // acknowledge briefing
		"look", // gameplay
		"menu", // back to main menu
		"",     // return to menu
		"q",
	)
	if err != nil {
		t.Fatalf("play() failed: %v", err)
	}

	for _, want := range []string{"PROJECT CHIMERA", "Starting New Game...", "PREMONITION FRAGMENT", "Thorne Residence", menu.ExitMessage} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	runs, err := a.store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].EndReason != endQuit || runs[0].Origin != "local" || runs[0].StoryID != "chimera" {
		t.Errorf("unexpected run %+v", runs[0])
	}

	entries, err := a.store.RunTransitions(runs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []core.GameState{core.StateMainMenu, core.StateNewGame, core.StatePlaying, core.StateMainMenu, core.StateQuitting}
	if len(entries) != len(want) {
		t.Fatalf("got %d transitions, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.To != want[i] {
			t.Errorf("transition %d to %v, want %v", i, e.To, want[i])
		}
	}
}

func TestPlayQuitFromGameplayEndsRun(t *testing.T) {
	a := newTestApp(t)

	out, err := playScript(t, a, "", "n", "", "quit")
	if err != nil {
		t.Fatalf("play() failed: %v", err)
	}
	if got := strings.Count(out, menu.ExitMessage); got != 1 {
		t.Errorf("exit message shown %d times, want 1", got)
	}
	if strings.Contains(out, menu.PressEnterToMenu) {
		t.Error("quitting from gameplay should not return to the menu")
	}

	runs, _ := a.store.RecentRuns(1)
	if len(runs) != 1 || runs[0].EndReason != endQuit {
		t.Fatalf("unexpected runs %+v", runs)
	}
	entries, _ := a.store.RunTransitions(runs[0].ID)
	last := entries[len(entries)-1]
	if last.From != core.StatePlaying || last.To != core.StateQuitting {
		t.Errorf("last transition = %v -> %v, want Playing -> Quitting", last.From, last.To)
	}
}

func TestPlayClosedInputIsDisconnect(t *testing.T) {
	a := newTestApp(t)

	_, err := playScript(t, a, "", "l")
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}

	runs, _ := a.store.RecentRuns(1)
	if len(runs) != 1 || runs[0].EndReason != endDisconnected {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestPlayWithoutJournal(t *testing.T) {
	a := newTestApp(t)
	a.store = nil

	if _, err := playScript(t, a, "", "q"); err != nil {
		t.Fatalf("play() failed: %v", err)
	}
}

func TestRuntimeUsesPace(t *testing.T) {
	a := newTestApp(t)
	rc := a.runtime("ssh:rook")
	if rc.LineDelay != 0 {
		t.Errorf("LineDelay = %v, want 0 for instant pace", rc.LineDelay)
	}
	if rc.Origin != "ssh:rook" || rc.StoryID != "chimera" {
		t.Errorf("unexpected runtime config %+v", rc)
	}
}

func TestEndReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: endQuit},
		{err: fmt.Errorf("menu: %w", io.EOF), want: endDisconnected},
		{err: context.Canceled, want: endDisconnected},
		{err: errors.New("boom"), want: endError},
	}
	for _, tt := range tests {
		if got := endReason(tt.err); got != tt.want {
			t.Errorf("endReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
