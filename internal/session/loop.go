package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/logging"
)

var (
	// ErrUnhandledState is returned when the loop reaches a state whose
	// table entry is a fault. The loop halts.
	ErrUnhandledState = errors.New("session: unhandled game state")

	// ErrIncompleteTable is returned by NewLoop when the table does not
	// map every GameState exactly.
	ErrIncompleteTable = errors.New("session: incomplete state table")
)

// Handler runs one step of a state and returns the state to move to.
// Returning the current state keeps the loop in it.
type Handler func(ctx context.Context, s *Session) (core.GameState, error)

type entryKind int

const (
	entryFault entryKind = iota
	entryHandler
	entryExit
)

// Entry is what the loop does in a given state.
type Entry struct {
	kind    entryKind
	handler Handler
}

// Handle runs h while in the state.
func Handle(h Handler) Entry {
	return Entry{kind: entryHandler, handler: h}
}

// Exit ends the loop cleanly when the state is reached.
func Exit() Entry {
	return Entry{kind: entryExit}
}

// Fault marks a state the loop must never be in; reaching it halts the
// loop with ErrUnhandledState.
func Fault() Entry {
	return Entry{kind: entryFault}
}

// Table maps every GameState to an Entry.
type Table map[core.GameState]Entry

// Loop is the gameplay state machine.
type Loop struct {
	table  Table
	logger *log.Logger
}

// NewLoop validates the table and builds a loop. Every declared GameState
// must be mapped, no undeclared state may appear, and handler entries must
// carry a handler.
func NewLoop(table Table, logger *log.Logger) (*Loop, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	for state, entry := range table {
		if !state.Valid() {
			return nil, fmt.Errorf("%w: undeclared state %v", ErrIncompleteTable, state)
		}
		if entry.kind == entryHandler && entry.handler == nil {
			return nil, fmt.Errorf("%w: nil handler for %v", ErrIncompleteTable, state)
		}
	}
	for _, state := range core.AllGameStates() {
		if _, ok := table[state]; !ok {
			return nil, fmt.Errorf("%w: %v is not mapped", ErrIncompleteTable, state)
		}
	}

	copied := make(Table, len(table))
	for k, v := range table {
		copied[k] = v
	}
	return &Loop{table: copied, logger: logger}, nil
}

// Run dispatches on the session's state until an exit state is reached, a
// handler fails, ctx is cancelled, or a fault state halts the loop.
func (l *Loop) Run(ctx context.Context, s *Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state := s.State()
		entry, ok := l.table[state]
		if !ok || entry.kind == entryFault {
			l.logger.Error("Unhandled game state, halting loop", "state", state)
			return fmt.Errorf("%w: %v", ErrUnhandledState, state)
		}
		if entry.kind == entryExit {
			l.logger.Debug("Gameplay loop exiting", "state", state)
			return nil
		}

		next, err := entry.handler(ctx, s)
		if err != nil {
			return err
		}
		if next != state {
			s.TransitionTo(ctx, next)
		}
	}
}
