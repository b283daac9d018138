// Package session tracks the state of a single game run: the current
// GameState and InteractionState, the player and location placeholders, and
// the table-driven gameplay loop.
//
// A Session is created per run and passed explicitly to whatever needs it.
// It is not safe for concurrent use; each run is single-threaded.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/logging"
	"github.com/vovakirdan/chimera/internal/models"
)

// Recorder receives every state transition. The run journal implements it.
type Recorder interface {
	RecordTransition(from, to core.GameState, at time.Time) error
}

// Setup produces the player and starting location for a new game.
type Setup func() (models.Character, models.Location)

// Transition is one recorded state change.
type Transition struct {
	From core.GameState
	To   core.GameState
	At   time.Time
}

// Session holds the state of one game run.
type Session struct {
	state       core.GameState
	interaction core.InteractionState
	player      *models.Character
	location    *models.Location
	history     []Transition

	setup    Setup
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithSetup sets the new-game placeholder factory.
func WithSetup(fn Setup) Option {
	return func(s *Session) {
		s.setup = fn
	}
}

// WithRecorder attaches a transition recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithClock replaces time.Now for transition timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates a session in the Initializing state with Exploration as the
// interaction mode.
func New(opts ...Option) *Session {
	s := &Session{
		state:       core.StateInitializing,
		interaction: core.InteractionExploration,
		setup:       defaultSetup,
		logger:      logging.Discard(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return s.state
}

// Interaction returns the current interaction mode.
func (s *Session) Interaction() core.InteractionState {
	return s.interaction
}

// Player returns the player placeholder, or nil before a new game starts.
func (s *Session) Player() *models.Character {
	return s.player
}

// Location returns the current location, or nil before a new game starts.
func (s *Session) Location() *models.Location {
	return s.location
}

// History returns a copy of all transitions so far.
func (s *Session) History() []Transition {
	out := make([]Transition, len(s.history))
	copy(out, s.history)
	return out
}

// TransitionTo moves the session to next.
//
// Two transitions have side effects: entering NewGame creates the player
// and location placeholders, and entering Playing from NewGame resets the
// interaction mode to Exploration. Every other transition is a plain
// assignment.
func (s *Session) TransitionTo(ctx context.Context, next core.GameState) {
	prev := s.state
	s.logger.Info("State transition", "from", prev, "to", next)

	s.state = next
	at := s.now()
	s.history = append(s.history, Transition{From: prev, To: next, At: at})

	switch {
	case next == core.StateNewGame:
		player, location := s.setup()
		s.player = &player
		s.location = &location
		s.logger.Debug("New game placeholders initialized", "player", player.Name, "location", location.ID)
	case next == core.StatePlaying && prev == core.StateNewGame:
		s.interaction = core.InteractionExploration
		s.logger.Debug("Interaction mode set", "interaction", s.interaction)
	}

	trace.SpanFromContext(ctx).AddEvent("state.transition", trace.WithAttributes(
		attribute.String("from", prev.String()),
		attribute.String("to", next.String()),
	))

	if s.recorder != nil {
		if err := s.recorder.RecordTransition(prev, next, at); err != nil {
			s.logger.Warn("Could not record transition", "error", err)
		}
	}
}

// SetInteraction switches the interaction mode used while Playing.
func (s *Session) SetInteraction(mode core.InteractionState) {
	if mode == s.interaction {
		return
	}
	s.logger.Debug("Interaction change", "from", s.interaction, "to", mode)
	s.interaction = mode
}

func defaultSetup() (models.Character, models.Location) {
	return models.NewCharacter("player", "Agent"),
		models.NewLocation("start", "Unknown Location", "You are somewhere unfamiliar.")
}
