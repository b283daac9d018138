package story

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/logging"
	"github.com/vovakirdan/chimera/internal/platform/terminal"
	"github.com/vovakirdan/chimera/internal/registry"
	"github.com/vovakirdan/chimera/internal/session"
	"github.com/vovakirdan/chimera/internal/telemetry"
)

// AcknowledgeBriefing is the prompt shown under the briefing memo.
const AcknowledgeBriefing = "\nPress Enter to acknowledge briefing..."

// Starter runs the new-game routine for one story: intro, briefing, then
// the gameplay loop until it hands control back to the main menu.
type Starter struct {
	story    registry.Story
	console  *terminal.Console
	renderer *terminal.Renderer
	clearer  terminal.Clearer
	loop     *session.Loop
	logger   *log.Logger
	tracer   trace.Tracer
}

// NewStarter builds a starter. The gameplay loop is built from
// session.DefaultTable over the same console.
func NewStarter(st registry.Story, console *terminal.Console, renderer *terminal.Renderer, clearer terminal.Clearer, logger *log.Logger) (*Starter, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if clearer == nil {
		clearer = terminal.NopClearer{}
	}
	loop, err := session.NewLoop(session.DefaultTable(console), logging.Component(logger, "loop"))
	if err != nil {
		return nil, fmt.Errorf("story: %w", err)
	}
	return &Starter{
		story:    st,
		console:  console,
		renderer: renderer,
		clearer:  clearer,
		loop:     loop,
		logger:   logger,
		tracer:   telemetry.Tracer("story"),
	}, nil
}

// StartNewGame plays the intro and briefing, moves the session into
// Playing and runs the gameplay loop. It returns when the loop reaches an
// exit state; the session is left in that state.
func (g *Starter) StartNewGame(ctx context.Context, s *session.Session) error {
	ctx, span := g.tracer.Start(ctx, "story.new_game",
		trace.WithAttributes(attribute.String("story.id", g.story.ID())))
	defer span.End()

	g.logger.Info("Starting new game routine.", "story", g.story.ID())

	if s.State() != core.StateNewGame {
		s.TransitionTo(ctx, core.StateNewGame)
	}

	g.renderer.Display(ctx, g.story.Intro())
	if err := ctx.Err(); err != nil {
		return err
	}
	g.clearer.Clear()

	g.renderer.Display(ctx, g.story.Briefing())
	if err := g.console.WaitForEnter(AcknowledgeBriefing); err != nil {
		return err
	}
	g.logger.Info("Briefing acknowledged.")

	g.clearer.Clear()
	s.TransitionTo(ctx, core.StatePlaying)
	if loc := s.Location(); loc != nil {
		g.console.Println(loc.Name)
		g.console.Println(loc.Description)
		loc.Visited = true
	}

	if err := g.loop.Run(ctx, s); err != nil {
		if errors.Is(err, session.ErrUnhandledState) {
			span.RecordError(err)
			g.logger.Error("Gameplay loop halted", "error", err)
		}
		return err
	}

	g.logger.Info("New game routine finished.", "state", s.State())
	return nil
}
