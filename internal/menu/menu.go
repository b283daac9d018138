// Package menu runs the console main menu: the title screen, the option
// list, input validation and dispatch to the new-game routine.
package menu

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/logging"
	"github.com/vovakirdan/chimera/internal/platform/terminal"
	"github.com/vovakirdan/chimera/internal/session"
	"github.com/vovakirdan/chimera/internal/telemetry"
)

// Text printed by the menu.
const (
	Title = "=========================\n" +
		"   PROJECT CHIMERA\n" +
		"========================="
	PressEnterToContinue = "Please press Enter to continue..."

	MainMenuTitle  = "\n----- MAIN MENU -----"
	OptionNewGame  = "[N]ew Game"
	OptionLoadGame = "[L]oad Game"
	OptionOptions  = "[O]ptions"
	OptionQuit     = "[Q]uit"
	InputRequest   = "\nPlease enter your selection to continue: "

	InvalidSelection = "Your selection is not valid. Please try again."
	PressEnterRetry  = "Press Enter to try again..."

	StartingNewGame  = "\nStarting New Game..."
	LoadingGame      = "\nLoading Game... (Not implemented yet)"
	OpeningOptions   = "\nOpening Options... (Not implemented yet)"
	PressEnterToMenu = "Press Enter to return to menu..."
	ExitMessage      = "\nExiting Project Chimera. Stay vigilant."
)

// Starter runs a new game on the session and returns when play hands
// control back to the menu.
type Starter interface {
	StartNewGame(ctx context.Context, s *session.Session) error
}

// Controller drives the main menu for one session.
type Controller struct {
	console *terminal.Console
	clearer terminal.Clearer
	theme   terminal.Theme
	starter Starter
	session *session.Session
	logger  *log.Logger
	tracer  trace.Tracer
}

// Option configures a Controller.
type Option func(*Controller)

// WithClearer sets how the screen is cleared. Defaults to no clearing.
func WithClearer(cl terminal.Clearer) Option {
	return func(c *Controller) {
		c.clearer = cl
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New creates a controller.
func New(console *terminal.Console, starter Starter, s *session.Session, opts ...Option) *Controller {
	c := &Controller{
		console: console,
		clearer: terminal.NopClearer{},
		theme:   terminal.NewTheme(console.Writer()),
		starter: starter,
		session: s,
		logger:  logging.Discard(),
		tracer:  telemetry.Tracer("menu"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the title screen and then the main menu until the player
// quits. Closed input ends the menu with an error wrapping io.EOF.
func (c *Controller) Run(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "menu.run")
	defer span.End()

	c.logger.Info("Displaying main menu.")

	if err := c.showTitle(); err != nil {
		return err
	}
	if c.session.State() != core.StateMainMenu {
		c.session.TransitionTo(ctx, core.StateMainMenu)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.showMenu()
		sel, err := c.readSelection()
		if err != nil {
			return err
		}
		c.logger.Debug("Menu selection", "selection", sel)
		span.AddEvent("menu.selection", trace.WithAttributes(attribute.String("selection", sel.String())))

		switch sel {
		case core.SelectQuit:
			c.quit(ctx)
			return nil

		case core.SelectNewGame:
			c.clearer.Clear()
			c.console.Println(StartingNewGame)
			c.session.TransitionTo(ctx, core.StateNewGame)
			if err := c.starter.StartNewGame(ctx, c.session); err != nil {
				return fmt.Errorf("menu: new game: %w", err)
			}
			if c.session.State() == core.StateQuitting {
				c.quit(ctx)
				return nil
			}
			if err := c.acknowledge(PressEnterToMenu); err != nil {
				return err
			}
			if c.session.State() != core.StateMainMenu {
				c.session.TransitionTo(ctx, core.StateMainMenu)
			}

		case core.SelectLoadGame:
			c.clearer.Clear()
			c.console.Println(LoadingGame)
			if err := c.acknowledge(PressEnterToMenu); err != nil {
				return err
			}

		case core.SelectOptions:
			c.clearer.Clear()
			c.console.Println(OpeningOptions)
			if err := c.acknowledge(PressEnterToMenu); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) showTitle() error {
	c.clearer.Clear()
	c.console.Println(c.theme.Banner(Title))
	return c.acknowledge(PressEnterToContinue)
}

func (c *Controller) showMenu() {
	c.clearer.Clear()
	c.console.Println(c.theme.Banner(MainMenuTitle))
	c.console.Println(OptionNewGame)
	c.console.Println(OptionLoadGame)
	c.console.Println(OptionOptions)
	c.console.Println(OptionQuit)
	c.console.Println()
}

// readSelection prompts until a valid selection is entered. The menu is
// redrawn after every rejected input.
func (c *Controller) readSelection() (core.MenuSelection, error) {
	for {
		raw, err := c.console.Prompt(InputRequest)
		if err != nil {
			return 0, fmt.Errorf("menu: reading selection: %w", err)
		}
		if sel, ok := core.ParseSelection(raw); ok {
			return sel, nil
		}

		c.logger.Debug("Invalid menu selection", "input", raw)
		c.console.Println(c.theme.Alert(InvalidSelection))
		if err := c.acknowledge(PressEnterRetry); err != nil {
			return 0, err
		}
		c.showMenu()
	}
}

func (c *Controller) quit(ctx context.Context) {
	if c.session.State() != core.StateQuitting {
		c.session.TransitionTo(ctx, core.StateQuitting)
	}
	c.clearer.Clear()
	c.console.Println(ExitMessage)
}

func (c *Controller) acknowledge(prompt string) error {
	if err := c.console.WaitForEnter(prompt); err != nil {
		return fmt.Errorf("menu: waiting for enter: %w", err)
	}
	return nil
}
