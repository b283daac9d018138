package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chimera/internal/config"
	"github.com/vovakirdan/chimera/internal/core"
	"github.com/vovakirdan/chimera/internal/logging"
	"github.com/vovakirdan/chimera/internal/menu"
	"github.com/vovakirdan/chimera/internal/platform/terminal"
	"github.com/vovakirdan/chimera/internal/registry"
	"github.com/vovakirdan/chimera/internal/session"
	"github.com/vovakirdan/chimera/internal/storage"
	"github.com/vovakirdan/chimera/internal/story"
	"github.com/vovakirdan/chimera/internal/telemetry"
)

// Journal end reasons
const (
	endQuit         = "quit"
	endDisconnected = "disconnected"
	endError        = "error"
)

// app holds what every game run shares: configuration, the root logger,
// the story pack and the optional journal store.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	story    registry.Story
	store    *storage.Store
	closers  []io.Closer
	shutdown func(context.Context) error
}

// loadApp resolves configuration (file, environment, then flags), opens
// the log and the journal, and installs tracing.
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Prefix: "chimera",
	})
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		logger:  logger,
		closers: []io.Closer{logCloser},
	}

	a.story, err = registry.Load(cfg.Story)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.shutdown, err = telemetry.Setup(cmd.Context())
	if err != nil {
		logger.Warn("Tracing disabled", "error", err)
	}

	if cfg.Journal.Enabled {
		store, err := storage.Open(cfg.Journal.DBPath)
		if err != nil {
			logger.Warn("Could not open run journal, continuing without it", "error", err)
		} else {
			a.store = store
			a.closers = append(a.closers, store)
		}
	}

	return a, nil
}

// applyFlags overrides configuration with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("delay") {
		cfg.Text.LineDelay = flagDelay
		cfg.Text.Pace = ""
	}
	if flags.Changed("pace") {
		if _, ok := config.ParsePacePreset(flagPace); !ok {
			return fmt.Errorf("unknown pace %q (want one of %v)", flagPace, config.PresetNames())
		}
		cfg.Text.Pace = flagPace
	}
	if flags.Changed("db") {
		cfg.Journal.DBPath = flagDBPath
	}
	if flagNoJournal {
		cfg.Journal.Enabled = false
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("story") {
		cfg.Story = flagStory
	}
	return nil
}

// runtime returns the per-run settings for a run started from origin.
func (a *app) runtime(origin string) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.LineDelay = a.cfg.Text.EffectiveDelay()
	rc.StoryID = a.story.ID()
	rc.Origin = origin
	return rc
}

// play runs one complete game: title screen, menu and any new games
// started from it. Each call gets its own session and journal run.
func (a *app) play(ctx context.Context, rc core.RuntimeConfig, console *terminal.Console, clearer terminal.Clearer) error {
	logger := a.logger.With("origin", rc.Origin)

	opts := []session.Option{
		session.WithSetup(a.story.Setup),
		session.WithLogger(logging.Component(logger, "session")),
	}

	var journal *storage.Journal
	if a.store != nil {
		j, err := a.store.BeginRun(rc.StoryID, rc.Origin)
		if err != nil {
			logger.Warn("Could not start journal run", "error", err)
		} else {
			journal = j
			opts = append(opts, session.WithRecorder(journal))
			logger = logger.With("run", journal.RunID())
		}
	}

	s := session.New(opts...)
	renderer := terminal.NewRenderer(console.Writer(), rc.LineDelay,
		terminal.WithLogger(logging.Component(logger, "renderer")))

	starter, err := story.NewStarter(a.story, console, renderer, clearer, logging.Component(logger, "story"))
	if err != nil {
		return err
	}

	ctl := menu.New(console, starter, s,
		menu.WithClearer(clearer),
		menu.WithLogger(logging.Component(logger, "menu")),
	)
	err = ctl.Run(ctx)

	if ferr := journal.Finish(endReason(err)); ferr != nil {
		logger.Warn("Could not close journal run", "error", ferr)
	}
	return err
}

func endReason(err error) string {
	switch {
	case err == nil:
		return endQuit
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return endDisconnected
	default:
		return endError
	}
}

// Close flushes tracing and closes the journal and the log file.
func (a *app) Close() {
	if a.shutdown != nil {
		//nolint:errcheck // Best-effort flush on exit
		a.shutdown(context.Background())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}
