// Package logging builds the charmbracelet loggers used across the game.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options controls where and how verbosely the game logs.
type Options struct {
	// File is the log file path. Empty means stderr.
	// The file is truncated at the start of every run.
	File string

	// Level is one of debug, info, warn, error.
	Level string

	// Prefix names the root logger (e.g. "chimera").
	Prefix string
}

// New creates the root logger. The returned closer releases the log file;
// it is a no-op when logging to stderr.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("logging: cannot create directory %s: %w", dir, err)
			}
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: cannot open %s: %w", opts.File, err)
		}
		out = f
		closer = f
	}

	return NewWithWriter(out, level, opts.Prefix), closer, nil
}

// NewWithWriter creates a timestamped logger writing to w.
func NewWithWriter(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Component derives a child logger for a named component, keeping the
// parent's output and level.
func Component(parent *log.Logger, name string) *log.Logger {
	if parent == nil {
		return Discard()
	}
	prefix := parent.GetPrefix()
	if prefix != "" {
		prefix += "/"
	}
	return parent.WithPrefix(prefix + name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
