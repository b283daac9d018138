// Package terminal provides the line-oriented console the game is played
// on: paced narrative output, screen clearing and prompted input.
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chimera/internal/logging"
)

// SleepFunc suspends for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Renderer writes narrative text one line at a time, pausing after each line.
type Renderer struct {
	out    io.Writer
	delay  time.Duration
	sleep  SleepFunc
	logger *log.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSleep replaces the sleep used between lines.
func WithSleep(fn SleepFunc) RendererOption {
	return func(r *Renderer) {
		r.sleep = fn
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(l *log.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = l
	}
}

// NewRenderer creates a renderer writing to out with the given default
// per-line delay. A negative delay is treated as zero.
func NewRenderer(out io.Writer, delay time.Duration, opts ...RendererOption) *Renderer {
	if delay < 0 {
		delay = 0
	}
	r := &Renderer{
		out:    out,
		delay:  delay,
		sleep:  contextSleep,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Delay returns the default per-line delay.
func (r *Renderer) Delay() time.Duration {
	return r.delay
}

// Display renders text with the default delay. See DisplayWithDelay.
func (r *Renderer) Display(ctx context.Context, text any) {
	r.DisplayWithDelay(ctx, text, r.delay)
}

// DisplayWithDelay renders a []string in order, or a string split on line
// breaks, sleeping for delay after every line.
//
// Any other type is reported in-band and the call returns normally, so a
// content mistake never interrupts the narrative.
func (r *Renderer) DisplayWithDelay(ctx context.Context, text any, delay time.Duration) {
	var lines []string
	switch v := text.(type) {
	case string:
		lines = SplitLines(v)
	case []string:
		lines = v
	default:
		r.logger.Error("Unsupported text type for sequential display", "type", fmt.Sprintf("%T", text))
		fmt.Fprintf(r.out, "[Error: Cannot display text of type %T sequentially]\n", text)
		return
	}

	r.logger.Debug("Displaying lines sequentially", "lines", len(lines), "delay", delay)
	for _, line := range lines {
		fmt.Fprintln(r.out, line)
		if err := r.sleep(ctx, delay); err != nil {
			r.logger.Warn("Sequential display sleep interrupted.", "error", err)
			return
		}
	}
	r.logger.Debug("Sequential display complete.")
}

// SplitLines splits on \n, \r\n and \r. Interior empty lines are kept; a
// trailing line break does not produce an empty final line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
