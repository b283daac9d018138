// Package sshd serves the game over SSH with Wish. Every connection gets
// its own console and runs an independent game.
package sshd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"

	"github.com/vovakirdan/chimera/internal/config"
	"github.com/vovakirdan/chimera/internal/logging"
	"github.com/vovakirdan/chimera/internal/platform/terminal"
)

// Config holds configuration for the SSH server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.chimera/host_key.
	HostKeyPath string

	// IdleTimeout closes connections with no traffic.
	IdleTimeout time.Duration
}

// FromServerConfig converts the file configuration.
func FromServerConfig(c config.ServerConfig) Config {
	return Config{
		Address:     c.Address,
		HostKeyPath: c.HostKeyPath,
		IdleTimeout: c.IdleTimeout,
	}
}

// Connection is what a game needs from one SSH session.
type Connection struct {
	User    string
	Remote  string
	Console *terminal.Console
	Clearer terminal.Clearer
}

// PlayFunc runs one complete game on a connection. It returns when the
// player quits or the connection closes.
type PlayFunc func(ctx context.Context, conn Connection) error

// Server wraps a Wish SSH server.
type Server struct {
	config Config
	server *ssh.Server
	play   PlayFunc
	logger *log.Logger
}

// New creates a server. Nothing listens until Run is called.
func New(cfg Config, play PlayFunc, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("sshd: cannot create host key directory: %w", err)
	}

	srv := &Server{
		config: cfg,
		play:   play,
		logger: logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			srv.playMiddleware,
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("sshd: cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("sshd: cannot get home directory: %w", err)
		}
		return filepath.Join(home, ".chimera", "host_key"), nil
	}
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return "", fmt.Errorf("sshd: %w", err)
	}
	return expanded, nil
}

// playMiddleware runs a game on the session's PTY.
func (s *Server) playMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		console := terminal.NewTerminalConsole(sess)
		conn := Connection{
			User:    sess.User(),
			Remote:  sess.RemoteAddr().String(),
			Console: console,
			Clearer: terminal.ANSIClearer{Out: console.Writer()},
		}

		if err := s.play(sess.Context(), conn); err != nil && !isDisconnect(err) {
			s.logger.Error("game ended with error", "user", conn.User, "error", err)
			fmt.Fprintln(sess.Stderr(), "Game error:", err)
			//nolint:errcheck // Connection is closing anyway
			sess.Exit(1)
			return
		}
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("sshd: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}
