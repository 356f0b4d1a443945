package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// shutdownGrace bounds how long Serve waits for open sessions to end.
const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the SSH frontend.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":23234"

	// HostKeyPath defaults to ~/.pong/host_key. wish generates the key
	// there on first start.
	HostKeyPath string

	// DBPath is the rally database shared by all sessions. Empty disables saving.
	DBPath string

	IdleTimeout  time.Duration
	TickRate     int
	HoldWindowMS int

	// Logger defaults to stderr with a "pong-ssh" prefix.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings `pong serve` starts from.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23234",
		DBPath:       "~/.pong/scores.db",
		IdleTimeout:  30 * time.Minute,
		TickRate:     60,
		HoldWindowMS: 150,
	}
}

// SSHServer gives every SSH session its own menu and game.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store // nil when the database could not be opened
	logger *log.Logger
}

// NewSSHServer prepares the server. A database that fails to open is
// logged and sessions play without saving.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "pong-ssh"})
	}
	s := &SSHServer{cfg: cfg, logger: logger}

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("rally database unavailable, sessions will not save", "path", cfg.DBPath, "error", err)
		}
		s.store = store
	}

	keyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		s.closeStore()
		return nil, err
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.logSession,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("ssh: create server: %w", err)
	}
	return s, nil
}

// resolveHostKeyPath expands ~/ and creates the key's directory.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		path = "~/.pong/host_key"
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: host key: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the Bubble Tea model for one connection.
// Sessions without a PTY are refused.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without a PTY", "user", sess.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Store: s.store,
		Config: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.cfg.TickRate,
		},
		Player:       sess.User(),
		HoldWindowMS: s.cfg.HoldWindowMS,
		Logger:       s.logger.With("user", sess.User()),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started")
		next(sess)
		l.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts down, giving
// open sessions a short grace period.
func (s *SSHServer) Serve(ctx context.Context) error {
	defer s.closeStore()
	s.logger.Info("listening", "address", s.cfg.Address)

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh: shutdown: %w", err)
	}
	return nil
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing rally database", "error", err)
	}
	s.store = nil
}
