package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/shared-garden/internal/config"
	"github.com/vovakirdan/shared-garden/internal/core"
	"github.com/vovakirdan/shared-garden/internal/multiplayer"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
)

// SSHServer serves the garden client over SSH. A user whose login name is
// one of the match's players plays that seat; anyone else spectates.
type SSHServer struct {
	addr    string
	server  *ssh.Server
	host    Host
	codec   *snapshot.Codec
	players []string
	buffer  int
	logger  *log.Logger
}

// NewSSHServer creates an SSH server for one match.
func NewSSHServer(host Host, codec *snapshot.Codec, players []string, cfg config.ServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	srv := &SSHServer{
		addr:    cfg.SSHAddr,
		host:    host,
		codec:   codec,
		players: slices.Clone(players),
		buffer:  cfg.SessionBuffer,
		logger:  logger.WithPrefix("ssh"),
	}

	hostKeyPath, err := config.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve host key path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(30*time.Minute),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler creates a client model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := ModelConfig{
		SessionID: multiplayer.SessionID("ssh-" + sshSession.User() + "-" + uuid.NewString()[:8]),
		Seats:     s.seatsFor(sshSession.User()),
		Buffer:    s.buffer,
		Screen: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
		},
	}
	return NewModel(s.host, s.codec, cfg), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) seatsFor(user string) []string {
	if slices.Contains(s.players, user) {
		return []string{user}
	}
	return nil
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		user := sshSession.User()
		role := "spectator"
		if len(s.seatsFor(user)) > 0 {
			role = "player"
		}
		s.logger.Info("session started",
			"user", user,
			"role", role,
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", user,
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until Shutdown is called.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.addr
}
