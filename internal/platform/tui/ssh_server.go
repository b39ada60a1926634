package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/metrics"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file. Generated on first start.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// SessionsPerMinute limits new sessions per remote host; 0 disables it.
	SessionsPerMinute int

	// ModeID and Size preselect the menu.
	ModeID string
	Size   int

	// AIDelay is the AI thinking time.
	AIDelay time.Duration

	// TurnLimit overrides the rapid clock; zero keeps the engine default.
	TurnLimit time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:           ":23234",
		HostKeyPath:       filepath.Join(".ssh", "squares_ed25519"),
		IdleTimeout:       30 * time.Minute,
		SessionsPerMinute: 30,
		ModeID:            "classic",
		Size:              squares.MinSize,
		AIDelay:           match.DefaultAIDelay,
	}
}

// SSHServer wraps a Wish SSH server. Every session plays its own local
// matches; finished results go to a ledger shared by all sessions.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	ledger   *match.Ledger
	recorder *metrics.Recorder
	limiter  *SessionLimiter
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server. recorder and logger may be nil.
func NewSSHServer(cfg SSHServerConfig, recorder *metrics.Recorder, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "squares-ssh",
		})
	}

	srv := &SSHServer{
		config:   cfg,
		ledger:   match.NewLedger(match.DefaultLedgerSize),
		recorder: recorder,
		limiter:  NewSessionLimiter(cfg.SessionsPerMinute),
		logger:   logger,
	}

	if dir := filepath.Dir(cfg.HostKeyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("cannot create host key directory: %w", err)
		}
	}

	// Middlewares run last to first: rate limit, log, then the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.rateLimitMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		s.sessionRejected("no_pty")
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	}

	tracker := &sessionMatches{}
	go func() {
		<-sess.Context().Done()
		tracker.stop()
	}()

	opts := SessionOptions{
		Factory: s.matchFactory(sess.User(), tracker),
		History: s.ledger,
		Players: []squares.PlayerID{squares.PlayerID(sess.User())},
		ModeID:  s.config.ModeID,
		Size:    s.config.Size,
	}

	return NewSessionModel(opts, rc), []tea.ProgramOption{tea.WithAltScreen()}
}

// matchFactory builds matches that report to the shared ledger and metrics.
func (s *SSHServer) matchFactory(user string, tracker *sessionMatches) MatchFactory {
	logger := s.logger.With("user", user)
	return func(cfg squares.Config) (*match.Match, error) {
		if cfg.Mode == squares.ModeRapid && s.config.TurnLimit > 0 {
			cfg.TurnLimit = s.config.TurnLimit
		}
		opts := match.Options{
			AIDelay: s.config.AIDelay,
			Logger:  logger,
			Saver:   s.ledger,
		}
		if s.recorder != nil {
			opts.Observer = s.recorder
		}

		m, err := match.New(cfg, opts)
		if err != nil {
			return nil, err
		}
		tracker.set(m)
		return m, nil
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// rateLimitMiddleware turns away hosts that open sessions too quickly.
func (s *SSHServer) rateLimitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if !s.limiter.Allow(sess.RemoteAddr()) {
			s.logger.Warn("session rate limited", "remote", sess.RemoteAddr().String())
			s.sessionRejected("rate_limit")
			wish.Fatalln(sess, "Too many sessions, try again in a minute.")
			return
		}
		next(sess)
	}
}

func (s *SSHServer) sessionRejected(reason string) {
	if s.recorder != nil {
		s.recorder.SessionRejected(reason)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionMatches remembers the latest match of one SSH session so it can be
// abandoned when the connection drops.
type sessionMatches struct {
	mu      sync.Mutex
	current *match.Match
	closed  bool
}

func (t *sessionMatches) set(m *match.Match) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		m.Stop()
		return
	}
	t.current = m
}

func (t *sessionMatches) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.current != nil {
		t.current.Stop()
	}
}
