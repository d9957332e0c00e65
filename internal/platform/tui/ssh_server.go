package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/funrun/internal/assets"
	"github.com/vovakirdan/funrun/internal/bridge"
	"github.com/vovakirdan/funrun/internal/config"
	"github.com/vovakirdan/funrun/internal/core"
	"github.com/vovakirdan/funrun/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.funrun/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate and Seed are passed to every session. A zero seed derives
	// one per session from the clock.
	TickRate int
	Seed     int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves one independent runner session per SSH connection.
// Sessions share only the store.
type SSHServer struct {
	config  SSHServerConfig
	runner  config.RunnerConfig
	sprites assets.Set
	store   *storage.Store
	board   bridge.Leaderboard
	server  *ssh.Server
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// sessions run without persistence. board defaults to store.
func NewSSHServer(cfg SSHServerConfig, rc config.RunnerConfig, sprites assets.Set, store *storage.Store, board bridge.Leaderboard, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if board == nil && store != nil {
		board = store
	}

	srv := &SSHServer{
		config:  cfg,
		runner:  rc,
		sprites: sprites,
		store:   store,
		board:   board,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".funrun", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
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

// highScoreKey scopes the persisted best to the SSH user.
func highScoreKey(base, user string) string {
	if user == "" {
		return base
	}
	return base + ":" + user
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "funrun needs a terminal: connect with ssh -t")
		return nil, nil
	}

	sessionID := uuid.NewString()
	userLogger := s.logger.With("user", sess.User())
	logger := userLogger.With("session", sessionID)

	bcfg := bridge.DefaultConfig()
	bcfg.HighScoreKey = highScoreKey(s.runner.Scoring.HighScoreKey, sess.User())

	var (
		local     bridge.HighScoreStore
		highScore int
	)
	if s.store != nil {
		local = s.store
		ctx, cancel := context.WithTimeout(sess.Context(), 5*time.Second)
		hs, err := s.store.LoadHighScore(ctx, bcfg.HighScoreKey)
		cancel()
		if err != nil {
			logger.Warn("could not load high score", "err", err)
		}
		highScore = hs
	}

	br := bridge.New(bcfg, local, s.board, logger)
	go func() {
		<-sess.Context().Done()
		br.Close()
		st := br.Stats()
		logger.Debug("bridge closed", "delivered", st.Delivered, "failed", st.Failed, "dropped", st.Dropped)
	}()

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := NewModel(Options{
		Runner: s.runner,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.TickRate,
			Seed:     seed,
		},
		Sprites:   s.sprites,
		Persister: br,
		Scores:    br,
		HighScore: highScore,
		Name:      sess.User(),
		SessionID: sessionID,
		Logger:    userLogger,
	})

	return m, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
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
			"dur", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
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
