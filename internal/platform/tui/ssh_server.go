package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.storedash/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// Tuning is the game tuning every session plays with.
	Tuning config.StoreDashConfig

	// HoldTicks is how long one left/right press holds the axis.
	HoldTicks int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.storedash/runs.db",
		Tuning:      config.DefaultStoreDashConfig(),
		HoldTicks:   DefaultHoldTicks,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that hosts Store Dash sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "storedash-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".storedash", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.Tuning.Physics.TickRate,
	}

	model := NewSessionModel(s.store, cfg, s.config.Tuning, sshSession.User())
	model.holdTicks = s.config.HoldTicks
	model.logger = s.logger.With("session", model.SessionID())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is which screen a session is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenBoard
)

// SessionModel manages one SSH session: menu -> level -> menu, with the
// runs board reachable from the menu.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	tuning    config.StoreDashConfig
	username  string
	sessionID string
	holdTicks int
	logger    *log.Logger
	screen    sessionScreen
	menu      MenuModel
	game      *Model
	board     *ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, tuning config.StoreDashConfig, username string) SessionModel {
	return SessionModel{
		store:     store,
		config:    cfg,
		tuning:    tuning,
		username:  username,
		sessionID: uuid.NewString(),
		holdTicks: DefaultHoldTicks,
		menu:      NewMenuModel(store, cfg),
	}
}

// SessionID returns the unique ID of this session.
func (m SessionModel) SessionID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode. The menu's own quit
// command is dropped: in a session it only means "leave the menu".
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.WantsScoreboard():
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, m.config.TickRate)
		m.board = &board
		m.screen = screenBoard
		return m, board.Init()

	case m.menu.Selected() != nil:
		levelID := m.menu.Selected().LevelID
		game, err := registry.Create(levelID, m.tuning)
		if err != nil {
			// Shouldn't happen since menu only shows registered levels
			m.resetMenu()
			return m, nil
		}

		m.config = m.menu.Config()
		model := NewModel(game, m.config, Options{
			Store:     m.store,
			HoldTicks: m.holdTicks,
			InSession: true,
			Logger:    m.logger,
		})
		m.game = &model
		m.screen = screenGame
		if m.logger != nil {
			m.logger.Info("level started", "user", m.username, "level", levelID)
		}
		return m, model.Init()

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.resetMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateBoard handles updates when the runs board is open.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.board = nil
		m.resetMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// resetMenu rebuilds the menu so best times reflect the latest runs.
func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenBoard:
		return m.board.View()
	}
	return m.menu.View()
}
