package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

// statusTicks is how long a status message replaces the help bar.
const statusTicks = 180

// Options configures a game model.
type Options struct {
	// Store persists finished runs. May be nil.
	Store *storage.Store

	// HoldTicks is how long one left/right press holds the axis.
	HoldTicks int

	// Watcher and Reload enable hot reload: every change reported by the
	// watcher swaps in the game Reload returns.
	Watcher *levels.Watcher
	Reload  func() (registry.Game, error)

	// InSession makes back return to the menu instead of quitting.
	InSession bool

	// Logger receives save and reload failures. May be nil.
	Logger *log.Logger
}

// LevelChangedMsg is sent when the watched level file changes.
type LevelChangedMsg struct {
	Path string
}

// Model is the Bubble Tea model for playing one level.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	axis       AxisHold
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been saved
	runIDs     []string
	status     string
	statusLeft int
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		axis:       NewAxisHold(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
	}
}

// playHeight leaves the last terminal row for the help bar.
func playHeight(h int) int {
	return max(1, h-1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil && m.opts.Reload != nil {
		cmds = append(cmds, waitForChange(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case LevelChangedMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionLeft:
		m.axis.Press(-1)
	case core.ActionRight:
		m.axis.Press(1)
	case core.ActionJump, core.ActionPause:
		m.inputFrame.Set(action)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case core.ActionBack:
		// Esc pauses a running game and leaves a paused or finished one.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.opts.InSession {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		m.inputFrame.Set(core.ActionPause)
	}

	return m, nil
}

// handleResize processes window resize events. The run keeps going: the
// simulation does not depend on the terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.axis.Release()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.inputFrame.SetAxis(m.axis.Tick())
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.runSaved = true
		m.persistRun()
	}

	m.inputFrame.Clear()
	if m.statusLeft > 0 {
		m.statusLeft--
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) persistRun() {
	if m.opts.Store == nil {
		return
	}

	runID, err := saveRun(m.opts.Store, m.game)
	if runID != "" {
		m.runIDs = append(m.runIDs, runID)
	}
	if err != nil {
		m.setStatus("could not save run: " + err.Error())
		if m.opts.Logger != nil {
			m.opts.Logger.Error("save run", "level", m.game.ID(), "error", err)
		}
		return
	}
	m.setStatus("run saved: " + runID)
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run saved", "level", m.game.ID(), "run", runID, "score", m.gameState.Score)
	}
}

// handleReload swaps in the reloaded level and keeps watching.
func (m Model) handleReload(msg LevelChangedMsg) (tea.Model, tea.Cmd) {
	next := waitForChange(m.opts.Watcher)

	game, err := m.opts.Reload()
	if err != nil {
		m.setStatus("reload failed: " + err.Error())
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("level reload failed", "path", msg.Path, "error", err)
		}
		return m, next
	}

	m.game = game
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.axis.Release()
	m.inputFrame.Clear()
	m.setStatus("reloaded " + filepath.Base(msg.Path))
	return m, next
}

// waitForChange blocks until the watcher reports a change.
func waitForChange(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		name, ok := <-w.Events
		if !ok {
			return nil
		}
		return LevelChangedMsg{Path: name}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}
	dir := filepath.Join(home, ".storedash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}
	m.setStatus("screenshot saved: " + path)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys.Keys())
	if m.statusLeft > 0 && m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunIDs returns the IDs of the runs saved so far.
func (m Model) RunIDs() []string {
	return m.runIDs
}

// Run starts the Bubble Tea program with the given game and returns the
// IDs of the runs it saved.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) ([]string, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(Model); ok {
		return m.RunIDs(), nil
	}
	return nil, nil
}
