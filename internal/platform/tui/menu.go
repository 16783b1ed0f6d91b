package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	LevelID string
	Title   string
	Best    string // best time and score, empty if never played
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	infos := registry.List()
	items := make([]MenuItem, 0, len(infos))

	for _, info := range infos {
		items = append(items, MenuItem{
			LevelID: info.ID,
			Title:   info.Title,
			Best:    bestLine(store, info.ID, cfg.TickRate),
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// bestLine summarizes a level's stats for the menu.
func bestLine(store *storage.Store, levelID string, tickRate int) string {
	if store == nil {
		return ""
	}
	stats, err := store.LevelStats(levelID)
	if err != nil || stats.Runs == 0 {
		return ""
	}
	if stats.BestTicks == 0 {
		return fmt.Sprintf("%d runs, not cleared", stats.Runs)
	}
	return fmt.Sprintf("best %s, hi %d", FormatTicks(stats.BestTicks, tickRate), stats.HighScore)
}

// FormatTicks formats a tick count as mm:ss.t.
func FormatTicks(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := time.Duration(ticks) * time.Second / time.Duration(tickRate)
	d = d.Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%02d:%04.1f", int(d/time.Minute), (d % time.Minute).Seconds())
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the level
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuBestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("  S T O R E   D A S H  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a level", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if item.Best != "" {
			line += "  " + menuBestStyle.Render("("+item.Best+")")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().LevelID
	default:
		result.Quit = true
	}

	return result, nil
}
