package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show level list sidebar
	sidebarWidth       = 22  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the runs screen.
type ScoreboardModel struct {
	levels      []registry.LevelInfo // Levels to browse
	levelCursor int                  // Currently selected level index
	store       *storage.Store
	tickRate    int
	runs        []storage.Run
	stats       *storage.LevelStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show level list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height, tickRate int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		levels:      registry.List(),
		store:       store,
		tickRate:    tickRate,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	if len(m.levels) > 0 {
		m.loadRuns(m.levels[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Result", Width: 9},
		{Title: "Time", Width: 8},
		{Title: "KO", Width: 3},
		{Title: "When", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs and stats for the given level.
func (m *ScoreboardModel) loadRuns(levelID string) {
	m.runs = nil
	m.stats = nil

	if m.store != nil {
		if runs, err := m.store.TopRuns(levelID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.LevelStats(levelID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Outcome,
			FormatTicks(r.Ticks, m.tickRate),
			fmt.Sprintf("%d", r.Defeated),
			humanize.Time(r.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel), key.Matches(msg, m.keys.Right):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + 1) % len(m.levels)
				m.loadRuns(m.levels[m.levelCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel), key.Matches(msg, m.keys.Left):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor - 1 + len(m.levels)) % len(m.levels)
				m.loadRuns(m.levels[m.levelCursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "BEST RUNS"
	if len(m.levels) > 0 {
		title = fmt.Sprintf("BEST RUNS - %s", m.levels[m.levelCursor].Title)
	}
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(boardMutedStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(boardMutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected level.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs yet"
	}
	line := fmt.Sprintf("%d runs  |  %d cleared  |  %d busted", m.stats.Runs, m.stats.Completions, m.stats.Deaths)
	if m.stats.BestTicks > 0 {
		line += "  |  best " + FormatTicks(m.stats.BestTicks, m.tickRate)
	}
	return line
}

// renderWideLayout renders the runs with a sidebar for level selection.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, lvl := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.levelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(lvl.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	sidebarRendered := boardPanelStyle.Width(sidebarWidth).Render(sidebar.String())
	tableRendered := boardPanelStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the runs with the level name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.levels) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.levels[m.levelCursor].Title), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(boardPanelStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := boardMutedStyle.Italic(true).Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nReach the store to set a time!")
	}

	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height, tickRate int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height, tickRate)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
