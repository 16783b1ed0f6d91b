package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

func init() {
	registry.Register("zz-board", "Board Level", func(config.StoreDashConfig) registry.Game {
		return &scriptedGame{endAfter: 1}
	})
}

func TestScoreboardShowsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Run{
		{LevelID: "zz-board", Outcome: "completed", Score: 7000, Ticks: 600},
		{LevelID: "zz-board", Outcome: "dead", Score: 100, Ticks: 300},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30, 60)
	for i, lvl := range m.levels {
		if lvl.ID == "zz-board" {
			m.levelCursor = i
			m.loadRuns(lvl.ID)
		}
	}

	if rows := len(m.table.Rows()); rows != 2 {
		t.Fatalf("rows = %d, expected 2", rows)
	}
	if top := m.table.Rows()[0]; top[1] != "7000" || top[3] != "00:10.0" {
		t.Errorf("top row = %v, expected score 7000 in 00:10.0", top)
	}

	view := m.View()
	if !strings.Contains(view, "BEST RUNS - Board Level") {
		t.Error("view should name the selected level")
	}
	if !strings.Contains(view, "2 runs") {
		t.Error("view should show the level stats")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24, 60)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}
