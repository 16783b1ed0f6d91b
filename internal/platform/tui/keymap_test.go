package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/store-dash/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w", runeKey('w'), core.ActionJump, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, expected %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("isQuit = %v, expected %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}

func TestAxisHoldLapses(t *testing.T) {
	h := NewAxisHold(3)
	h.Press(-1)

	for i := 0; i < 3; i++ {
		if v := h.Tick(); v != -1 {
			t.Fatalf("tick %d: axis = %v, expected -1", i, v)
		}
	}
	if v := h.Tick(); v != 0 {
		t.Errorf("axis after hold = %v, expected 0", v)
	}
}

func TestAxisHoldRefreshAndReverse(t *testing.T) {
	h := NewAxisHold(2)
	h.Press(1)
	h.Tick()
	h.Press(1) // key repeat refreshes the hold

	if v := h.Tick(); v != 1 {
		t.Errorf("axis after refresh = %v, expected 1", v)
	}
	if v := h.Tick(); v != 1 {
		t.Errorf("axis on last held tick = %v, expected 1", v)
	}

	h.Press(1)
	h.Press(-1)
	if v := h.Value(); v != -1 {
		t.Errorf("axis after opposite press = %v, expected -1", v)
	}

	h.Release()
	if v := h.Tick(); v != 0 {
		t.Errorf("axis after release = %v, expected 0", v)
	}
}

func TestAxisHoldDefaults(t *testing.T) {
	h := NewAxisHold(0)
	h.Press(5)

	held := 0
	for h.Tick() != 0 {
		held++
	}
	if held != DefaultHoldTicks {
		t.Errorf("held for %d ticks, expected %d", held, DefaultHoldTicks)
	}
}
