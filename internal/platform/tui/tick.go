// Package tui runs Store Dash in a terminal: the Bubble Tea game loop, key
// mapping, the level menu, the runs board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per simulation step.
type TickMsg time.Time

// tickInterval is the wall-clock length of one step. Non-positive rates
// fall back to 60 steps per second.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next step.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
