package tui

import (
	"fmt"

	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

// saveRun persists a finished run and, when the game recorded one, its
// replay. It returns the stored run ID.
func saveRun(store *storage.Store, game registry.Game) (string, error) {
	if store == nil {
		return "", nil
	}

	state := game.State()
	run := storage.Run{
		LevelID: game.ID(),
		Outcome: "dead",
		Score:   state.Score,
		Ticks:   state.Ticks,
	}
	if state.Won {
		run.Outcome = "completed"
	}

	var replayData []byte
	if rec, ok := game.(registry.Recorded); ok {
		summary, err := rec.Summary()
		if err != nil {
			return "", fmt.Errorf("summarize run: %w", err)
		}
		run.Outcome = summary.Outcome
		run.Score = summary.Score
		run.Ticks = summary.Ticks
		run.Health = summary.Health
		run.Defeated = summary.Defeated
		replayData = summary.Replay
	}

	runID, err := store.SaveRun(run)
	if err != nil {
		return "", err
	}
	if len(replayData) > 0 {
		if err := store.SaveReplay(runID, replayData); err != nil {
			return runID, err
		}
	}
	return runID, nil
}
