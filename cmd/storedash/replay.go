package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/store-dash/internal/platform/tui"
	"github.com/vovakirdan/store-dash/internal/replay"
	"github.com/vovakirdan/store-dash/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect and verify saved runs",
	Long: `Every run played in the terminal is saved with its inputs. A replay
carries its level and tuning, so it can be re-simulated later even if the
level files changed.

Examples:
  storedash replay info 6f1c2d0e-...
  storedash replay verify 6f1c2d0e-...`,
}

var replayInfoCmd = &cobra.Command{
	Use:   "info <run-id>",
	Short: "Show what a saved replay contains",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayInfo,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <run-id>",
	Short: "Re-simulate a saved run and check it ends as recorded",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

func init() {
	replayCmd.AddCommand(replayInfoCmd)
	replayCmd.AddCommand(replayVerifyCmd)
}

// loadReplay reads and decodes the replay of a stored run.
func loadReplay(runID string) (storage.Run, *replay.Replay, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return storage.Run{}, nil, fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	run, err := store.Run(runID)
	if err != nil {
		return storage.Run{}, nil, err
	}
	data, err := store.Replay(runID)
	if err != nil {
		return run, nil, err
	}
	r, err := replay.Decode(data)
	if err != nil {
		return run, nil, err
	}
	return run, r, nil
}

func runReplayInfo(_ *cobra.Command, args []string) {
	run, r, err := loadReplay(args[0])
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Run:        %s\n", run.RunID)
	fmt.Printf("Level:      %s\n", r.LevelID)
	fmt.Printf("Played:     %s\n", humanize.Time(run.CreatedAt))
	fmt.Printf("Format:     v%d, level and tuning %s\n", r.Version, humanize.Bytes(uint64(len(r.Level)+len(r.Tuning))))
	fmt.Printf("Tick rate:  %d/s\n", r.TickRate)
	fmt.Printf("Frames:     %s in %d segments\n", humanize.Comma(int64(r.Frames())), len(r.Segments))
	fmt.Printf("Duration:   %s\n", tui.FormatTicks(r.Frames(), r.TickRate))
	fmt.Printf("Result:     %s\n", r.Result)
}

func runReplayVerify(_ *cobra.Command, args []string) {
	run, r, err := loadReplay(args[0])
	if err != nil {
		fail("%v", err)
	}

	got, err := replay.Verify(r)
	if errors.Is(err, replay.ErrMismatch) {
		logger.Error("replay does not reproduce", "run", run.RunID, "recorded", r.Result, "got", got)
		fail("%v", err)
	}
	if err != nil {
		fail("%v", err)
	}

	if got.Score != run.Score || got.Ticks != run.Ticks || got.Outcome != run.Outcome {
		logger.Error("replay disagrees with stored run",
			"run", run.RunID, "stored_score", run.Score, "replay_score", got.Score)
		fail("%v: stored run is %s after %d ticks, score %d", replay.ErrMismatch, run.Outcome, run.Ticks, run.Score)
	}

	logger.Info("replay verified", "run", run.RunID, "frames", r.Frames())
	fmt.Printf("OK: %s\n", got)
}
