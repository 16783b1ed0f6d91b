package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/games/storedash"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/platform/tui"
	"github.com/vovakirdan/store-dash/internal/registry"
)

var (
	flagLevelFile string
	flagWatch     bool
	flagHoldTicks int
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  P/Esc            - Pause
  R                - Restart (after the run ends)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Terminals only report key presses, so one press keeps you running for
--hold-ticks ticks; holding the key keeps refreshing it.

Difficulty options:
  easy   - More health, enemies start slow and speed up
  normal - Enemies start at 30% difficulty and speed up
  hard   - Less health, enemies start at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  storedash play main-street
  storedash play precinct --difficulty hard
  storedash play --level-file ./my-level.yaml --watch
  storedash play church-square --config ./tuning.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Play a level YAML file instead of a registered level")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --level-file whenever it changes")
	playCmd.Flags().IntVar(&flagHoldTicks, "hold-ticks", tui.DefaultHoldTicks, "Ticks one left/right key press holds the run")
}

func runPlay(_ *cobra.Command, args []string) {
	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}

	var game registry.Game
	switch {
	case flagLevelFile != "":
		game, err = gameFromFile(flagLevelFile, tuning)
		if err != nil {
			fail("%v", err)
		}
	case len(args) == 1:
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'storedash list' to see available levels.")
			os.Exit(1)
		}
		game, err = registry.Create(args[0], tuning)
		if err != nil {
			fail("creating level: %v", err)
		}
	default:
		fail("a level id or --level-file is required")
	}

	opts := tui.Options{
		HoldTicks: flagHoldTicks,
		Logger:    logger,
	}

	if flagWatch {
		if flagLevelFile == "" {
			fail("--watch needs --level-file")
		}
		watcher, watchErr := levels.WatchFile(flagLevelFile)
		if watchErr != nil {
			fail("watching %s: %v", flagLevelFile, watchErr)
		}
		defer watcher.Close()

		// Surface watcher errors in the log; the game keeps its last good level.
		go func() {
			for werr := range watcher.Errors {
				logger.Warn("level watcher", "error", werr)
			}
		}()

		opts.Watcher = watcher
		opts.Reload = func() (registry.Game, error) {
			return gameFromFile(flagLevelFile, tuning)
		}
	}

	store := openStore()
	opts.Store = store

	runIDs, runErr := tui.Run(game, terminalConfig(tuning), opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	for _, id := range runIDs {
		fmt.Printf("Saved run %s\n", id)
	}
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

func gameFromFile(path string, tuning config.StoreDashConfig) (registry.Game, error) {
	level, err := levels.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := level.Fits(tuning); err != nil {
		return nil, err
	}
	return storedash.New(level, tuning), nil
}
