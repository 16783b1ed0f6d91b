package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/store-dash/internal/platform/tui"
	"github.com/vovakirdan/store-dash/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start Store Dash in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a level.
After a run ends, Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab          - Best runs
  Q            - Quit

Examples:
  storedash menu
  storedash menu --difficulty easy
  storedash menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().IntVar(&flagHoldTicks, "hold-ticks", tui.DefaultHoldTicks, "Ticks one left/right key press holds the run")
}

func runMenu(_ *cobra.Command, _ []string) {
	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}

	store := openStore()
	cfg := terminalConfig(tuning)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.LevelID == "" {
			break
		}

		game, err := registry.Create(menuResult.LevelID, tuning)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating level: %v\n", err)
			continue
		}

		runIDs, err := tui.Run(game, cfg, tui.Options{
			Store:     store,
			HoldTicks: flagHoldTicks,
			InSession: true,
			Logger:    logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		logger.Debug("left level", "level", menuResult.LevelID, "runs", len(runIDs))

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}
