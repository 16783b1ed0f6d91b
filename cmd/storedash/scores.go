package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/store-dash/internal/platform/tui"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best runs for a level",
	Long: `Display the best runs for the specified level, or a summary of every
level played so far when no level is given.

Examples:
  storedash scores
  storedash scores main-street
  storedash scores precinct --limit 25
  storedash scores precinct --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the level")
}

func runScores(_ *cobra.Command, args []string) {
	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	tickRate := tuning.Physics.TickRate

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store, tickRate); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	levelID := args[0]
	title := levelID
	for _, info := range registry.List() {
		if info.ID == levelID {
			title = info.Title
		}
	}

	if flagClear {
		if err := store.ClearRuns(levelID); err != nil {
			store.Close()
			fail("clearing runs: %v", err)
		}
		fmt.Printf("Cleared all runs of %s.\n", title)
		return
	}

	runs, err := store.TopRuns(levelID, flagScoresLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'storedash play %s' to set the first time!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-9s  %-8s  %-3s  %-14s  %s\n", "Rank", "Score", "Result", "Time", "KO", "When", "Run")
	fmt.Printf("  %-4s  %-7s  %-9s  %-8s  %-3s  %-14s  %s\n", "----", "-----", "------", "----", "--", "----", "---")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-9s  %-8s  %-3d  %-14s  %s\n",
			i+1, r.Score, r.Outcome, tui.FormatTicks(r.Ticks, tickRate), r.Defeated,
			humanize.Time(r.CreatedAt), r.RunID)
	}

	stats, err := store.LevelStats(levelID)
	if err == nil {
		fmt.Println()
		fmt.Printf("%s runs, %d cleared, %d busted, average score %.0f\n",
			humanize.Comma(int64(stats.Runs)), stats.Completions, stats.Deaths, stats.AvgScore)
		if stats.BestTicks > 0 {
			fmt.Printf("Best time: %s\n", tui.FormatTicks(stats.BestTicks, tickRate))
		}
	}
}

// printSummary lists every level that has runs.
func printSummary(store *storage.Store, tickRate int) error {
	played, err := store.PlayedLevels()
	if err != nil {
		return err
	}
	if len(played) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-8s  %-7s  %s\n", "Level", "Runs", "Cleared", "Best", "Hi", "Last played")
	fmt.Printf("  %-16s  %-5s  %-7s  %-8s  %-7s  %s\n", "-----", "----", "-------", "----", "--", "-----------")

	for _, levelID := range played {
		stats, err := store.LevelStats(levelID)
		if err != nil {
			return err
		}
		best := "-"
		if stats.BestTicks > 0 {
			best = tui.FormatTicks(stats.BestTicks, tickRate)
		}
		fmt.Printf("  %-16s  %-5d  %-7d  %-8s  %-7d  %s\n",
			levelID, stats.Runs, stats.Completions, best, stats.HighScore, humanize.Time(stats.LastPlayed))
	}
	return nil
}
