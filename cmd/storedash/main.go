// storedash is a side-scrolling platformer played in the terminal: run
// to the store, stomp the police and the church crowd, dodge obstacles.
//
// Usage:
//
//	storedash list                 - List available levels
//	storedash play <level>         - Play a level
//	storedash menu                 - Pick levels interactively
//	storedash scores <level>       - Show best runs for a level
//	storedash serve                - Start SSH server for remote play
//	storedash replay verify <run>  - Re-simulate a saved run
//
// Global flags:
//
//	--config <path>      - Tuning YAML (default: search path, then embedded)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--db <path>          - Database path (default: ~/.storedash/runs.db)
//	--levels-dir <path>  - Extra directory of level YAML files
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/games/storedash"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLevelsDir  string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "storedash",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storedash",
	Short: "Store Dash - run to the store in your terminal",
	Long: `Store Dash is a side-scrolling platformer played in the terminal.
Reach the store at the end of each street. Police chase you, the church
crowd paces its lane, obstacles slow you down. Jump on an enemy's head to
knock it out.

Available commands:
  list     - Show all available levels
  play     - Play a specific level directly
  menu     - Interactive level picker
  scores   - View best runs
  serve    - Start SSH server for remote play
  replay   - Inspect and verify saved runs

Examples:
  storedash list
  storedash play main-street
  storedash menu --difficulty hard
  storedash serve --ssh :2222
  storedash replay verify 6f1c...`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.storedash/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level YAML files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup applies the log level and registers levels from --levels-dir.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagLevelsDir != "" {
		return registerDir(flagLevelsDir)
	}
	return nil
}

// registerDir registers every valid level under dir. Broken files are
// logged and skipped; IDs already taken by embedded levels are skipped too.
func registerDir(dir string) error {
	found, skipped, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		return err
	}
	for _, skipErr := range skipped {
		logger.Warn("skipping level file", "error", skipErr)
	}

	for _, lvl := range found {
		if registry.Exists(lvl.ID) {
			logger.Warn("level id already registered", "id", lvl.ID, "file", lvl.FilePath)
			continue
		}
		registry.Register(lvl.ID, lvl.Name, func(tuning config.StoreDashConfig) registry.Game {
			return storedash.New(lvl, tuning)
		})
		logger.Debug("registered level", "id", lvl.ID, "file", lvl.FilePath)
	}
	return nil
}

// loadTuning loads the tuning config and applies the difficulty preset.
func loadTuning() (config.StoreDashConfig, error) {
	tuning, err := config.Load(flagConfig)
	if err != nil {
		return tuning, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return tuning, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyPreset(&tuning, preset)
	}
	return tuning, nil
}

// openStore opens the runs database. Failure is not fatal: the game
// still works without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig(tuning config.StoreDashConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tuning.Physics.TickRate,
	}
}

// fail prints an error and exits, the way every command reports errors.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
