package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/store-dash/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Store Dash SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level picker menu.
Runs are stored per-server (all users share the same board).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.storedash/host_key

Examples:
  storedash serve                           # Listen on :23234 with auto-generated key
  storedash serve --ssh :2222               # Listen on port 2222
  storedash serve --host-key ./my_host_key  # Use specific host key
  storedash serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagHoldTicks, "hold-ticks", tui.DefaultHoldTicks, "Ticks one left/right key press holds the run")
}

func runServe(_ *cobra.Command, _ []string) {
	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		Tuning:      tuning,
		HoldTicks:   flagHoldTicks,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Store Dash SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
