package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/store-dash/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long: `Shows the built-in levels plus any found under --levels-dir.

Examples:
  storedash list
  storedash list --levels-dir ./my-levels`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, info := range infos {
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, info.Title)
	}

	fmt.Println()
	fmt.Println("Run 'storedash play <id>' to play a level.")
}
