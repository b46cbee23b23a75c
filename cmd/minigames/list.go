package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games with their modes.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-10s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Difficulty", "Modes")
	fmt.Printf("  %-*s  %-*s  %-10s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----------", "-----")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %-10s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Difficulty, strings.Join(g.Modes, ", "))
		fmt.Printf("  %-*s  %s\n", maxIDLen, "", g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'minigames play <id>' to play a game.")
}
