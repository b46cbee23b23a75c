package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/storage"
)

var bestCmd = &cobra.Command{
	Use:   "best [game]",
	Short: "Show stored best results",
	Long: `Display the best result stored for every game and mode, or for a
single game.

Examples:
  minigames best
  minigames best simon-says`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBest,
}

func runBest(_ *cobra.Command, args []string) error {
	prefix := ""
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown game %q (run 'minigames list' to see available games)", args[0])
		}
		prefix = ledger.Key(args[0], "")
	}

	if flagDBPath == "" {
		return errNoDatabase
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	entries, err := store.AllBest()
	if err != nil {
		return err
	}

	shown := 0
	for _, e := range entries {
		if !strings.HasPrefix(e.Key, prefix) {
			continue
		}
		if shown == 0 {
			fmt.Printf("  %-32s  %-10s  %s\n", "Key", "Best", "Updated")
			fmt.Printf("  %-32s  %-10s  %s\n", "---", "----", "-------")
		}
		fmt.Printf("  %-32s  %-10g  %s\n", e.Key, e.Value, e.UpdatedAt.Format("2006-01-02 15:04"))
		shown++
	}

	if shown == 0 {
		fmt.Println("No best results recorded yet.")
	}
	return nil
}
