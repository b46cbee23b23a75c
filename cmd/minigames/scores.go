package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/storage"
)

var (
	flagScoresMode   string
	flagScoresLimit  int
	flagScoresReset  bool
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show the best sessions of a game",
	Long: `Display the best recorded sessions for the specified game, ordered
by the game's result (higher clicks per second, lower reaction time, ...).

Examples:
  minigames scores click-speed
  minigames scores memory-match --mode hard
  minigames scores reaction-time --recent
  minigames scores snake --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show this mode")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete the history and bests of the game")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest sessions, including unranked ones")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'minigames list' to see available games)", gameID)
	}
	rules, err := registry.Create(gameID, registry.Options{})
	if err != nil {
		return err
	}

	// Open score storage
	if flagDBPath == "" {
		return errNoDatabase
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.ClearGame(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	if flagScoresRecent {
		return printRecent(store, info.Title, gameID)
	}

	sessions, err := store.TopSessions(gameID, flagScoresMode, rules.Info().Direction, flagScoresLimit)
	if err != nil {
		return err
	}

	// Display scores
	fmt.Printf("Best Sessions - %s (%s)\n", info.Title, rules.Info().Direction)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'minigames play %s' to set the first record!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "Rank", "Result", "Mode", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %s\n", "----", "------", "----", "-----", "----")

	// Print sessions
	for i, s := range sessions {
		dateStr := s.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10g  %-8s  %-6d  %s\n", i+1, s.Result, s.Mode, s.Score, dateStr)
	}

	// Show aggregate stats
	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Sessions played: %d, average score %.1f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printRecent(store *storage.Store, title, gameID string) error {
	sessions, err := store.RecentSessions(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Recent Sessions - %s\n", title)
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("No sessions played yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-11s  %-10s  %s\n", "Date", "Mode", "Reason", "Result", "Ranked")
	fmt.Printf("  %-16s  %-8s  %-11s  %-10s  %s\n", "----", "----", "------", "------", "------")
	for _, s := range sessions {
		ranked := "no"
		if s.Recorded {
			ranked = "yes"
		}
		fmt.Printf("  %-16s  %-8s  %-11s  %-10g  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Mode, s.Reason, s.Result, ranked)
	}
	return nil
}
