// minigames is a terminal hub of timed mini-games.
//
// Usage:
//
//	minigames list               - List available games
//	minigames play <game>        - Play a game
//	minigames menu               - Start menu to pick games interactively
//	minigames scores <game>      - Show the best sessions of a game
//	minigames best [game]        - Show stored best results
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible sessions
//	--db <path>          - Set database path (empty keeps bests in memory)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination (empty logs to stderr)
//
// Flag defaults come from ARCADE_DB, ARCADE_SEED, ARCADE_LOG_LEVEL and
// ARCADE_LOG_FILE.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/tui-minigames/internal/games/aimtrainer"
	_ "github.com/vovakirdan/tui-minigames/internal/games/clickspeed"
	_ "github.com/vovakirdan/tui-minigames/internal/games/memorymatch"
	_ "github.com/vovakirdan/tui-minigames/internal/games/reaction"
	_ "github.com/vovakirdan/tui-minigames/internal/games/simonsays"
	_ "github.com/vovakirdan/tui-minigames/internal/games/snake"
	_ "github.com/vovakirdan/tui-minigames/internal/games/typingspeed"
	_ "github.com/vovakirdan/tui-minigames/internal/games/whackamole"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minigames",
	Short: "Minigames - Timed reflex and memory games in your terminal",
	Long: `Minigames is a terminal hub of short timed games: click speed,
reaction time, snake, whack-a-mole, aim trainer, memory match,
simon says and typing speed. Best results are kept per game and mode.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View the best sessions of a game
  best     - View stored best results

Examples:
  minigames list
  minigames play snake
  minigames play memory-match --mode hard
  minigames menu
  minigames scores reaction-time`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
}

func init() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", settings.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", settings.DBPath, "Path to scores database (empty = in memory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", settings.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", settings.LogFile, "Log file (empty = stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
}

// setupLogging builds the process logger. The TUI owns the terminal, so
// logs go to a file unless --log-file is empty.
func setupLogging(_ *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagLogLevel != "" {
		parsed, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		level = parsed
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "minigames",
		Level:           level,
	})
	return nil
}

func closeLogging(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
