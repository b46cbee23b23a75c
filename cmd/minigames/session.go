package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/platform/tui"
	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/storage"
)

var errNoDatabase = errors.New("no scores database configured (--db is empty)")

// backend holds the persistence shared by every session of one command.
type backend struct {
	store  *storage.Store // nil when --db is empty or the database failed
	ledger *ledger.Ledger
}

// openBackend opens the SQLite store. An empty path or an unreadable
// database keeps bests in memory so the games still work.
func openBackend() *backend {
	if flagDBPath == "" {
		return &backend{ledger: ledger.New(ledger.NewMemoryStore(), logger)}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, keeping bests in memory", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return &backend{ledger: ledger.New(ledger.NewMemoryStore(), logger)}
	}
	return &backend{store: store, ledger: ledger.New(store, logger)}
}

func (b *backend) Close() {
	if b.store != nil {
		//nolint:errcheck // Best-effort close on exit
		b.store.Close()
	}
}

// terminalSize returns the terminal dimensions, defaulting to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// playOptions selects a game configuration.
type playOptions struct {
	Mode       string
	ConfigPath string
	Difficulty string
}

// playGame runs one game in the terminal until the player quits and
// returns the last snapshot.
func playGame(b *backend, gameID string, opts playOptions) (core.Snapshot, error) {
	info, ok := registry.Lookup(gameID)
	if !ok {
		return core.Snapshot{}, fmt.Errorf("unknown game %q (run 'minigames list' to see available games)", gameID)
	}

	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return core.Snapshot{}, err
	}

	rules, err := registry.Create(gameID, registry.Options{ConfigPath: opts.ConfigPath, Preset: preset})
	if err != nil {
		return core.Snapshot{}, err
	}

	clk := clock.NewReal(64)
	defer clk.Close()

	machineOpts := []engine.Option{engine.WithLogger(logger)}
	if flagSeed != 0 {
		machineOpts = append(machineOpts, engine.WithSeed(flagSeed))
	}
	if b.store != nil {
		machineOpts = append(machineOpts, engine.WithHistory(b.store))
	}
	machine := engine.New(rules, clk, b.ledger, machineOpts...)

	width, height := terminalSize()
	logger.Debug("starting game", "game", gameID, "mode", opts.Mode, "difficulty", preset)
	return tui.Run(tui.Config{
		Game:    info,
		Mode:    opts.Mode,
		Machine: machine,
		Clock:   clk,
		Width:   width,
		Height:  height,
	})
}

// printSummary reports the final result of a session after the TUI exits.
func printSummary(title string, snap core.Snapshot) {
	if snap.Status != core.StatusEnded || snap.Reason == core.ReasonAborted {
		return
	}
	fmt.Printf("%s [%s]: %s, score %d", title, snap.Mode, snap.Reason, snap.Score)
	if snap.Reason != core.ReasonFalseStart {
		fmt.Printf(", result %g", snap.Result)
	}
	if snap.NewBest {
		fmt.Print(" - new best!")
	}
	fmt.Println()
}
