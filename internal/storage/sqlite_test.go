package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func summary(id, game, mode string, score int, result float64, recorded bool) core.Summary {
	return core.Summary{
		SessionID: id,
		Game:      game,
		Mode:      mode,
		Score:     score,
		Result:    result,
		Recorded:  recorded,
		Reason:    core.ReasonTimeout,
		Duration:  1500 * time.Millisecond,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreBestMissingKey(t *testing.T) {
	store := openTestStore(t)

	v, ok, err := store.Best("snake-best-default")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if ok || v != 0 {
		t.Errorf("Best() on empty store = %v, %v; want 0, false", v, ok)
	}
}

func TestStoreSetBestOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetBest("reaction-time-best-default", 250); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}
	if err := store.SetBest("reaction-time-best-default", 180.5); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}

	v, ok, err := store.Best("reaction-time-best-default")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if !ok || v != 180.5 {
		t.Errorf("Best() = %v, %v; want 180.5, true", v, ok)
	}
}

func TestStoreAllBest(t *testing.T) {
	store := openTestStore(t)

	for key, v := range map[string]float64{
		"snake-best-default":       12,
		"click-speed-best-default": 6.7,
		"simon-says-best-hard":     4,
	} {
		if err := store.SetBest(key, v); err != nil {
			t.Fatalf("SetBest(%s) failed: %v", key, err)
		}
	}

	entries, err := store.AllBest()
	if err != nil {
		t.Fatalf("AllBest() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Sorted by key
	want := []string{"click-speed-best-default", "simon-says-best-hard", "snake-best-default"}
	for i, e := range entries {
		if e.Key != want[i] {
			t.Errorf("entries[%d].Key = %q, want %q", i, e.Key, want[i])
		}
	}
	if entries[0].Value != 6.7 {
		t.Errorf("click-speed best = %v, want 6.7", entries[0].Value)
	}
}

func TestStoreBacksLedger(t *testing.T) {
	store := openTestStore(t)
	led := ledger.New(store, nil)
	key := ledger.Key("memory-match", "easy")

	tests := []struct {
		candidate float64
		improved  bool
		best      float64
	}{
		{candidate: 40, improved: true, best: 40},
		{candidate: 55, improved: false, best: 40},
		{candidate: 31, improved: true, best: 31},
	}

	for _, tt := range tests {
		out, err := led.RecordIfBetter(key, tt.candidate, ledger.LowerIsBetter)
		if err != nil {
			t.Fatalf("RecordIfBetter(%v) failed: %v", tt.candidate, err)
		}
		if out.Improved != tt.improved || out.Best != tt.best {
			t.Errorf("RecordIfBetter(%v) = improved %v best %v; want %v %v",
				tt.candidate, out.Improved, out.Best, tt.improved, tt.best)
		}
	}

	// A fresh ledger over the same store sees the persisted value
	v, ok, err := ledger.New(store, nil).Best(key, ledger.LowerIsBetter)
	if err != nil || !ok || v != 31 {
		t.Errorf("Best() after reopen = %v, %v, %v; want 31, true, nil", v, ok, err)
	}
}

func TestStoreSaveSession(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSession(summary("a", "click-speed", "default", 67, 6.7, true)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	entries, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(entries))
	}

	e := entries[0]
	if e.SessionID != "a" || e.GameID != "click-speed" || e.Mode != "default" {
		t.Errorf("Unexpected identity: %+v", e)
	}
	if e.Score != 67 || e.Result != 6.7 || !e.Recorded {
		t.Errorf("Unexpected values: %+v", e)
	}
	if e.Reason != string(core.ReasonTimeout) {
		t.Errorf("Reason = %q, want %q", e.Reason, core.ReasonTimeout)
	}
	if e.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", e.Duration)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	// Session ids are unique
	if err := store.SaveSession(summary("a", "click-speed", "default", 1, 0.1, true)); err == nil {
		t.Error("Expected error saving a duplicate session id")
	}
}

func TestStoreTopSessions(t *testing.T) {
	store := openTestStore(t)

	sessions := []core.Summary{
		summary("1", "memory-match", "easy", 6, 42, true),
		summary("2", "memory-match", "easy", 6, 35, true),
		summary("3", "memory-match", "easy", 3, 0, false), // Abandoned run
		summary("4", "memory-match", "hard", 12, 90, true),
		summary("5", "snake", "default", 9, 9, true),
	}
	for _, sum := range sessions {
		if err := store.SaveSession(sum); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	tests := []struct {
		name string
		game string
		mode string
		dir  ledger.Direction
		want []string
	}{
		{"lower is better", "memory-match", "easy", ledger.LowerIsBetter, []string{"2", "1"}},
		{"higher is better", "memory-match", "easy", ledger.HigherIsBetter, []string{"1", "2"}},
		{"all modes", "memory-match", "", ledger.LowerIsBetter, []string{"2", "1", "4"}},
		{"other game", "snake", "", ledger.HigherIsBetter, []string{"5"}},
		{"unknown game", "pong", "", ledger.HigherIsBetter, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.TopSessions(tt.game, tt.mode, tt.dir, 10)
			if err != nil {
				t.Fatalf("TopSessions() failed: %v", err)
			}
			if len(entries) != len(tt.want) {
				t.Fatalf("Expected %d sessions, got %d", len(tt.want), len(entries))
			}
			for i, e := range entries {
				if e.SessionID != tt.want[i] {
					t.Errorf("entries[%d] = %q, want %q", i, e.SessionID, tt.want[i])
				}
			}
		})
	}
}

func TestStoreTopSessionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		id := string(rune('a' + i))
		if err := store.SaveSession(summary(id, "snake", "default", i, float64(i), true)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	entries, err := store.TopSessions("snake", "", ledger.HigherIsBetter, 5)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("Expected 5 sessions, got %d", len(entries))
	}
	if entries[0].Score != 14 {
		t.Errorf("Expected best score 14, got %d", entries[0].Score)
	}
}

func TestStoreClearGame(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSession(summary("1", "snake", "default", 5, 5, true)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if err := store.SaveSession(summary("2", "simon-says", "normal", 3, 3, true)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if err := store.SetBest(ledger.Key("snake", "default"), 5); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}
	if err := store.SetBest(ledger.Key("simon-says", "normal"), 3); err != nil {
		t.Fatalf("SetBest() failed: %v", err)
	}

	if err := store.ClearGame("snake"); err != nil {
		t.Fatalf("ClearGame() failed: %v", err)
	}

	if _, ok, _ := store.Best(ledger.Key("snake", "default")); ok {
		t.Error("snake best survived ClearGame")
	}
	if _, ok, _ := store.Best(ledger.Key("simon-says", "normal")); !ok {
		t.Error("simon-says best was cleared")
	}

	entries, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].GameID != "simon-says" {
		t.Errorf("Unexpected sessions after clear: %+v", entries)
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	sessions := []core.Summary{
		summary("a", "reaction-time", "default", 0, 250, true),
		summary("b", "snake", "default", 4, 4, true),
		summary("c", "reaction-time", "default", 0, 0, false),
	}
	for _, sum := range sessions {
		if err := store.SaveSession(sum); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	entries, err := store.RecentSessions("reaction-time", 0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 reaction sessions, got %d", len(entries))
	}
	if entries[0].SessionID != "c" || entries[0].Recorded {
		t.Errorf("Expected the unrecorded false start first, got %+v", entries[0])
	}

	all, err := store.RecentSessions("", 2)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(all) != 2 || all[0].SessionID != "c" || all[1].SessionID != "b" {
		t.Errorf("Unexpected latest sessions: %+v", all)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{10, 30, 20} {
		id := string(rune('a' + i))
		if err := store.SaveSession(summary(id, "whack-a-mole", "default", score, float64(score), true)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("whack-a-mole")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 30 || stats.TotalScore != 60 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}

	empty, err := store.GetGameStats("aim-trainer")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["whack-a-mole"] == nil {
		t.Errorf("Unexpected all-games stats: %+v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
