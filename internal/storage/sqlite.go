// Package storage provides SQLite-based persistence for best scores and
// session history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Ensure Store can back the ledger and the session history.
var (
	_ ledger.Store        = (*Store)(nil)
	_ engine.HistorySaver = (*Store)(nil)
)

// BestEntry is one persisted best value.
type BestEntry struct {
	Key       string
	Value     float64
	UpdatedAt time.Time
}

// SessionEntry is one finished session.
type SessionEntry struct {
	ID        int64
	SessionID string
	GameID    string
	Mode      string
	Score     int
	Failures  int
	Result    float64
	Recorded  bool
	Reason    string
	Duration  time.Duration
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			key TEXT PRIMARY KEY,
			value REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			result REAL NOT NULL DEFAULT 0,
			recorded INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_mode ON sessions(game_id, mode, result);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Best returns the stored best for key. A missing key reports ok == false.
func (s *Store) Best(key string) (float64, bool, error) {
	var value float64
	err := s.db.QueryRow("SELECT value FROM best_scores WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best %s: %w", key, err)
	}
	return value, true, nil
}

// SetBest stores value as the best for key, replacing any previous value.
func (s *Store) SetBest(key string, value float64) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best %s: %w", key, err)
	}
	return nil
}

// AllBest returns every stored best ordered by key.
func (s *Store) AllBest() ([]BestEntry, error) {
	rows, err := s.db.Query("SELECT key, value, updated_at FROM best_scores ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bests: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.Key, &e.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SaveSession appends a finished session to the history.
func (s *Store) SaveSession(sum core.Summary) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, game_id, mode, score, failures, result, recorded, reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SessionID,
		sum.Game,
		sum.Mode,
		sum.Score,
		sum.Failures,
		sum.Result,
		sum.Recorded,
		string(sum.Reason),
		sum.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// TopSessions retrieves the best recorded sessions of a game, ordered by
// result according to dir. An empty mode matches every mode.
func (s *Store) TopSessions(gameID, mode string, dir ledger.Direction, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	order := "DESC"
	if dir == ledger.LowerIsBetter {
		order = "ASC"
	}

	query := `SELECT ` + sessionColumns + `
		 FROM sessions
		 WHERE game_id = ? AND recorded = 1 AND (? = '' OR mode = ?)
		 ORDER BY result ` + order + `, id ASC
		 LIMIT ?`

	return s.querySessions(query, gameID, mode, mode, limit)
}

// RecentSessions retrieves the latest sessions of a game, recorded or not.
// An empty gameID matches every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		gameID, gameID, limit,
	)
}

// ClearGame deletes the history and the bests of a game.
func (s *Store) ClearGame(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	prefix := strings.NewReplacer("%", `\%`, "_", `\_`).Replace(ledger.Key(gameID, ""))
	if _, err := tx.Exec(`DELETE FROM best_scores WHERE key LIKE ? ESCAPE '\'`, prefix+"%"); err != nil {
		return fmt.Errorf("storage: cannot clear bests: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	// Get count, high, avg, total
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM sessions WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM sessions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

const sessionColumns = `id, session_id, game_id, mode, score, failures, result, recorded, reason, duration_ms, created_at`

func (s *Store) querySessions(query string, args ...any) ([]SessionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.GameID,
			&e.Mode,
			&e.Score,
			&e.Failures,
			&e.Result,
			&e.Recorded,
			&e.Reason,
			&durationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
