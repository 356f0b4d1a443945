// Package storage provides SQLite-based persistence for finished rallies.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LocalPlayer is recorded for rallies played outside an SSH session.
const LocalPlayer = "local"

// sqliteTimeLayout is how CURRENT_TIMESTAMP comes back when the driver
// hands us a string.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for rally persistence.
type Store struct {
	db *sql.DB
}

// Rally is one finished rally: the ball was served and eventually missed.
type Rally struct {
	ID        int64
	Variant   string        // Registry ID, e.g. "pong" or "pong_long"
	Returns   int           // Paddle returns before the miss
	Duration  time.Duration // Unpaused play time
	Player    string
	CreatedAt time.Time
}

// VariantStats aggregates all rallies of one variant.
type VariantStats struct {
	Variant     string
	Rallies     int
	BestReturns int
	AvgReturns  float64
	TotalPlay   time.Duration
	LastPlayed  time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rallies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			returns INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rallies_variant ON rallies(variant);
		CREATE INDEX IF NOT EXISTS idx_rallies_top ON rallies(variant, returns DESC);
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

// SaveRally records a finished rally and returns its row ID.
// An empty player is stored as LocalPlayer.
func (s *Store) SaveRally(r Rally) (int64, error) {
	if r.Variant == "" {
		return 0, errors.New("storage: rally has no variant")
	}
	if r.Player == "" {
		r.Player = LocalPlayer
	}

	result, err := s.db.Exec(
		"INSERT INTO rallies (variant, returns, duration_ms, player) VALUES (?, ?, ?, ?)",
		r.Variant, r.Returns, r.Duration.Milliseconds(), r.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save rally: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRallies retrieves the best N rallies for a variant, most returns first.
// Ties go to the shorter rally.
func (s *Store) TopRallies(variant string, limit int) ([]Rally, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, returns, duration_ms, player, created_at
		 FROM rallies
		 WHERE variant = ?
		 ORDER BY returns DESC, duration_ms ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rallies: %w", err)
	}
	defer rows.Close()

	var rallies []Rally
	for rows.Next() {
		var r Rally
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Returns, &durationMS, &r.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		rallies = append(rallies, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rallies, nil
}

// BestReturns returns the most returns ever made in a variant.
// Returns 0 if no rallies exist.
func (s *Store) BestReturns(variant string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(returns) FROM rallies WHERE variant = ?",
		variant,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best rally: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return int(best.Int64), nil
}

// ClearRallies deletes all rallies of a variant.
func (s *Store) ClearRallies(variant string) error {
	_, err := s.db.Exec("DELETE FROM rallies WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rallies: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a variant.
// A variant with no rallies yields zero stats, not an error.
func (s *Store) Stats(variant string) (VariantStats, error) {
	stats := VariantStats{Variant: variant}

	var totalMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(returns), 0), COALESCE(AVG(returns), 0),
		        COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM rallies WHERE variant = ?`,
		variant,
	).Scan(&stats.Rallies, &stats.BestReturns, &stats.AvgReturns, &totalMS, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.TotalPlay = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
