// Package storage provides SQLite-based persistence for runs and replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when no run or replay has the requested ID.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is a single finished run.
type Run struct {
	ID        int64
	RunID     string
	LevelID   string
	Outcome   string // "completed" or "dead"
	Score     int
	Ticks     int
	Health    int
	Defeated  int
	CreatedAt time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID     string
	Runs        int
	Completions int
	Deaths      int
	HighScore   int
	AvgScore    float64
	BestTicks   int // 0 when the level was never completed
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			health INTEGER NOT NULL DEFAULT 0,
			defeated INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			run_id TEXT PRIMARY KEY REFERENCES runs(run_id) ON DELETE CASCADE,
			data BLOB NOT NULL
		);
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

// SaveRun records a finished run. A run ID is generated when r.RunID is
// empty. Returns the stored run ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, level_id, outcome, score, ticks, health, defeated)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Outcome, r.Score, r.Ticks, r.Health, r.Defeated,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.RunID, nil
}

// SaveReplay stores the encoded replay of a saved run.
func (s *Store) SaveReplay(runID string, data []byte) error {
	if _, err := s.Run(runID); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO replays (run_id, data) VALUES (?, ?)",
		runID, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// Run retrieves a run by its run ID.
func (s *Store) Run(runID string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, level_id, outcome, score, ticks, health, defeated, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// Replay retrieves the encoded replay of a run.
func (s *Store) Replay(runID string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM replays WHERE run_id = ?", runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no replay for %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return data, nil
}

// TopRuns retrieves the top N runs for the given level.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, outcome, score, ticks, health, defeated, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestTicks returns the fewest ticks any completed run of the level took.
// Returns 0 if the level was never completed.
func (s *Store) BestTicks(levelID string) (int, error) {
	var ticks sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(ticks) FROM runs WHERE level_id = ? AND outcome = 'completed'",
		levelID,
	).Scan(&ticks)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !ticks.Valid {
		return 0, nil
	}

	return int(ticks.Int64), nil
}

// ClearRuns deletes all runs and replays for the given level.
func (s *Store) ClearRuns(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM replays WHERE run_id IN (SELECT run_id FROM runs WHERE level_id = ?)",
		levelID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear replays: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'completed'), 0),
		        COALESCE(SUM(outcome = 'dead'), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'completed' THEN ticks END), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Completions, &stats.Deaths, &stats.HighScore,
		&stats.AvgScore, &stats.BestTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// PlayedLevels returns the IDs of every level with at least one run.
func (s *Store) PlayedLevels() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT level_id FROM runs ORDER BY level_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list levels: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	if err := sc.Scan(&r.ID, &r.RunID, &r.LevelID, &r.Outcome, &r.Score,
		&r.Ticks, &r.Health, &r.Defeated, &createdAt); err != nil {
		return Run{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
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
