// Package storage provides the SQLite run journal: one row per game run and
// one row per state transition. The journal is an audit trail for the
// history command; it is never used to restore a game.
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

	"github.com/vovakirdan/chimera/internal/config"
	"github.com/vovakirdan/chimera/internal/core"
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded game run.
type Run struct {
	ID          string
	StoryID     string
	Origin      string
	StartedAt   time.Time
	EndedAt     time.Time // Zero while the run is open
	EndReason   string
	Transitions int
}

// TransitionEntry is one recorded state change.
type TransitionEntry struct {
	RunID string
	Seq   int
	From  core.GameState
	To    core.GameState
	At    time.Time
}

// Stats summarizes the journal.
type Stats struct {
	Runs        int
	NewGames    int
	Transitions int
	LastPlayed  time.Time
}

const timeLayout = "2006-01-02 15:04:05.000"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite allows one writer; concurrent runs share this connection.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

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
			id TEXT PRIMARY KEY,
			story_id TEXT NOT NULL,
			origin TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			end_reason TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS transitions (
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			from_state TEXT NOT NULL,
			to_state TEXT NOT NULL,
			at TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
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

// StartRun opens a new run and returns its ID.
func (s *Store) StartRun(storyID, origin string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, story_id, origin, started_at) VALUES (?, ?, ?, ?)",
		id, storyID, origin, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with the given reason ("quit", "input closed", "error").
func (s *Store) FinishRun(runID, reason string) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ended_at = ?, end_reason = ? WHERE id = ?",
		s.now().UTC().Format(timeLayout), reason, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown run %q", runID)
	}
	return nil
}

// AppendTransition records the next transition of a run.
func (s *Store) AppendTransition(runID string, from, to core.GameState, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO transitions (run_id, seq, from_state, to_state, at)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM transitions WHERE run_id = ?), ?, ?, ?)`,
		runID, runID, from.String(), to.String(), at.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record transition: %w", err)
	}
	return nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.story_id, r.origin, r.started_at, r.ended_at, r.end_reason,
		        (SELECT COUNT(*) FROM transitions t WHERE t.run_id = r.id)
		 FROM runs r
		 ORDER BY r.started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var endedAt, endReason sql.NullString
		if err := rows.Scan(&r.ID, &r.StoryID, &r.Origin, &startedAt, &endedAt, &endReason, &r.Transitions); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		if endedAt.Valid {
			r.EndedAt = parseTime(endedAt.String)
		}
		if endReason.Valid {
			r.EndReason = endReason.String
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunTransitions retrieves a run's transitions in order.
func (s *Store) RunTransitions(runID string) ([]TransitionEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, seq, from_state, to_state, at
		 FROM transitions
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query transitions: %w", err)
	}
	defer rows.Close()

	var entries []TransitionEntry
	for rows.Next() {
		var e TransitionEntry
		var from, to, at string
		if err := rows.Scan(&e.RunID, &e.Seq, &from, &to, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if e.From, err = core.ParseGameState(from); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if e.To, err = core.ParseGameState(to); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		e.At = parseTime(at)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// GetStats retrieves aggregate journal statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed sql.NullString
	err := s.db.QueryRow(`SELECT COUNT(*), MAX(started_at) FROM runs`).Scan(&stats.Runs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN to_state = ? THEN 1 ELSE 0 END), 0) FROM transitions`,
		core.StateNewGame.String(),
	).Scan(&stats.Transitions, &stats.NewGames)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get transition stats: %w", err)
	}

	return stats, nil
}

func parseTime(v string) time.Time {
	if parsed, err := time.Parse(timeLayout, v); err == nil {
		return parsed
	}
	return time.Time{}
}
