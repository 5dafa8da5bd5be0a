package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"pomoflow/internal/core/model"
)

// SessionStore persists completed pomodoro phases in SQLite. The engine is
// the sole writer; statistics features only read.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore opens (creating if necessary) the session database at
// the given path.
func NewSessionStore(dbPath string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}

	store := &SessionStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SessionStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pomodoro_sessions (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL CHECK (phase IN ('work', 'short_break', 'long_break')),
			duration_seconds INTEGER NOT NULL CHECK (duration_seconds > 0),
			completed_at DATETIME NOT NULL,
			cycle_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_completed_at
			ON pomodoro_sessions(completed_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate session schema: %w", err)
	}
	return nil
}

// Append inserts one completed-phase record. An ID is assigned when the
// record does not carry one.
func (s *SessionStore) Append(record model.SessionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO pomodoro_sessions (id, phase, duration_seconds, completed_at, cycle_count)
		VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		string(record.Phase),
		record.DurationSeconds,
		record.CompletedAt.UTC(),
		record.CycleCount,
	)
	if err != nil {
		return fmt.Errorf("insert session record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SessionStore) Recent(limit int) ([]model.SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, phase, duration_seconds, completed_at, cycle_count
		FROM pomodoro_sessions
		ORDER BY completed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query session records: %w", err)
	}
	defer rows.Close()

	var records []model.SessionRecord
	for rows.Next() {
		var record model.SessionRecord
		var phase string
		var completedAt time.Time
		if err := rows.Scan(&record.ID, &phase, &record.DurationSeconds, &completedAt, &record.CycleCount); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		record.Phase = model.Phase(phase)
		record.CompletedAt = completedAt
		records = append(records, record)
	}
	return records, rows.Err()
}

// Stats aggregates all recorded sessions. Focus time counts completed
// work phases only.
func (s *SessionStore) Stats() (model.Stats, error) {
	var stats model.Stats
	row := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN phase = 'work' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN phase = 'short_break' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN phase = 'long_break' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN phase = 'work' THEN duration_seconds ELSE 0 END), 0)
		FROM pomodoro_sessions`)
	err := row.Scan(
		&stats.TotalSessions,
		&stats.WorkSessions,
		&stats.ShortBreakSessions,
		&stats.LongBreakSessions,
		&stats.TotalFocusSeconds,
	)
	if err != nil {
		return model.Stats{}, fmt.Errorf("query session stats: %w", err)
	}
	return stats, nil
}

// Close releases the underlying database handle.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
