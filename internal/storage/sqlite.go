// Package storage persists finished sessions in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Mode tells interactive sessions from headless simulations.
type Mode string

const (
	ModePlay Mode = "play"
	ModeSim  Mode = "sim"
)

// Session is one finished run.
type Session struct {
	ID        int64
	Mode      Mode
	Score     int64
	Frames    uint64
	Duration  time.Duration
	Seed      uint64
	CreatedAt time.Time
}

// DefaultPath returns ~/.drop/scores.db.
func DefaultPath() string {
	return filepath.Join("~", ".drop", "scores.db")
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	if dbPath != ":memory:" {
		if dbPath[0] == '~' {
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
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// in-memory databases are per connection
	db.SetMaxOpenConns(1)

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(mode, score DESC);
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

// SaveSession records a finished session and returns its ID.
func (s *Store) SaveSession(session Session) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (mode, score, frames, duration_ms, seed) VALUES (?, ?, ?, ?, ?)",
		string(session.Mode), session.Score, int64(session.Frames), session.Duration.Milliseconds(), int64(session.Seed),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopSessions retrieves the best sessions of a mode, highest score first. Equal scores
// keep insertion order.
func (s *Store) TopSessions(mode Mode, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, frames, duration_ms, seed, created_at
		 FROM sessions
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			session    Session
			modeText   string
			frames     int64
			durationMS int64
			seed       int64
			createdAt  any
		)
		if err := rows.Scan(&session.ID, &modeText, &session.Score, &frames, &durationMS, &seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		session.Mode = Mode(modeText)
		session.Frames = uint64(frames)
		session.Duration = time.Duration(durationMS) * time.Millisecond
		session.Seed = uint64(seed)

		switch v := createdAt.(type) {
		case time.Time:
			session.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				session.CreatedAt = parsed
			}
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// HighScore returns the best score of a mode, or 0 if none exist.
func (s *Store) HighScore(mode Mode) (int64, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM sessions WHERE mode = ?", string(mode)).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return score.Int64, nil
}

// ClearSessions deletes every session of a mode.
func (s *Store) ClearSessions(mode Mode) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE mode = ?", string(mode)); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
