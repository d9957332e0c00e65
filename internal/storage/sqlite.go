// Package storage provides SQLite-based persistence for the runner: the
// local high score and the per-player leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection.
// It is safe for concurrent use; database/sql pools connections.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Score is one leaderboard row: a player's best run.
type Score struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
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

	// Every pooled connection waits on locks: SSH sessions and the API
	// write concurrently.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, created_at ASC);
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

// LoadHighScore returns the value stored under key, or 0 if none.
func (s *Store) LoadHighScore(ctx context.Context, key string) (int, error) {
	var value int
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load high score: %w", err)
	}
	return value, nil
}

// SaveHighScore stores value under key, replacing any previous value.
func (s *Store) SaveHighScore(ctx context.Context, key string, value int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// SubmitScore records score for user, keeping only the user's best.
// The timestamp moves only when the score improves. Returns the row as
// stored after the call.
func (s *Store) SubmitScore(ctx context.Context, user string, score int) (Score, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Score{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := s.now().UTC().Format(timeLayout)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scores (player, score, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(player) DO UPDATE SET
		   score = excluded.score,
		   created_at = excluded.created_at
		 WHERE excluded.score > scores.score`,
		user, score, now,
	)
	if err != nil {
		return Score{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	row := tx.QueryRowContext(ctx,
		"SELECT id, player, score, created_at FROM scores WHERE player = ?", user)
	saved, err := scanScore(row)
	if err != nil {
		return Score{}, err
	}

	if err := tx.Commit(); err != nil {
		return Score{}, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return saved, nil
}

// ListScores returns the leaderboard ordered by score descending, then by
// the earliest timestamp. A limit <= 0 returns every row.
func (s *Store) ListScores(ctx context.Context, limit int) ([]Score, error) {
	query := `SELECT id, player, score, created_at
		 FROM scores
		 ORDER BY score DESC, created_at ASC, id ASC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	entries := []Score{}
	for rows.Next() {
		e, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes every leaderboard row.
func (s *Store) ClearScores(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScore(row scanner) (Score, error) {
	var e Score
	var createdAt any
	if err := row.Scan(&e.ID, &e.User, &e.Score, &createdAt); err != nil {
		return Score{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.Timestamp = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
