package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists expressions to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite expression store.
// The path should be a file path (e.g., "./filters.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS expressions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_expressions_name
		ON expressions(name)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(name, source string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO expressions (id, name, source, created_at)
		VALUES (?, ?, ?, ?)
	`, id, name, source, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save expression: %w", err)
	}
	return id, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(id string) (Saved, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Saved{}, ErrStoreClosed
	}

	return s.scanOne(s.db.QueryRow(`
		SELECT id, name, source, created_at FROM expressions
		WHERE id = ?
	`, id))
}

// LoadByName implements Store.
func (s *SQLiteStore) LoadByName(name string) (Saved, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Saved{}, ErrStoreClosed
	}

	return s.scanOne(s.db.QueryRow(`
		SELECT id, name, source, created_at FROM expressions
		WHERE name = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, name))
}

func (s *SQLiteStore) scanOne(row *sql.Row) (Saved, error) {
	var saved Saved
	var createdAt string
	err := row.Scan(&saved.ID, &saved.Name, &saved.Source, &createdAt)
	if err == sql.ErrNoRows {
		return Saved{}, ErrNotFound
	}
	if err != nil {
		return Saved{}, fmt.Errorf("load expression: %w", err)
	}
	saved.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return saved, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Saved, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, name, source, created_at FROM expressions
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list expressions: %w", err)
	}
	defer rows.Close()

	out := []Saved{}
	for rows.Next() {
		var saved Saved
		var createdAt string
		if err := rows.Scan(&saved.ID, &saved.Name, &saved.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expression: %w", err)
		}
		saved.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, saved)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expressions: %w", err)
	}

	return out, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM expressions WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("delete expression: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
