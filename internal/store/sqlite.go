package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteStore implements Store using SQLite.
// Thread-safe with WAL mode for high-concurrency reads.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Open with WAL mode and other optimizations
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite connection pool settings
	db.SetMaxOpenConns(1) // SQLite only supports 1 writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteStore] Initialized with database: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		tbl TEXT NOT NULL,
		doc_key TEXT NOT NULL,
		doc_value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT (datetime('now')),
		PRIMARY KEY (tbl, doc_key)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_tbl ON documents(tbl);
	`
	_, err := db.Exec(query)
	return err
}

// Get retrieves the document at (table, key).
func (s *SQLiteStore) Get(ctx context.Context, table, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc_value FROM documents WHERE tbl = ? AND doc_key = ?`,
		table, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", table, key, err)
	}
	return []byte(value), nil
}

// Set upserts the document at (table, key).
func (s *SQLiteStore) Set(ctx context.Context, table, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO documents (tbl, doc_key, doc_value, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(tbl, doc_key) DO UPDATE SET
			doc_value = excluded.doc_value,
			updated_at = datetime('now')`

	if _, err := s.db.ExecContext(ctx, query, table, key, string(value)); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", table, key, err)
	}
	return nil
}

// Delete removes the document at (table, key).
func (s *SQLiteStore) Delete(ctx context.Context, table, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE tbl = ? AND doc_key = ?`, table, key); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", table, key, err)
	}
	return nil
}

// List returns every document in the table in key order.
func (s *SQLiteStore) List(ctx context.Context, table string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_key, doc_value FROM documents WHERE tbl = ? ORDER BY doc_key`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list table %s: %w", table, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		entries = append(entries, Entry{Key: key, Value: []byte(value)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table %s: %w", table, err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
