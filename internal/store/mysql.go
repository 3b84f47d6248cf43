package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore implements Store using MySQL. Same logical layout as the SQLite
// backend so the two are interchangeable behind the Store interface.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore connects to MySQL using the given DSN.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("[MySQLStore] Initialized")
	return &MySQLStore{db: db}, nil
}

func createMySQLTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		tbl VARCHAR(64) NOT NULL,
		doc_key VARCHAR(128) NOT NULL,
		doc_value JSON NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (tbl, doc_key)
	)`
	_, err := db.Exec(query)
	return err
}

// Get retrieves the document at (table, key).
func (s *MySQLStore) Get(ctx context.Context, table, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc_value FROM documents WHERE tbl = ? AND doc_key = ?`,
		table, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", table, key, err)
	}
	return value, nil
}

// Set upserts the document at (table, key).
func (s *MySQLStore) Set(ctx context.Context, table, key string, value []byte) error {
	query := `
		INSERT INTO documents (tbl, doc_key, doc_value)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE doc_value = VALUES(doc_value)`

	if _, err := s.db.ExecContext(ctx, query, table, key, value); err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", table, key, err)
	}
	return nil
}

// Delete removes the document at (table, key).
func (s *MySQLStore) Delete(ctx context.Context, table, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE tbl = ? AND doc_key = ?`, table, key); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", table, key, err)
	}
	return nil
}

// List returns every document in the table in key order.
func (s *MySQLStore) List(ctx context.Context, table string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_key, doc_value FROM documents WHERE tbl = ? ORDER BY doc_key`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list table %s: %w", table, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table %s: %w", table, err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Ensure MySQLStore implements Store
var _ Store = (*MySQLStore)(nil)
