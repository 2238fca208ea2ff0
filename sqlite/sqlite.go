// Package sqlite provides SQLite-based storage for siteask collections.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing with
	// "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL journaling is much faster for the bulk inserts an indexing run
	// produces. Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Cascading deletes from collections to chunks and images depend on
	// foreign key enforcement.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			embedding_model TEXT NOT NULL,
			page_count INTEGER NOT NULL DEFAULT 0,
			content_size INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			collection_name TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
			source_page_url TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			text TEXT NOT NULL,
			embedding BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_chunks_collection_name ON chunks(collection_name);
		CREATE INDEX IF NOT EXISTS idx_chunks_source_page_url ON chunks(collection_name, source_page_url);

		CREATE TABLE IF NOT EXISTS images (
			id TEXT PRIMARY KEY,
			collection_name TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
			url TEXT NOT NULL,
			alt TEXT NOT NULL DEFAULT '',
			width INTEGER,
			height INTEGER,
			file_size INTEGER,
			source_page_url TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			indexed_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_images_collection_name ON images(collection_name);
		CREATE INDEX IF NOT EXISTS idx_images_category ON images(collection_name, category);
	`

	_, err := db.db.Exec(schema)
	return err
}
