// Package cache stores compiled shader permutations in SQLite, keyed by
// graph fingerprint and permutation name.
//
// Caching sits outside the compile path: a pass never consults the cache
// itself. Callers fingerprint the graph, look up the cache, and compile
// only on a miss.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one cached compilation artifact.
type Entry struct {
	// Source is the generated shader source.
	Source string

	// Defines is the serialized preprocessor environment.
	Defines string

	// CreatedAt is when the entry was stored.
	CreatedAt time.Time
}

// Cache manages the SQLite connection and schema.
type Cache struct {
	db *sql.DB
}

// Open initializes the cache database, creating the schema if needed.
// WAL mode is enabled so concurrent compile workers can read while one
// writes.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: enable WAL: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: schema migration: %w", err)
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// migrate creates the artifacts table if it does not exist.
func (c *Cache) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS artifacts (
		fingerprint TEXT NOT NULL,
		permutation TEXT NOT NULL,
		source TEXT NOT NULL,
		defines TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (fingerprint, permutation)
	);
	`
	_, err := c.db.Exec(query)
	return err
}

// Get looks up a cached artifact. The second return value reports whether
// the entry was found.
func (c *Cache) Get(ctx context.Context, fingerprint, permutation string) (*Entry, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT source, defines, created_at FROM artifacts WHERE fingerprint = ? AND permutation = ?`,
		fingerprint, permutation)

	var e Entry
	if err := row.Scan(&e.Source, &e.Defines, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}
	return &e, true, nil
}

// Put stores an artifact, replacing any previous entry for the same key.
func (c *Cache) Put(ctx context.Context, fingerprint, permutation string, e *Entry) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO artifacts (fingerprint, permutation, source, defines) VALUES (?, ?, ?, ?)`,
		fingerprint, permutation, e.Source, e.Defines)
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// Purge removes every cached artifact for a fingerprint, typically after
// a graph edit invalidates its permutations.
func (c *Cache) Purge(ctx context.Context, fingerprint string) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM artifacts WHERE fingerprint = ?`, fingerprint)
	if err != nil {
		return 0, fmt.Errorf("cache: purge: %w", err)
	}
	return res.RowsAffected()
}
