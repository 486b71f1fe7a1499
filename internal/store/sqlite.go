package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB is a Store backed by a single SQLite table.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the backing database and ensures the schema.
func Open(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS collections (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load reads and decodes the blob at key into dest.
func (d *DB) Load(ctx context.Context, key string, dest any) error {
	var raw string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE key = ?`, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// A corrupt blob behaves like an absent one.
		return ErrNotFound
	}
	return nil
}

// Save encodes value and writes it at key, replacing any previous blob.
func (d *DB) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob at key. Missing keys are not an error.
func (d *DB) Delete(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx,
		`DELETE FROM collections WHERE key = ?`, key,
	); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys with the given prefix.
func (d *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT key FROM collections WHERE key LIKE ? ORDER BY key`, prefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keys: %w", err)
	}
	return keys, nil
}
