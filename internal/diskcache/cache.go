// Package diskcache persists raw TMDB responses in SQLite so metadata survives restarts.
package diskcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmunix/marquee/internal/migrations"

	_ "modernc.org/sqlite"
)

// Cache provides SQLite-backed caching for TMDB responses.
type Cache struct {
	db  *sql.DB
	own bool
}

// New wraps an existing database. The schema must already be applied.
func New(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// Open opens (creating if needed) the cache database at path and applies the schema.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db, own: true}, nil
}

// Migrate applies the cache schema. Every migration is idempotent.
func Migrate(db *sql.DB) error {
	migs, err := migrations.All()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	for _, m := range migs {
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migrate cache (%s): %w", m.Name, err)
		}
	}
	return nil
}

// Get retrieves a cached value by key.
// Returns nil, false if not found or expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var value string
	var expiresAt time.Time

	err := c.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM tmdb_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if err != nil || !time.Now().Before(expiresAt) {
		return nil, false
	}

	return []byte(value), true
}

// Set stores a value with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO tmdb_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM tmdb_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM tmdb_cache"); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Prune removes all expired entries.
// Returns the number of entries removed.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	result, err := c.db.ExecContext(ctx,
		"DELETE FROM tmdb_cache WHERE expires_at <= ?", time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the database if the cache opened it.
func (c *Cache) Close() error {
	if !c.own {
		return nil
	}
	return c.db.Close()
}
