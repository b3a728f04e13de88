// Package db provides PostgreSQL storage for collected videos, extracted
// recipes and skipped videos.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/recipe-crawler/internal/retry"
)

// pingPolicy covers a server that is still starting (e.g. docker compose up).
var pingPolicy = retry.Exponential(4, 500*time.Millisecond, 5*time.Second, nil)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := retry.Do(ctx, pingPolicy, pool.Ping); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		video_id    VARCHAR(255) PRIMARY KEY,
		data        JSONB NOT NULL,
		dish_name   VARCHAR(255),
		category    VARCHAR(255),
		ingredients JSONB,
		recipe      JSONB,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS skipped_videos (
		video_id   VARCHAR(255) PRIMARY KEY,
		reason     TEXT,
		url        VARCHAR(255),
		skipped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_category ON recipes(category)`,
	`CREATE INDEX IF NOT EXISTS idx_skipped_videos_skipped_at ON skipped_videos(skipped_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
