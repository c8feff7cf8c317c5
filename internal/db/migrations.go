package db

import (
	"context"
	"fmt"
)

// schema contains the table definitions, applied idempotently at startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		spotify_id TEXT UNIQUE,
		email TEXT UNIQUE,
		password_hash TEXT,
		display_name TEXT NOT NULL DEFAULT '',
		access_token TEXT,
		refresh_token TEXT,
		token_expiry TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS gym_settings (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		source_playlist_ids TEXT[] NOT NULL DEFAULT '{}',
		last_playlist_id TEXT,
		auto_refresh BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS search_cache (
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		uri TEXT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (title, artist)
	)`,
}

// Migrate applies the schema. Safe to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
