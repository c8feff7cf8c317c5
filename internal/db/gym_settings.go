package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GymSettingsRepository handles gym mix settings operations.
type GymSettingsRepository struct {
	pool *pgxpool.Pool
}

// Get retrieves a user's gym settings.
func (r *GymSettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*GymSettings, error) {
	query := `
		SELECT user_id, source_playlist_ids, last_playlist_id, auto_refresh, updated_at
		FROM gym_settings
		WHERE user_id = $1
	`
	var settings GymSettings
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.SourcePlaylistIDs,
		&settings.LastPlaylistID,
		&settings.AutoRefresh,
		&settings.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying gym settings: %w", err)
	}
	return &settings, nil
}

// Upsert creates or updates a user's gym settings.
func (r *GymSettingsRepository) Upsert(ctx context.Context, settings *GymSettings) error {
	query := `
		INSERT INTO gym_settings (user_id, source_playlist_ids, last_playlist_id, auto_refresh, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			source_playlist_ids = EXCLUDED.source_playlist_ids,
			last_playlist_id = EXCLUDED.last_playlist_id,
			auto_refresh = EXCLUDED.auto_refresh,
			updated_at = NOW()
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		settings.UserID,
		settings.SourcePlaylistIDs,
		settings.LastPlaylistID,
		settings.AutoRefresh,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting gym settings: %w", err)
	}
	return nil
}

// SetAutoRefresh toggles the auto-refresh flag for a user.
func (r *GymSettingsRepository) SetAutoRefresh(ctx context.Context, userID uuid.UUID, enabled bool) error {
	query := `
		INSERT INTO gym_settings (user_id, source_playlist_ids, auto_refresh, updated_at)
		VALUES ($1, '{}', $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			auto_refresh = EXCLUDED.auto_refresh,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, userID, enabled)
	if err != nil {
		return fmt.Errorf("setting auto refresh: %w", err)
	}
	return nil
}

// ListAutoRefresh returns settings for every user with auto-refresh enabled.
func (r *GymSettingsRepository) ListAutoRefresh(ctx context.Context) ([]GymSettings, error) {
	query := `
		SELECT user_id, source_playlist_ids, last_playlist_id, auto_refresh, updated_at
		FROM gym_settings
		WHERE auto_refresh = TRUE
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing auto-refresh settings: %w", err)
	}
	defer rows.Close()

	var result []GymSettings
	for rows.Next() {
		var settings GymSettings
		if err := rows.Scan(
			&settings.UserID,
			&settings.SourcePlaylistIDs,
			&settings.LastPlaylistID,
			&settings.AutoRefresh,
			&settings.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning gym settings: %w", err)
		}
		result = append(result, settings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gym settings: %w", err)
	}
	return result, nil
}
