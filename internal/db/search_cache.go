package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchCacheTTL is the duration after which cached search results are stale.
const SearchCacheTTL = 30 * 24 * time.Hour

// SearchCacheRepository persists resolved provider searches so repeated
// generations don't re-query the provider for the same song.
type SearchCacheRepository struct {
	pool *pgxpool.Pool
}

// cacheKey normalizes a (title, artist) pair for lookup.
func cacheKey(title, artist string) (string, string) {
	return strings.ToLower(strings.TrimSpace(title)), strings.ToLower(strings.TrimSpace(artist))
}

// Get returns the cached track URI for a song, or ErrNotFound on a miss.
// Stale entries are treated as misses.
func (r *SearchCacheRepository) Get(ctx context.Context, title, artist string) (string, error) {
	normTitle, normArtist := cacheKey(title, artist)
	query := `
		SELECT uri, fetched_at
		FROM search_cache
		WHERE title = $1 AND artist = $2
	`
	var uri string
	var fetchedAt time.Time
	err := r.pool.QueryRow(ctx, query, normTitle, normArtist).Scan(&uri, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying search cache: %w", err)
	}
	if time.Since(fetchedAt) > SearchCacheTTL {
		return "", ErrNotFound
	}
	return uri, nil
}

// Put stores a resolved search result, replacing any previous entry.
func (r *SearchCacheRepository) Put(ctx context.Context, title, artist, uri string) error {
	normTitle, normArtist := cacheKey(title, artist)
	query := `
		INSERT INTO search_cache (title, artist, uri, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (title, artist) DO UPDATE SET
			uri = EXCLUDED.uri,
			fetched_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, normTitle, normArtist, uri)
	if err != nil {
		return fmt.Errorf("upserting search cache: %w", err)
	}
	return nil
}

// DeleteStale removes entries older than the cache TTL.
func (r *SearchCacheRepository) DeleteStale(ctx context.Context) (int64, error) {
	query := `DELETE FROM search_cache WHERE fetched_at < NOW() - make_interval(secs => $1)`
	result, err := r.pool.Exec(ctx, query, SearchCacheTTL.Seconds())
	if err != nil {
		return 0, fmt.Errorf("deleting stale search cache: %w", err)
	}
	return result.RowsAffected(), nil
}
