package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// SearchTrack searches for the best-matching track. Searches are paced by
// the client's rate limiter so generation pipelines can't burst past the
// provider's limits. Returns ErrNoMatch when nothing is found.
func (c *Client) SearchTrack(ctx context.Context, query string) (*Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return nil, ErrNoMatch
	}

	track := convertFullTrack(&result.Tracks.Tracks[0])
	return &track, nil
}

// SearchSong searches by title and artist, returning a pipeline song.
func (c *Client) SearchSong(ctx context.Context, title, artist string) (*Song, error) {
	track, err := c.SearchTrack(ctx, title+" "+artist)
	if err != nil {
		return nil, err
	}
	return &Song{
		ID:     track.ID,
		Title:  track.Title,
		Artist: track.Artist,
		URI:    track.URI,
	}, nil
}
