package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

const pageLimit = 50

// DeckFromLibrary fetches the user's saved tracks as a swipe deck.
// Tracks without a playable preview are excluded; provider order is kept.
func (c *Client) DeckFromLibrary(ctx context.Context) ([]Track, error) {
	var deck []Track

	page, err := c.api.CurrentUsersTracks(ctx, spotify.Limit(pageLimit))
	if err != nil {
		return nil, fmt.Errorf("fetching saved tracks: %w", err)
	}

	for {
		deck = append(deck, deckFromSaved(page.Tracks)...)

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	return deck, nil
}

// deckFromSaved converts saved tracks to deck entries, dropping tracks
// without a playable preview.
func deckFromSaved(saved []spotify.SavedTrack) []Track {
	var deck []Track
	for i := range saved {
		ft := &saved[i].FullTrack
		if ft.PreviewURL == "" {
			continue
		}
		deck = append(deck, convertFullTrack(ft))
	}
	return deck
}

// DeckFromPlaylist fetches a playlist's tracks as a swipe deck.
// Tracks without a playable preview are excluded; playlist order is kept.
func (c *Client) DeckFromPlaylist(ctx context.Context, playlistID string) ([]Track, error) {
	var deck []Track

	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(pageLimit))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist items: %w", err)
	}

	for {
		deck = append(deck, deckFromPlaylistItems(page.Items)...)

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	return deck, nil
}

// deckFromPlaylistItems converts playlist items to deck entries. Non-track
// items and tracks without a playable preview are dropped.
func deckFromPlaylistItems(items []spotify.PlaylistItem) []Track {
	var deck []Track
	for i := range items {
		ft := items[i].Track.Track
		if ft == nil || ft.PreviewURL == "" {
			continue
		}
		deck = append(deck, convertFullTrack(ft))
	}
	return deck
}

// PlaylistSongs fetches every track of a playlist as pipeline songs.
func (c *Client) PlaylistSongs(ctx context.Context, playlistID string) ([]Song, error) {
	var songs []Song

	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(100))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist items: %w", err)
	}

	for {
		for i := range page.Items {
			ft := page.Items[i].Track.Track
			if ft == nil || ft.Name == "" {
				continue
			}
			songs = append(songs, convertSong(ft))
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	return songs, nil
}

// TopSongs fetches the user's top tracks for the given time range.
func (c *Client) TopSongs(ctx context.Context, timeRange spotify.Range, limit int) ([]Song, error) {
	page, err := c.api.CurrentUsersTopTracks(ctx, spotify.Timerange(timeRange), spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks: %w", err)
	}

	songs := make([]Song, 0, len(page.Tracks))
	for i := range page.Tracks {
		songs = append(songs, convertSong(&page.Tracks[i]))
	}
	return songs, nil
}

// TopArtists fetches the user's top artists for the given time range.
// Returns names and their genre lists.
func (c *Client) TopArtists(ctx context.Context, timeRange spotify.Range, limit int) ([]Artist, error) {
	page, err := c.api.CurrentUsersTopArtists(ctx, spotify.Timerange(timeRange), spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching top artists: %w", err)
	}

	artists := make([]Artist, 0, len(page.Artists))
	for _, a := range page.Artists {
		artists = append(artists, Artist{Name: a.Name, Genres: a.Genres})
	}
	return artists, nil
}

// Artist is a top-artist entry with its genre tags.
type Artist struct {
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

// SaveTracks adds tracks to the user's library. Saving an already-saved
// track is a provider-side no-op, so the call is idempotent.
func (c *Client) SaveTracks(ctx context.Context, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	ids := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotify.ID(id)
	}
	if err := c.api.AddTracksToLibrary(ctx, ids...); err != nil {
		return fmt.Errorf("saving tracks: %w", err)
	}
	return nil
}
