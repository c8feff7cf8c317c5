package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/zmb3/spotify/v2"
)

const maxItemsPerRequest = 100

const apiBaseURL = "https://api.spotify.com/v1"

// CreatedPlaylist describes a playlist created by a generation pipeline.
type CreatedPlaylist struct {
	ID   string
	Name string
	URL  string
}

// UserPlaylists returns summaries of the current user's playlists.
func (c *Client) UserPlaylists(ctx context.Context) ([]PlaylistSummary, error) {
	var summaries []PlaylistSummary

	page, err := c.api.CurrentUsersPlaylists(ctx, spotify.Limit(pageLimit))
	if err != nil {
		return nil, fmt.Errorf("fetching playlists: %w", err)
	}

	for {
		for _, p := range page.Playlists {
			summaries = append(summaries, PlaylistSummary{
				ID:         p.ID.String(),
				Name:       p.Name,
				TrackCount: int(p.Tracks.Total),
				CoverImage: firstImage(p.Images),
			})
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	return summaries, nil
}

// CreatePlaylist creates a private playlist for the current user.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (*CreatedPlaylist, error) {
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	playlist, err := c.api.CreatePlaylistForUser(ctx, user.ID, name, description, false, false)
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}

	return &CreatedPlaylist{
		ID:   playlist.ID.String(),
		Name: playlist.Name,
		URL:  playlist.ExternalURLs["spotify"],
	}, nil
}

// AddItemsToPlaylist appends items to a playlist in order, batching to the
// provider's limit of 100 per request. It accepts full URIs rather than
// track IDs because a daily drive interleaves episode and track URIs, and
// the SDK's track-only method cannot keep that order.
func (c *Client) AddItemsToPlaylist(ctx context.Context, playlistID string, uris []string) error {
	for i := 0; i < len(uris); i += maxItemsPerRequest {
		end := min(i+maxItemsPerRequest, len(uris))
		batch := uris[i:end]

		if err := c.addItemsBatch(ctx, playlistID, batch); err != nil {
			return fmt.Errorf("adding items (batch %d-%d): %w", i+1, end, err)
		}
	}
	return nil
}

// addItemsBatch posts one batch of URIs to the playlist items endpoint.
func (c *Client) addItemsBatch(ctx context.Context, playlistID string, uris []string) error {
	payload, err := json.Marshal(map[string]any{"uris": uris})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/playlists/%s/tracks", apiBaseURL, playlistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// UnfollowPlaylist removes (unfollows) a playlist for the current user.
func (c *Client) UnfollowPlaylist(ctx context.Context, playlistID string) error {
	if err := c.api.UnfollowPlaylist(ctx, spotify.ID(playlistID)); err != nil {
		return fmt.Errorf("unfollowing playlist: %w", err)
	}
	return nil
}
