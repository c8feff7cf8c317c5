package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// maxEpisodePages bounds pagination when hunting for unplayed episodes.
const maxEpisodePages = 5

// SavedShows returns the user's saved podcast shows.
func (c *Client) SavedShows(ctx context.Context) ([]Show, error) {
	var shows []Show

	page, err := c.api.CurrentUsersShows(ctx, spotify.Limit(pageLimit))
	if err != nil {
		return nil, fmt.Errorf("fetching saved shows: %w", err)
	}

	for {
		for _, saved := range page.Shows {
			shows = append(shows, Show{
				ID:            saved.ID.String(),
				Name:          saved.Name,
				Publisher:     saved.Publisher,
				CoverImage:    firstImage(saved.Images),
				TotalEpisodes: int(saved.Episodes.Total),
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

	return shows, nil
}

// ShowEpisodes returns a show's episodes, newest first, carrying
// played-position data. Pagination is bounded; callers typically only need
// the most recent unplayed episodes.
func (c *Client) ShowEpisodes(ctx context.Context, showID string) ([]Episode, error) {
	var episodes []Episode

	page, err := c.api.GetShowEpisodes(ctx, showID, spotify.Limit(pageLimit), spotify.Market("from_token"))
	if err != nil {
		return nil, fmt.Errorf("fetching show episodes: %w", err)
	}

	for pages := 0; pages < maxEpisodePages; pages++ {
		for _, ep := range page.Episodes {
			episodes = append(episodes, Episode{
				ID:          ep.ID.String(),
				Name:        ep.Name,
				URI:         string(ep.URI),
				DurationMS:  int(ep.Duration_ms),
				ReleaseDate: ep.ReleaseDate,
				FullyPlayed: ep.ResumePoint.FullyPlayed,
				ShowID:      showID,
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

	return episodes, nil
}
