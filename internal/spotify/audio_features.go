package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// AudioFeatures are the per-track analysis values used by the listening
// profile. Values are 0..1 except Tempo (BPM).
type AudioFeatures struct {
	TrackID          string
	Danceability     float32
	Energy           float32
	Valence          float32
	Acousticness     float32
	Instrumentalness float32
	Speechiness      float32
	Tempo            float32
}

// FetchAudioFeatures retrieves audio features for the given track IDs,
// batching to the provider's limit of 100 per request. A restricted (403)
// response returns ErrRestricted so callers can degrade to defaults; tracks
// without available features are omitted from the result.
func (c *Client) FetchAudioFeatures(ctx context.Context, trackIDs []string) ([]AudioFeatures, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	ids := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotify.ID(id)
	}

	var all []AudioFeatures
	for i := 0; i < len(ids); i += maxItemsPerRequest {
		end := min(i+maxItemsPerRequest, len(ids))
		batch := ids[i:end]

		features, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			if isRestricted(err) {
				return nil, ErrRestricted
			}
			return nil, fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue // track has no analysis
			}
			all = append(all, AudioFeatures{
				TrackID:          f.ID.String(),
				Danceability:     f.Danceability,
				Energy:           f.Energy,
				Valence:          f.Valence,
				Acousticness:     f.Acousticness,
				Instrumentalness: f.Instrumentalness,
				Speechiness:      f.Speechiness,
				Tempo:            f.Tempo,
			})
		}
	}

	return all, nil
}
