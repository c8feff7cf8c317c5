package generate

import (
	"context"
	"errors"
	"fmt"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/kesslermatics/vibeswipe/internal/gemini"
	"github.com/kesslermatics/vibeswipe/internal/profile"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// minRoastTracks is the smallest listening history a roast can work with.
const minRoastTracks = 5

// RoastResult is the derived listening profile plus the model's roast.
type RoastResult struct {
	Persona      string                `json:"persona"`
	Roast        string                `json:"roast"`
	AvgFeatures  map[string]float64    `json:"audio_features"`
	TopGenres    []string              `json:"top_genres"`
	TopArtists   []string              `json:"top_artists"`
	TrackCount   int                   `json:"track_count"`
	MoodClusters []profile.MoodCluster `json:"mood_clusters,omitempty"`
}

// VibeRoast builds a sarcastic profile of the user's long-term listening:
// top tracks and artists fetched in parallel, audio features averaged and
// clustered, then handed to the model for a persona and roast.
func (s *Service) VibeRoast(ctx context.Context, client *spotify.Client) (*RoastResult, error) {
	var (
		topSongs   []spotify.Song
		topArtists []spotify.Artist
		songsErr   error
		artistsErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		topArtists, artistsErr = client.TopArtists(ctx, spotifyapi.LongTermRange, 50)
	}()
	topSongs, songsErr = client.TopSongs(ctx, spotifyapi.LongTermRange, 50)
	<-done

	if songsErr != nil {
		return nil, fmt.Errorf("fetching top tracks: %w", songsErr)
	}
	if artistsErr != nil {
		return nil, fmt.Errorf("fetching top artists: %w", artistsErr)
	}
	if len(topSongs) < minRoastTracks {
		return nil, fmt.Errorf("%w: need at least %d top tracks, have %d", ErrNotEnoughTracks, minRoastTracks, len(topSongs))
	}
	s.log.Info("roast: fetched profile", "tracks", len(topSongs), "artists", len(topArtists))

	trackIDs := make([]string, len(topSongs))
	for i, t := range topSongs {
		trackIDs[i] = t.ID
	}
	features, err := client.FetchAudioFeatures(ctx, trackIDs)
	if err != nil {
		if !errors.Is(err, spotify.ErrRestricted) {
			return nil, fmt.Errorf("fetching audio features: %w", err)
		}
		// Restricted endpoint: carry on with neutral defaults.
		s.log.Warn("roast: audio features restricted, using defaults")
		features = nil
	}

	avg := profile.AverageFeatures(features)
	moods := profile.MoodClusters(features, 0)

	trackNames := make([]string, len(topSongs))
	for i, t := range topSongs {
		trackNames[i] = t.Title + " - " + t.Artist
	}
	artistNames := make([]string, len(topArtists))
	for i, a := range topArtists {
		artistNames[i] = a.Name
	}
	genres := profile.TopGenres(topArtists, 10)

	roast, err := s.llm.Roast(ctx, gemini.RoastInput{
		TopTracks:   trackNames,
		TopArtists:  artistNames,
		TopGenres:   genres,
		AvgFeatures: avg,
	})
	if err != nil {
		return nil, fmt.Errorf("generating roast: %w", err)
	}
	s.log.Info("roast: done", "persona", roast.Persona)

	if len(artistNames) > 10 {
		artistNames = artistNames[:10]
	}
	return &RoastResult{
		Persona:      roast.Persona,
		Roast:        roast.Roast,
		AvgFeatures:  avg,
		TopGenres:    genres,
		TopArtists:   artistNames,
		TrackCount:   len(topSongs),
		MoodClusters: moods,
	}, nil
}
