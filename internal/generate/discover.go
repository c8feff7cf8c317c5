package generate

import (
	"context"
	"fmt"

	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// DiscoveredTrack is a recommendation with its catalog resolution. When the
// search found no match the entry keeps the recommended title and artist
// with empty catalog fields.
type DiscoveredTrack struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	SpotifyURL string `json:"spotify_url,omitempty"`
	CoverImage string `json:"album_image,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	URI        string `json:"spotify_uri,omitempty"`
}

// DiscoverResult is the outcome of a prompt discovery run.
type DiscoverResult struct {
	MoodSummary string            `json:"mood_summary"`
	Tracks      []DiscoveredTrack `json:"songs"`
}

// Discover interprets a free-form mood prompt into song recommendations and
// resolves them against the catalog in parallel. contextSongs optionally
// seed the model with an existing playlist's style.
func (s *Service) Discover(ctx context.Context, client *spotify.Client, prompt string, contextSongs []string) (*DiscoverResult, error) {
	discovery, err := s.llm.Discover(ctx, prompt, contextSongs)
	if err != nil {
		return nil, fmt.Errorf("interpreting prompt: %w", err)
	}
	s.log.Info("discover: got recommendations", "songs", len(discovery.Songs))

	resolved := searchAll(ctx, client, discovery.Songs)

	tracks := make([]DiscoveredTrack, len(discovery.Songs))
	found := 0
	for i, song := range discovery.Songs {
		if t := resolved[i]; t != nil {
			tracks[i] = DiscoveredTrack{
				Title:      t.Title,
				Artist:     t.Artist,
				SpotifyURL: "https://open.spotify.com/track/" + t.ID,
				CoverImage: t.CoverImage,
				PreviewURL: t.PreviewURL,
				URI:        t.URI,
			}
			found++
			continue
		}
		tracks[i] = DiscoveredTrack{Title: song.Title, Artist: song.Artist}
	}
	s.log.Info("discover: resolved tracks", "found", found, "total", len(tracks))

	return &DiscoverResult{
		MoodSummary: discovery.MoodSummary,
		Tracks:      tracks,
	}, nil
}
