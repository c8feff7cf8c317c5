package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/gemini"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

const (
	// minInspirationTracks is the smallest source pool a gym mix can be
	// generated from.
	minInspirationTracks = 5

	// inspirationSampleSize caps how many source tracks are handed to the
	// model as taste examples.
	inspirationSampleSize = 15

	// minResolvedGymTracks is the smallest usable gym mix. Below this the
	// run fails so the user is not left with a near-empty playlist.
	minResolvedGymTracks = 10
)

// GymResult describes the created gym playlist.
type GymResult struct {
	PlaylistURL      string `json:"playlist_url"`
	PlaylistID       string `json:"playlist_id"`
	PlaylistName     string `json:"playlist_name"`
	TotalTracks      int    `json:"total_tracks"`
	InspirationCount int    `json:"inspiration_count"`
	AutoRefresh      bool   `json:"auto_refresh"`
}

// GymPlaylist generates a high-energy workout playlist from the user's
// selected source playlists. The previous gym playlist is removed, the new
// one replaces it, and the sources are persisted for auto-refresh runs.
func (s *Service) GymPlaylist(ctx context.Context, user *db.User, client *spotify.Client, sourcePlaylistIDs []string) (*GymResult, error) {
	var allTracks []spotify.Song
	for _, pid := range sourcePlaylistIDs {
		songs, err := client.PlaylistSongs(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("loading playlist %s: %w", pid, err)
		}
		allTracks = append(allTracks, songs...)
	}
	if len(allTracks) < minInspirationTracks {
		return nil, fmt.Errorf("%w: selected playlists hold %d tracks, need %d", ErrNotEnoughTracks, len(allTracks), minInspirationTracks)
	}
	s.log.Info("gym: loaded source tracks", "tracks", len(allTracks), "playlists", len(sourcePlaylistIDs))

	inspiration := sampleInspiration(allTracks, inspirationSampleSize)

	songs, err := s.llm.GymSongs(ctx, inspiration)
	if err != nil {
		return nil, fmt.Errorf("generating gym songs: %w", err)
	}
	s.log.Info("gym: got recommendations", "songs", len(songs))

	uris := s.resolveWithCache(ctx, client, songs)
	s.log.Info("gym: resolved tracks", "found", len(uris))
	if len(uris) < minResolvedGymTracks {
		return nil, fmt.Errorf("%w: resolved %d of %d", ErrNotEnoughResolved, len(uris), len(songs))
	}

	settings, err := s.db.GymSettings().Get(ctx, user.ID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("loading gym settings: %w", err)
	}

	// Replace rather than accumulate: the old gym playlist goes away.
	if settings != nil && settings.LastPlaylistID != nil {
		if err := client.UnfollowPlaylist(ctx, *settings.LastPlaylistID); err != nil {
			s.log.Warn("gym: could not remove old playlist", "playlist", *settings.LastPlaylistID, "err", err)
		}
	}

	name := "🏋️ VibeSwipe Gym Mix – " + time.Now().Format("02.01.2006")
	desc := fmt.Sprintf("Dein persönlicher Gym Power Mix von VibeSwipe 💪 %d motivierende Tracks", len(uris))

	playlist, err := client.CreatePlaylist(ctx, name, desc)
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}
	if err := client.AddItemsToPlaylist(ctx, playlist.ID, uris); err != nil {
		return nil, fmt.Errorf("filling playlist: %w", err)
	}
	s.log.Info("gym: created playlist", "playlist", playlist.ID, "tracks", len(uris))

	autoRefresh := false
	if settings != nil {
		autoRefresh = settings.AutoRefresh
	}
	if err := s.db.GymSettings().Upsert(ctx, &db.GymSettings{
		UserID:            user.ID,
		SourcePlaylistIDs: sourcePlaylistIDs,
		LastPlaylistID:    &playlist.ID,
		AutoRefresh:       autoRefresh,
	}); err != nil {
		s.log.Warn("gym: could not persist settings", "err", err)
	}

	return &GymResult{
		PlaylistURL:      playlist.URL,
		PlaylistID:       playlist.ID,
		PlaylistName:     name,
		TotalTracks:      len(uris),
		InspirationCount: len(inspiration),
		AutoRefresh:      autoRefresh,
	}, nil
}

// sampleInspiration picks up to n random tracks rendered as "Title - Artist".
func sampleInspiration(tracks []spotify.Song, n int) []string {
	idx := rand.Perm(len(tracks))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		t := tracks[idx[i]]
		out[i] = t.Title + " - " + t.Artist
	}
	return out
}

// resolveWithCache resolves songs to URIs, consulting the search cache
// before hitting the provider. Cache write failures are ignored; the cache
// is an optimization, not a source of truth.
func (s *Service) resolveWithCache(ctx context.Context, client *spotify.Client, songs []gemini.Song) []string {
	cache := s.db.SearchCache()
	var uris []string
	for _, song := range songs {
		if uri, err := cache.Get(ctx, song.Title, song.Artist); err == nil && uri != "" {
			uris = append(uris, uri)
			continue
		}

		found, err := client.SearchSong(ctx, song.Title, song.Artist)
		if err != nil {
			if !errors.Is(err, spotify.ErrNoMatch) {
				s.log.Warn("gym: search failed", "title", song.Title, "artist", song.Artist, "err", err)
			}
			continue
		}
		uris = append(uris, found.URI)
		if err := cache.Put(ctx, song.Title, song.Artist, found.URI); err != nil {
			s.log.Warn("gym: cache write failed", "err", err)
		}
	}
	return uris
}
