package generate

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/kesslermatics/vibeswipe/internal/gemini"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

const (
	// minOnRepeatTracks is the smallest rotation a daily drive can be
	// curated from.
	minOnRepeatTracks = 5

	// songsPerEpisode controls the interleave: one episode after every
	// four songs.
	songsPerEpisode = 4
)

// DailyDriveResult describes the created daily drive playlist.
type DailyDriveResult struct {
	PlaylistURL     string `json:"playlist_url"`
	PlaylistID      string `json:"playlist_id"`
	PlaylistName    string `json:"playlist_name"`
	TotalItems      int    `json:"total_tracks"`
	OnRepeatCount   int    `json:"on_repeat_count"`
	DiscoveryCount  int    `json:"new_discoveries_count"`
	EpisodeCount    int    `json:"episodes_count"`
}

// DailyDrive builds a personal daily drive playlist: a curated mix of the
// user's current rotation and new discoveries in the same style, with one
// episode from the selected shows woven in after every four songs.
func (s *Service) DailyDrive(ctx context.Context, client *spotify.Client, showIDs []string) (*DailyDriveResult, error) {
	onRepeat, err := client.TopSongs(ctx, spotifyapi.ShortTermRange, 50)
	if err != nil {
		return nil, fmt.Errorf("fetching on-repeat tracks: %w", err)
	}
	if len(onRepeat) < minOnRepeatTracks {
		return nil, fmt.Errorf("%w: need at least %d on-repeat tracks, have %d", ErrNotEnoughTracks, minOnRepeatTracks, len(onRepeat))
	}
	s.log.Info("daily drive: fetched rotation", "tracks", len(onRepeat))

	names := make([]string, len(onRepeat))
	for i, t := range onRepeat {
		names[i] = t.Title + " – " + t.Artist
	}
	selection, err := s.llm.CurateDailyDrive(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("curating selection: %w", err)
	}
	s.log.Info("daily drive: curated",
		"from_repeat", len(selection.FromRepeat),
		"new_discoveries", len(selection.NewDiscoveries))

	// Map curated picks straight back to URIs where possible; only the
	// remainder needs catalog searches.
	fromRepeatURIs, unmatched := matchAgainstRotation(onRepeat, selection.FromRepeat)

	toSearch := append(append([]gemini.Song{}, unmatched...), selection.NewDiscoveries...)
	resolved := searchAll(ctx, client, toSearch)

	var discoveryURIs []string
	for i, t := range resolved {
		if t == nil {
			continue
		}
		if i < len(unmatched) {
			fromRepeatURIs = append(fromRepeatURIs, t.URI)
		} else {
			discoveryURIs = append(discoveryURIs, t.URI)
		}
	}
	s.log.Info("daily drive: resolved",
		"from_repeat", len(fromRepeatURIs), "new_discoveries", len(discoveryURIs))

	rand.Shuffle(len(fromRepeatURIs), func(i, j int) {
		fromRepeatURIs[i], fromRepeatURIs[j] = fromRepeatURIs[j], fromRepeatURIs[i]
	})
	rand.Shuffle(len(discoveryURIs), func(i, j int) {
		discoveryURIs[i], discoveryURIs[j] = discoveryURIs[j], discoveryURIs[i]
	})
	songURIs := alternate(fromRepeatURIs, discoveryURIs)

	var episodeURIs []string
	if len(showIDs) > 0 {
		episodes := s.collectEpisodes(ctx, client, showIDs)
		needed := max(1, len(songURIs)/songsPerEpisode)
		for _, ep := range pickEpisodes(episodes, needed) {
			episodeURIs = append(episodeURIs, ep.URI)
		}
		s.log.Info("daily drive: picked episodes", "episodes", len(episodeURIs))
	}

	finalURIs := interleaveEpisodes(songURIs, episodeURIs, songsPerEpisode)

	name := "Daily Drive – " + time.Now().Format("02.01.2006")
	desc := fmt.Sprintf("Dein persönlicher Daily Drive von VibeSwipe 🚗 %d On-Repeat Songs, %d neue Entdeckungen",
		len(fromRepeatURIs), len(discoveryURIs))
	if len(episodeURIs) > 0 {
		desc += fmt.Sprintf(", %d Podcast-Folgen", len(episodeURIs))
	}

	playlist, err := client.CreatePlaylist(ctx, name, desc)
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}
	if err := client.AddItemsToPlaylist(ctx, playlist.ID, finalURIs); err != nil {
		return nil, fmt.Errorf("filling playlist: %w", err)
	}
	s.log.Info("daily drive: created playlist", "playlist", playlist.ID, "items", len(finalURIs))

	return &DailyDriveResult{
		PlaylistURL:    playlist.URL,
		PlaylistID:     playlist.ID,
		PlaylistName:   name,
		TotalItems:     len(finalURIs),
		OnRepeatCount:  len(fromRepeatURIs),
		DiscoveryCount: len(discoveryURIs),
		EpisodeCount:   len(episodeURIs),
	}, nil
}

// collectEpisodes fetches episodes for each selected show. Shows that fail
// to load are skipped rather than failing the whole run.
func (s *Service) collectEpisodes(ctx context.Context, client *spotify.Client, showIDs []string) []spotify.Episode {
	var all []spotify.Episode
	for _, id := range showIDs {
		episodes, err := client.ShowEpisodes(ctx, id)
		if err != nil {
			s.log.Warn("daily drive: skipping show", "show", id, "err", err)
			continue
		}
		all = append(all, episodes...)
	}
	return all
}

// matchAgainstRotation maps curated picks back to catalog URIs from the
// rotation they were picked from, keyed by title and artist with a
// title-only fallback. Picks that match nothing are returned for searching.
func matchAgainstRotation(rotation []spotify.Song, picks []gemini.Song) (uris []string, unmatched []gemini.Song) {
	byKey := make(map[string]string)
	byTitle := make(map[string]string)
	for _, t := range rotation {
		title := normalize(t.Title)
		byKey[title+"|||"+normalize(t.Artist)] = t.URI
		if _, ok := byTitle[title]; !ok {
			byTitle[title] = t.URI
		}
	}

	for _, p := range picks {
		title := normalize(p.Title)
		if uri, ok := byKey[title+"|||"+normalize(p.Artist)]; ok {
			uris = append(uris, uri)
			continue
		}
		if uri, ok := byTitle[title]; ok {
			uris = append(uris, uri)
			continue
		}
		unmatched = append(unmatched, p)
	}
	return uris, unmatched
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// alternate merges two lists one-by-one, appending the remainder of the
// longer list once the shorter runs out.
func alternate(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}

// pickEpisodes selects up to needed episodes, preferring unplayed ones
// newest-first and falling back to already-played episodes.
func pickEpisodes(episodes []spotify.Episode, needed int) []spotify.Episode {
	var unplayed, played []spotify.Episode
	for _, ep := range episodes {
		if ep.FullyPlayed {
			played = append(played, ep)
		} else {
			unplayed = append(unplayed, ep)
		}
	}

	newestFirst := func(eps []spotify.Episode) {
		sort.SliceStable(eps, func(i, j int) bool {
			return eps[i].ReleaseDate > eps[j].ReleaseDate
		})
	}
	newestFirst(unplayed)
	newestFirst(played)

	chosen := unplayed
	if len(chosen) > needed {
		chosen = chosen[:needed]
	}
	if remaining := needed - len(chosen); remaining > 0 {
		if remaining > len(played) {
			remaining = len(played)
		}
		chosen = append(chosen, played[:remaining]...)
	}
	return chosen
}

// interleaveEpisodes weaves one episode in after every chunkSize songs.
// Leftover episodes are dropped; leftover songs keep their order.
func interleaveEpisodes(songURIs, episodeURIs []string, chunkSize int) []string {
	out := make([]string, 0, len(songURIs)+len(episodeURIs))
	epIdx := 0
	for i := 0; i < len(songURIs); i += chunkSize {
		end := min(i+chunkSize, len(songURIs))
		out = append(out, songURIs[i:end]...)
		if epIdx < len(episodeURIs) {
			out = append(out, episodeURIs[epIdx])
			epIdx++
		}
	}
	return out
}
