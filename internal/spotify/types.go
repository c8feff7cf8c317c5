package spotify

import "github.com/zmb3/spotify/v2"

// Track is a deck-ready track descriptor.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	CoverImage string `json:"cover_image,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	URI        string `json:"uri"`
}

// Song is a minimal title/artist/URI triple used by the generation pipelines.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URI    string `json:"uri"`
}

// PlaylistSummary describes one of the user's playlists.
type PlaylistSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"track_count"`
	CoverImage string `json:"cover_image,omitempty"`
}

// Show describes a saved podcast show.
type Show struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Publisher     string `json:"publisher"`
	CoverImage    string `json:"cover_image,omitempty"`
	TotalEpisodes int    `json:"total_episodes"`
}

// Episode describes a show episode with playback-position data.
type Episode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URI         string `json:"uri"`
	DurationMS  int    `json:"duration_ms"`
	ReleaseDate string `json:"release_date"`
	FullyPlayed bool   `json:"fully_played"`
	ShowID      string `json:"show_id"`
}

// joinArtists flattens a track's artist list to a display string.
func joinArtists(artists []spotify.SimpleArtist) string {
	switch len(artists) {
	case 0:
		return ""
	case 1:
		return artists[0].Name
	}
	joined := artists[0].Name
	for _, a := range artists[1:] {
		joined += ", " + a.Name
	}
	return joined
}

// firstImage returns the first image URL, or empty when there is none.
func firstImage(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// convertFullTrack maps a provider track to a deck descriptor.
func convertFullTrack(ft *spotify.FullTrack) Track {
	return Track{
		ID:         ft.ID.String(),
		Title:      ft.Name,
		Artist:     joinArtists(ft.Artists),
		Album:      ft.Album.Name,
		CoverImage: firstImage(ft.Album.Images),
		PreviewURL: ft.PreviewURL,
		URI:        string(ft.URI),
	}
}

// convertSong maps a provider track to a pipeline song.
func convertSong(ft *spotify.FullTrack) Song {
	return Song{
		ID:     ft.ID.String(),
		Title:  ft.Name,
		Artist: joinArtists(ft.Artists),
		URI:    string(ft.URI),
	}
}
