package spotify

import (
	"testing"

	"github.com/zmb3/spotify/v2"
)

func savedTrack(id, name, preview string, artists ...string) spotify.SavedTrack {
	simpleArtists := make([]spotify.SimpleArtist, len(artists))
	for i, a := range artists {
		simpleArtists[i] = spotify.SimpleArtist{Name: a}
	}
	return spotify.SavedTrack{
		FullTrack: spotify.FullTrack{
			SimpleTrack: spotify.SimpleTrack{
				ID:         spotify.ID(id),
				Name:       name,
				Artists:    simpleArtists,
				PreviewURL: preview,
				URI:        spotify.URI("spotify:track:" + id),
			},
		},
	}
}

func TestDeckFromSaved(t *testing.T) {
	tests := []struct {
		name        string
		saved       []spotify.SavedTrack
		expectedIDs []string
	}{
		{
			name: "all playable",
			saved: []spotify.SavedTrack{
				savedTrack("t1", "Song One", "https://p.scdn.co/1", "Artist A"),
				savedTrack("t2", "Song Two", "https://p.scdn.co/2", "Artist B"),
			},
			expectedIDs: []string{"t1", "t2"},
		},
		{
			name: "missing preview is dropped",
			saved: []spotify.SavedTrack{
				savedTrack("t1", "Song One", "https://p.scdn.co/1", "Artist A"),
				savedTrack("t2", "Song Two", "", "Artist B"),
				savedTrack("t3", "Song Three", "https://p.scdn.co/3", "Artist C"),
			},
			expectedIDs: []string{"t1", "t3"},
		},
		{
			name: "no playable tracks yields empty deck",
			saved: []spotify.SavedTrack{
				savedTrack("t1", "Song One", "", "Artist A"),
				savedTrack("t2", "Song Two", "", "Artist B"),
			},
			expectedIDs: nil,
		},
		{
			name:        "empty input",
			saved:       nil,
			expectedIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := deckFromSaved(tt.saved)

			if len(deck) != len(tt.expectedIDs) {
				t.Fatalf("got %d tracks, want %d", len(deck), len(tt.expectedIDs))
			}
			for i, track := range deck {
				if track.ID != tt.expectedIDs[i] {
					t.Errorf("deck[%d].ID = %q, want %q", i, track.ID, tt.expectedIDs[i])
				}
				if track.PreviewURL == "" {
					t.Errorf("deck[%d] has empty preview URL", i)
				}
			}
		})
	}
}

func TestDeckFromPlaylistItems(t *testing.T) {
	playable := savedTrack("t1", "Song One", "https://p.scdn.co/1", "Artist A").FullTrack
	noPreview := savedTrack("t2", "Song Two", "", "Artist B").FullTrack

	tests := []struct {
		name        string
		items       []spotify.PlaylistItem
		expectedIDs []string
	}{
		{
			name: "playable kept in order",
			items: []spotify.PlaylistItem{
				{Track: spotify.PlaylistItemTrack{Track: &playable}},
				{Track: spotify.PlaylistItemTrack{Track: &playable}},
			},
			expectedIDs: []string{"t1", "t1"},
		},
		{
			name: "nil track entries skipped",
			items: []spotify.PlaylistItem{
				{Track: spotify.PlaylistItemTrack{Track: nil}},
				{Track: spotify.PlaylistItemTrack{Track: &playable}},
			},
			expectedIDs: []string{"t1"},
		},
		{
			name: "missing preview is dropped",
			items: []spotify.PlaylistItem{
				{Track: spotify.PlaylistItemTrack{Track: &noPreview}},
				{Track: spotify.PlaylistItemTrack{Track: &playable}},
			},
			expectedIDs: []string{"t1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := deckFromPlaylistItems(tt.items)

			if len(deck) != len(tt.expectedIDs) {
				t.Fatalf("got %d tracks, want %d", len(deck), len(tt.expectedIDs))
			}
			for i, track := range deck {
				if track.ID != tt.expectedIDs[i] {
					t.Errorf("deck[%d].ID = %q, want %q", i, track.ID, tt.expectedIDs[i])
				}
			}
		})
	}
}

func TestConvertFullTrack(t *testing.T) {
	tests := []struct {
		name           string
		track          spotify.FullTrack
		expectedArtist string
		expectedCover  string
	}{
		{
			name: "single artist",
			track: spotify.FullTrack{
				SimpleTrack: spotify.SimpleTrack{
					ID:      "track123",
					Name:    "Test Song",
					Artists: []spotify.SimpleArtist{{Name: "Artist One"}},
				},
				Album: spotify.SimpleAlbum{
					Name:   "Test Album",
					Images: []spotify.Image{{URL: "https://i.scdn.co/cover"}},
				},
			},
			expectedArtist: "Artist One",
			expectedCover:  "https://i.scdn.co/cover",
		},
		{
			name: "multiple artists joined",
			track: spotify.FullTrack{
				SimpleTrack: spotify.SimpleTrack{
					ID:   "track456",
					Name: "Collab Track",
					Artists: []spotify.SimpleArtist{
						{Name: "Artist A"},
						{Name: "Artist B"},
						{Name: "Artist C"},
					},
				},
			},
			expectedArtist: "Artist A, Artist B, Artist C",
			expectedCover:  "",
		},
		{
			name: "no artists",
			track: spotify.FullTrack{
				SimpleTrack: spotify.SimpleTrack{
					ID:      "track789",
					Name:    "Unknown Track",
					Artists: []spotify.SimpleArtist{},
				},
			},
			expectedArtist: "",
			expectedCover:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertFullTrack(&tt.track)

			if got.ID != tt.track.ID.String() {
				t.Errorf("ID = %q, want %q", got.ID, tt.track.ID)
			}
			if got.Title != tt.track.Name {
				t.Errorf("Title = %q, want %q", got.Title, tt.track.Name)
			}
			if got.Artist != tt.expectedArtist {
				t.Errorf("Artist = %q, want %q", got.Artist, tt.expectedArtist)
			}
			if got.CoverImage != tt.expectedCover {
				t.Errorf("CoverImage = %q, want %q", got.CoverImage, tt.expectedCover)
			}
		})
	}
}
