package generate

import (
	"reflect"
	"testing"

	"github.com/kesslermatics/vibeswipe/internal/gemini"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

func TestMatchAgainstRotation(t *testing.T) {
	rotation := []spotify.Song{
		{Title: "Nightcall", Artist: "Kavinsky", URI: "spotify:track:1"},
		{Title: "Midnight City", Artist: "M83", URI: "spotify:track:2"},
		{Title: "Genesis", Artist: "Grimes", URI: "spotify:track:3"},
	}

	tests := []struct {
		name          string
		picks         []gemini.Song
		wantURIs      []string
		wantUnmatched int
	}{
		{
			name: "exact title and artist match",
			picks: []gemini.Song{
				{Title: "Nightcall", Artist: "Kavinsky"},
			},
			wantURIs: []string{"spotify:track:1"},
		},
		{
			name: "case and whitespace insensitive",
			picks: []gemini.Song{
				{Title: "  MIDNIGHT CITY ", Artist: "m83"},
			},
			wantURIs: []string{"spotify:track:2"},
		},
		{
			name: "title-only fallback on artist mismatch",
			picks: []gemini.Song{
				{Title: "Genesis", Artist: "Phil Collins"},
			},
			wantURIs: []string{"spotify:track:3"},
		},
		{
			name: "unknown song goes to unmatched",
			picks: []gemini.Song{
				{Title: "Unknown Song", Artist: "Nobody"},
			},
			wantUnmatched: 1,
		},
		{
			name: "mixed",
			picks: []gemini.Song{
				{Title: "Nightcall", Artist: "Kavinsky"},
				{Title: "Unknown Song", Artist: "Nobody"},
				{Title: "Genesis", Artist: "Wrong Artist"},
			},
			wantURIs:      []string{"spotify:track:1", "spotify:track:3"},
			wantUnmatched: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uris, unmatched := matchAgainstRotation(rotation, tt.picks)
			if !reflect.DeepEqual(uris, tt.wantURIs) && !(len(uris) == 0 && len(tt.wantURIs) == 0) {
				t.Errorf("uris = %v, want %v", uris, tt.wantURIs)
			}
			if len(unmatched) != tt.wantUnmatched {
				t.Errorf("unmatched = %d, want %d", len(unmatched), tt.wantUnmatched)
			}
		})
	}
}

func TestAlternate(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{
			name: "equal lengths",
			a:    []string{"a1", "a2"},
			b:    []string{"b1", "b2"},
			want: []string{"a1", "b1", "a2", "b2"},
		},
		{
			name: "first longer",
			a:    []string{"a1", "a2", "a3"},
			b:    []string{"b1"},
			want: []string{"a1", "b1", "a2", "a3"},
		},
		{
			name: "second longer",
			a:    []string{"a1"},
			b:    []string{"b1", "b2", "b3"},
			want: []string{"a1", "b1", "b2", "b3"},
		},
		{
			name: "one empty",
			a:    nil,
			b:    []string{"b1", "b2"},
			want: []string{"b1", "b2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alternate(tt.a, tt.b); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("alternate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickEpisodes(t *testing.T) {
	episodes := []spotify.Episode{
		{ID: "old-unplayed", ReleaseDate: "2026-01-01", FullyPlayed: false},
		{ID: "new-unplayed", ReleaseDate: "2026-08-01", FullyPlayed: false},
		{ID: "new-played", ReleaseDate: "2026-08-15", FullyPlayed: true},
		{ID: "old-played", ReleaseDate: "2025-12-01", FullyPlayed: true},
	}

	t.Run("prefers unplayed newest first", func(t *testing.T) {
		got := pickEpisodes(episodes, 2)
		if len(got) != 2 {
			t.Fatalf("expected 2 episodes, got %d", len(got))
		}
		if got[0].ID != "new-unplayed" || got[1].ID != "old-unplayed" {
			t.Errorf("got %s, %s; want new-unplayed, old-unplayed", got[0].ID, got[1].ID)
		}
	})

	t.Run("falls back to played when unplayed run out", func(t *testing.T) {
		got := pickEpisodes(episodes, 3)
		if len(got) != 3 {
			t.Fatalf("expected 3 episodes, got %d", len(got))
		}
		if got[2].ID != "new-played" {
			t.Errorf("got[2] = %s, want new-played", got[2].ID)
		}
	})

	t.Run("caps at available episodes", func(t *testing.T) {
		if got := pickEpisodes(episodes, 10); len(got) != 4 {
			t.Errorf("expected 4 episodes, got %d", len(got))
		}
	})
}

func TestInterleaveEpisodes(t *testing.T) {
	songs := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"}
	episodes := []string{"e1", "e2"}

	got := interleaveEpisodes(songs, episodes, 4)

	want := []string{"s1", "s2", "s3", "s4", "e1", "s5", "s6", "s7", "s8", "e2", "s9"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interleaveEpisodes() = %v, want %v", got, want)
	}
}

func TestInterleaveEpisodes_NoEpisodes(t *testing.T) {
	songs := []string{"s1", "s2", "s3", "s4", "s5"}

	got := interleaveEpisodes(songs, nil, 4)

	if !reflect.DeepEqual(got, songs) {
		t.Errorf("interleaveEpisodes() = %v, want %v", got, songs)
	}
}
