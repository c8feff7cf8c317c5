package generate

import (
	"strings"
	"testing"

	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

func TestSampleInspiration(t *testing.T) {
	tracks := []spotify.Song{
		{Title: "A", Artist: "1"},
		{Title: "B", Artist: "2"},
		{Title: "C", Artist: "3"},
	}

	t.Run("caps at requested size", func(t *testing.T) {
		got := sampleInspiration(tracks, 2)
		if len(got) != 2 {
			t.Fatalf("expected 2 samples, got %d", len(got))
		}
	})

	t.Run("uses all tracks when fewer than requested", func(t *testing.T) {
		got := sampleInspiration(tracks, 15)
		if len(got) != len(tracks) {
			t.Fatalf("expected %d samples, got %d", len(tracks), len(got))
		}
		seen := make(map[string]bool)
		for _, s := range got {
			if !strings.Contains(s, " - ") {
				t.Errorf("sample %q not rendered as Title - Artist", s)
			}
			if seen[s] {
				t.Errorf("duplicate sample %q", s)
			}
			seen[s] = true
		}
	})
}
