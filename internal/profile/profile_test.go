package profile

import (
	"testing"

	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

func TestAverageFeatures(t *testing.T) {
	features := []spotify.AudioFeatures{
		{Danceability: 0.4, Energy: 0.6, Valence: 0.2, Acousticness: 0.1, Speechiness: 0.05, Tempo: 100},
		{Danceability: 0.6, Energy: 0.8, Valence: 0.4, Acousticness: 0.3, Speechiness: 0.15, Tempo: 140},
	}

	avg := AverageFeatures(features)

	if avg["danceability"] != 0.5 {
		t.Errorf("danceability = %v, want 0.5", avg["danceability"])
	}
	if avg["energy"] != 0.7 {
		t.Errorf("energy = %v, want 0.7", avg["energy"])
	}
	if avg["tempo"] != 120 {
		t.Errorf("tempo = %v, want 120", avg["tempo"])
	}
	if avg["instrumentalness"] != 0 {
		t.Errorf("instrumentalness = %v, want 0", avg["instrumentalness"])
	}
}

func TestAverageFeatures_EmptyUsesNeutralDefaults(t *testing.T) {
	avg := AverageFeatures(nil)

	if avg["energy"] != 0.5 {
		t.Errorf("energy = %v, want 0.5", avg["energy"])
	}
	if avg["tempo"] != 120.0 {
		t.Errorf("tempo = %v, want 120", avg["tempo"])
	}
	if avg["instrumentalness"] != 0.0 {
		t.Errorf("instrumentalness = %v, want 0", avg["instrumentalness"])
	}
	if len(avg) != len(featureNames) {
		t.Errorf("expected %d features, got %d", len(featureNames), len(avg))
	}
}

func TestTopGenres(t *testing.T) {
	artists := []spotify.Artist{
		{Name: "A", Genres: []string{"indie rock", "shoegaze"}},
		{Name: "B", Genres: []string{"indie rock", "dream pop"}},
		{Name: "C", Genres: []string{"indie rock", "shoegaze"}},
	}

	got := TopGenres(artists, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 genres, got %d: %v", len(got), got)
	}
	if got[0] != "indie rock" {
		t.Errorf("got[0] = %q, want %q", got[0], "indie rock")
	}
	if got[1] != "shoegaze" {
		t.Errorf("got[1] = %q, want %q", got[1], "shoegaze")
	}
}

func TestTopGenres_NoArtists(t *testing.T) {
	if got := TopGenres(nil, 10); len(got) != 0 {
		t.Errorf("expected no genres, got %v", got)
	}
}

func TestMoodName(t *testing.T) {
	tests := []struct {
		name     string
		centroid map[string]float32
		want     string
	}{
		{
			name:     "high energy high valence",
			centroid: map[string]float32{"energy": 0.8, "valence": 0.7, "acousticness": 0.2},
			want:     "Upbeat Party",
		},
		{
			name:     "high energy low valence",
			centroid: map[string]float32{"energy": 0.8, "valence": 0.3, "acousticness": 0.2},
			want:     "Intense & Dark",
		},
		{
			name:     "low energy high valence",
			centroid: map[string]float32{"energy": 0.4, "valence": 0.7, "acousticness": 0.3},
			want:     "Chill & Happy",
		},
		{
			name:     "low energy low valence",
			centroid: map[string]float32{"energy": 0.3, "valence": 0.3, "acousticness": 0.4},
			want:     "Reflective & Melancholy",
		},
		{
			name:     "high acousticness adds modifier",
			centroid: map[string]float32{"energy": 0.4, "valence": 0.7, "acousticness": 0.8},
			want:     "Chill & Happy (Acoustic)",
		},
		{
			name:     "boundary energy exactly 0.6 is low",
			centroid: map[string]float32{"energy": 0.6, "valence": 0.7, "acousticness": 0.2},
			want:     "Chill & Happy",
		},
		{
			name:     "boundary valence exactly 0.5 is low",
			centroid: map[string]float32{"energy": 0.8, "valence": 0.5, "acousticness": 0.2},
			want:     "Intense & Dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moodName(tt.centroid); got != tt.want {
				t.Errorf("moodName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoodClusters(t *testing.T) {
	// Two tight groups plus noise, enough observations for k=2.
	var features []spotify.AudioFeatures
	for i := 0; i < 10; i++ {
		features = append(features, spotify.AudioFeatures{
			Energy: 0.9, Valence: 0.8, Danceability: 0.85, Acousticness: 0.05,
		})
	}
	for i := 0; i < 10; i++ {
		features = append(features, spotify.AudioFeatures{
			Energy: 0.2, Valence: 0.2, Danceability: 0.25, Acousticness: 0.9,
		})
	}

	got := MoodClusters(features, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(got))
	}
	total := 0
	names := make(map[string]bool)
	for _, c := range got {
		total += c.TrackCount
		names[c.Name] = true
		if len(c.Centroid) != len(moodFeatureNames) {
			t.Errorf("cluster %q centroid has %d features, want %d", c.Name, len(c.Centroid), len(moodFeatureNames))
		}
	}
	if total != len(features) {
		t.Errorf("clusters cover %d tracks, want %d", total, len(features))
	}
	if !names["Upbeat Party"] {
		t.Errorf("expected an Upbeat Party cluster, got %v", names)
	}
	if !names["Reflective & Melancholy (Acoustic)"] {
		t.Errorf("expected a Reflective & Melancholy (Acoustic) cluster, got %v", names)
	}
}

func TestMoodClusters_TooFewTracks(t *testing.T) {
	features := []spotify.AudioFeatures{
		{Energy: 0.5, Valence: 0.5},
		{Energy: 0.6, Valence: 0.4},
	}
	if got := MoodClusters(features, 3); got != nil {
		t.Errorf("expected nil for too few tracks, got %v", got)
	}
}
