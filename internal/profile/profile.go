// Package profile derives listening-profile statistics from audio features
// and top-artist data: feature averages, dominant genres, and mood clusters.
package profile

import (
	"math"
	"sort"

	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// featureNames lists the averaged feature values, in output order.
var featureNames = []string{
	"danceability", "energy", "valence",
	"acousticness", "instrumentalness", "speechiness", "tempo",
}

// neutralFeatures are the fallback averages used when no audio features are
// available, typically when the features endpoint is restricted.
var neutralFeatures = map[string]float64{
	"danceability":     0.5,
	"energy":           0.5,
	"valence":          0.5,
	"acousticness":     0.5,
	"instrumentalness": 0.0,
	"speechiness":      0.1,
	"tempo":            120.0,
}

// AverageFeatures computes per-feature mean values across tracks. An empty
// input returns neutral defaults so downstream consumers always have a
// complete feature map.
func AverageFeatures(features []spotify.AudioFeatures) map[string]float64 {
	if len(features) == 0 {
		out := make(map[string]float64, len(neutralFeatures))
		for k, v := range neutralFeatures {
			out[k] = v
		}
		return out
	}

	sums := make(map[string]float64, len(featureNames))
	for _, f := range features {
		sums["danceability"] += float64(f.Danceability)
		sums["energy"] += float64(f.Energy)
		sums["valence"] += float64(f.Valence)
		sums["acousticness"] += float64(f.Acousticness)
		sums["instrumentalness"] += float64(f.Instrumentalness)
		sums["speechiness"] += float64(f.Speechiness)
		sums["tempo"] += float64(f.Tempo)
	}

	n := float64(len(features))
	out := make(map[string]float64, len(featureNames))
	for _, name := range featureNames {
		out[name] = math.Round(sums[name]/n*1000) / 1000
	}
	return out
}

// TopGenres returns the most common genres across the given artists,
// ordered by frequency. Ties break alphabetically for stable output.
func TopGenres(artists []spotify.Artist, limit int) []string {
	counts := make(map[string]int)
	for _, a := range artists {
		for _, g := range a.Genres {
			counts[g]++
		}
	}

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if limit > 0 && len(genres) > limit {
		genres = genres[:limit]
	}
	return genres
}
