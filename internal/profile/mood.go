package profile

import (
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// moodFeatureNames defines the audio features used for clustering.
var moodFeatureNames = []string{"energy", "valence", "danceability", "acousticness"}

const defaultMoodClusters = 3

// MoodCluster is a group of tracks with similar audio features, labeled by
// its dominant mood.
type MoodCluster struct {
	Name       string             `json:"name"`
	TrackCount int                `json:"track_count"`
	Centroid   map[string]float32 `json:"centroid"`
}

type featureObservation struct {
	coords clusters.Coordinates
}

func (o featureObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o featureObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// MoodClusters groups tracks by audio feature similarity using k-means and
// names each cluster by its energy/valence quadrant. Returns nil when there
// are too few tracks to form the requested number of clusters, or when
// clustering fails.
func MoodClusters(features []spotify.AudioFeatures, numClusters int) []MoodCluster {
	if numClusters <= 0 {
		numClusters = defaultMoodClusters
	}
	if len(features) < numClusters {
		return nil
	}

	var obs clusters.Observations
	for _, f := range features {
		obs = append(obs, featureObservation{
			coords: clusters.Coordinates{
				float64(f.Energy),
				float64(f.Valence),
				float64(f.Danceability),
				float64(f.Acousticness),
			},
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, numClusters)
	if err != nil {
		return nil
	}

	out := make([]MoodCluster, 0, len(result))
	for _, cluster := range result {
		centroid := make(map[string]float32, len(moodFeatureNames))
		for i, name := range moodFeatureNames {
			centroid[name] = float32(cluster.Center[i])
		}
		out = append(out, MoodCluster{
			Name:       moodName(centroid),
			TrackCount: len(cluster.Observations),
			Centroid:   centroid,
		})
	}

	// Largest clusters first.
	sort.Slice(out, func(i, j int) bool {
		if out[i].TrackCount != out[j].TrackCount {
			return out[i].TrackCount > out[j].TrackCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// moodName labels a centroid using a 2x2 energy/valence quadrant system
// with an acousticness modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat Party"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Chill & Happy"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
func moodName(centroid map[string]float32) string {
	highEnergy := centroid["energy"] > 0.6
	highValence := centroid["valence"] > 0.5

	var base string
	switch {
	case highEnergy && highValence:
		base = "Upbeat Party"
	case highEnergy && !highValence:
		base = "Intense & Dark"
	case !highEnergy && highValence:
		base = "Chill & Happy"
	default:
		base = "Reflective & Melancholy"
	}

	if centroid["acousticness"] > 0.6 {
		return base + " (Acoustic)"
	}
	return base
}
