package generate

import (
	"context"
	"sync"

	"github.com/kesslermatics/vibeswipe/internal/gemini"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// searchWorkers bounds concurrent catalog searches. The client's rate
// limiter paces individual requests; the pool just caps in-flight work.
const searchWorkers = 8

// trackSearcher resolves a free-text query to the best-matching track.
type trackSearcher interface {
	SearchTrack(ctx context.Context, query string) (*spotify.Track, error)
}

// searchAll resolves the named songs against the catalog with a bounded
// worker pool, preserving input order. Entries that cannot be resolved are
// left nil.
func searchAll(ctx context.Context, s trackSearcher, songs []gemini.Song) []*spotify.Track {
	results := make([]*spotify.Track, len(songs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < searchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				track, err := s.SearchTrack(ctx, songs[i].Title+" "+songs[i].Artist)
				if err != nil {
					continue
				}
				results[i] = track
			}
		}()
	}

	for i := range songs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
