package generate

import (
	"context"
	"fmt"

	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// Deck returns the swipe deck for a user: the tracks of the given playlist,
// or the user's saved tracks when playlistID is empty. Only tracks with an
// audio preview are included; provider order is preserved. An empty deck is
// a valid result, not an error.
func (s *Service) Deck(ctx context.Context, client *spotify.Client, playlistID string) ([]spotify.Track, error) {
	if playlistID == "" {
		deck, err := client.DeckFromLibrary(ctx)
		if err != nil {
			return nil, fmt.Errorf("building library deck: %w", err)
		}
		return deck, nil
	}

	deck, err := client.DeckFromPlaylist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("building playlist deck: %w", err)
	}
	return deck, nil
}
