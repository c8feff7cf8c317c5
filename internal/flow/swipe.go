package flow

import (
	"context"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
)

// SwipeState is the swipe flow's lifecycle state.
type SwipeState int

const (
	// SwipeIdle means no deck is loaded.
	SwipeIdle SwipeState = iota
	// SwipeLoading means a deck fetch is in flight.
	SwipeLoading
	// SwipePresenting means a card is showing and awaiting a decision.
	SwipePresenting
	// SwipeExhausted means every card has been decided.
	SwipeExhausted
)

// Card is one swipeable track as served by the deck endpoint.
type Card struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	CoverImage string `json:"cover_image"`
	PreviewURL string `json:"preview_url"`
	URI        string `json:"uri"`
}

// DeckSource selects the deck: a playlist's tracks, or the user's saved
// tracks when PlaylistID is empty. One flow covers both.
type DeckSource struct {
	PlaylistID string
}

// SwipeFlow is the swipe deck state machine. It is driven from a single
// goroutine: load a deck, decide each card with Keep or Discard, and the
// deck exhausts after exactly as many decisions as it has cards.
type SwipeFlow struct {
	gw  *Gateway
	log *log.Logger

	source     DeckSource
	state      SwipeState
	deck       []Card
	index      int
	kept       int
	discarded  int
	deckEmpty  bool
	generation int
}

// NewSwipeFlow creates an idle swipe flow for the given source.
func NewSwipeFlow(gw *Gateway, source DeckSource, logger *log.Logger) *SwipeFlow {
	return &SwipeFlow{gw: gw, log: logger, source: source}
}

// State returns the current lifecycle state.
func (f *SwipeFlow) State() SwipeState { return f.state }

// Counts returns how many cards were kept and discarded.
func (f *SwipeFlow) Counts() (kept, discarded int) { return f.kept, f.discarded }

// DeckEmpty reports the "try another source" condition: the last load
// finished cleanly but yielded no playable tracks.
func (f *SwipeFlow) DeckEmpty() bool { return f.deckEmpty }

// Current returns the card awaiting a decision.
func (f *SwipeFlow) Current() (Card, bool) {
	if f.state != SwipePresenting {
		return Card{}, false
	}
	return f.deck[f.index], true
}

// Load fetches the deck and moves to presenting, or back to idle with the
// empty-deck condition when the source has no playable tracks. A load
// abandoned by a restart does not apply its result.
func (f *SwipeFlow) Load(ctx context.Context) error {
	f.generation++
	gen := f.generation
	f.state = SwipeLoading
	f.deckEmpty = false

	var resp struct {
		Tracks []Card `json:"tracks"`
	}
	var query url.Values
	if f.source.PlaylistID != "" {
		query = url.Values{"playlist_id": {f.source.PlaylistID}}
	}
	err := f.gw.Do(ctx, http.MethodGet, "/discover/swipe", query, nil, &resp)

	// Liveness guard: only the newest load may mutate the flow.
	if gen != f.generation {
		return nil
	}

	if err != nil {
		f.state = SwipeIdle
		return err
	}

	f.deck = resp.Tracks
	f.index = 0
	f.kept = 0
	f.discarded = 0

	if len(f.deck) == 0 {
		f.state = SwipeIdle
		f.deckEmpty = true
		return nil
	}

	f.state = SwipePresenting
	return nil
}

// Keep decides the current card positively and advances. The save is best
// effort: a failure is logged and never blocks the swipe. Decisions outside
// the presenting state are ignored.
func (f *SwipeFlow) Keep(ctx context.Context) {
	card, ok := f.Current()
	if !ok {
		return
	}

	body := map[string][]string{"track_ids": {card.ID}}
	var query url.Values
	if f.source.PlaylistID != "" {
		query = url.Values{"playlist_id": {f.source.PlaylistID}}
		body = map[string][]string{"track_uris": {card.URI}}
	}
	if err := f.gw.Do(ctx, http.MethodPost, "/save-tracks", query, body, nil); err != nil {
		f.log.Warn("swipe: save failed", "track", card.ID, "err", err)
	}

	f.kept++
	f.advance()
}

// Discard decides the current card negatively and advances. Decisions
// outside the presenting state are ignored.
func (f *SwipeFlow) Discard() {
	if f.state != SwipePresenting {
		return
	}
	f.discarded++
	f.advance()
}

func (f *SwipeFlow) advance() {
	f.index++
	if f.index >= len(f.deck) {
		f.state = SwipeExhausted
	}
}

// Restart reloads the deck from the same source, discarding any load still
// in flight.
func (f *SwipeFlow) Restart(ctx context.Context) error {
	f.state = SwipeIdle
	return f.Load(ctx)
}
