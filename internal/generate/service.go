// Package generate implements the playlist generation pipelines: swipe
// decks, prompt discovery, daily drive, gym mixes, and the vibe roast.
package generate

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/kesslermatics/vibeswipe/internal/auth"
	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/gemini"
)

// Common errors.
var (
	// ErrSpotifyNotLinked is returned when the user has no stored Spotify
	// credentials.
	ErrSpotifyNotLinked = errors.New("spotify account not linked")

	// ErrNotEnoughTracks is returned when the source material is too thin
	// to generate from.
	ErrNotEnoughTracks = errors.New("not enough tracks")

	// ErrNotEnoughResolved is returned when too few recommended songs could
	// be found on Spotify.
	ErrNotEnoughResolved = errors.New("not enough songs found on spotify")
)

// Service runs the generation pipelines.
type Service struct {
	db     *db.DB
	llm    *gemini.Client
	spauth *auth.SpotifyAuthenticator
	log    *log.Logger
}

// New creates a generation service.
func New(database *db.DB, llm *gemini.Client, spauth *auth.SpotifyAuthenticator, logger *log.Logger) *Service {
	return &Service{
		db:     database,
		llm:    llm,
		spauth: spauth,
		log:    logger,
	}
}
