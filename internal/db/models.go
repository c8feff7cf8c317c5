package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. Either SpotifyID (delegated variant) or
// Email+PasswordHash (local variant) is set; a delegated user may later
// carry both once the profile exposes an email.
type User struct {
	ID           uuid.UUID
	SpotifyID    *string // nullable, unique
	Email        *string // nullable, unique
	PasswordHash *string // nullable, local variant only
	DisplayName  string
	AccessToken  *string // Spotify access token, nullable
	RefreshToken *string // Spotify refresh token, nullable
	TokenExpiry  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GymSettings holds a user's gym mix preferences and the last artifact.
type GymSettings struct {
	UserID            uuid.UUID
	SourcePlaylistIDs []string
	LastPlaylistID    *string // nullable - previous generated playlist
	AutoRefresh       bool
	UpdatedAt         time.Time
}

// CachedSearch is a resolved provider search: (title, artist) to track URI.
type CachedSearch struct {
	Title     string
	Artist    string
	URI       string
	FetchedAt time.Time
}
