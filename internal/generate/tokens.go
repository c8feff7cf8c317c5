package generate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/kesslermatics/vibeswipe/internal/db"
	"github.com/kesslermatics/vibeswipe/internal/spotify"
)

// tokenExpiryLeeway refreshes tokens slightly before their deadline so a
// long pipeline does not start with a token about to lapse.
const tokenExpiryLeeway = time.Minute

// ClientForUser builds an authenticated Spotify client for the user,
// refreshing and persisting the stored token when it has expired. Returns
// ErrSpotifyNotLinked when the user never connected a Spotify account.
func (s *Service) ClientForUser(ctx context.Context, user *db.User) (*spotify.Client, error) {
	if user.AccessToken == nil || *user.AccessToken == "" {
		return nil, ErrSpotifyNotLinked
	}

	token := &oauth2.Token{
		AccessToken: *user.AccessToken,
		TokenType:   "Bearer",
	}
	if user.RefreshToken != nil {
		token.RefreshToken = *user.RefreshToken
	}
	if user.TokenExpiry != nil {
		token.Expiry = *user.TokenExpiry
	}

	if !token.Expiry.IsZero() && time.Until(token.Expiry) < tokenExpiryLeeway {
		refreshed, err := s.spauth.Refresh(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("refreshing spotify token: %w", err)
		}
		if err := s.db.Users().UpdateSpotifyToken(ctx, user.ID, refreshed.AccessToken, refreshed.RefreshToken, refreshed.Expiry); err != nil {
			return nil, fmt.Errorf("persisting refreshed token: %w", err)
		}
		user.AccessToken = &refreshed.AccessToken
		user.RefreshToken = &refreshed.RefreshToken
		user.TokenExpiry = &refreshed.Expiry
		token = refreshed
	}

	httpClient := s.spauth.HTTPClient(ctx, token)
	httpClient.Timeout = 30 * time.Second
	return spotify.New(spotifyapi.New(httpClient), &http.Client{
		Transport: httpClient.Transport,
		Timeout:   30 * time.Second,
	}), nil
}
