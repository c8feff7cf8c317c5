package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"slices"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Handshake errors.
var (
	ErrRedirectNotAllowed = errors.New("redirect URI not in allowlist")
	ErrMissingCode        = errors.New("missing authorization code")
	ErrNoRefreshToken     = errors.New("no refresh token available")
)

// SpotifyAuthenticator performs the delegated-authorization handshake with
// Spotify. The redirect URI is chosen per request from a configured
// allowlist, so one instance serves every frontend origin.
type SpotifyAuthenticator struct {
	clientID     string
	clientSecret string
	allowed      []string
	scopes       []string
}

// NewSpotifyAuthenticator creates a SpotifyAuthenticator with the scopes the
// feature set needs: library reads/writes, playlist management, top-item and
// playback-position reads. The redirect allowlist must not be empty.
func NewSpotifyAuthenticator(clientID, clientSecret string, allowedRedirects []string) (*SpotifyAuthenticator, error) {
	if len(allowedRedirects) == 0 {
		return nil, errors.New("redirect allowlist must not be empty")
	}
	return &SpotifyAuthenticator{
		clientID:     clientID,
		clientSecret: clientSecret,
		allowed:      allowedRedirects,
		scopes: []string{
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopeUserReadEmail,
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopeUserLibraryModify,
			spotifyauth.ScopeUserTopRead,
			"user-read-playback-position",
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistModifyPublic,
			spotifyauth.ScopePlaylistModifyPrivate,
		},
	}, nil
}

// authenticator builds a zmb3 authenticator bound to one redirect URI.
func (a *SpotifyAuthenticator) authenticator(redirectURI string) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithClientID(a.clientID),
		spotifyauth.WithClientSecret(a.clientSecret),
		spotifyauth.WithRedirectURL(redirectURI),
		spotifyauth.WithScopes(a.scopes...),
	)
}

// AuthURL returns the provider consent URL for the given redirect URI.
// The redirect URI must be in the configured allowlist.
func (a *SpotifyAuthenticator) AuthURL(redirectURI, state string) (string, error) {
	if !slices.Contains(a.allowed, redirectURI) {
		return "", ErrRedirectNotAllowed
	}
	return a.authenticator(redirectURI).AuthURL(state), nil
}

// Exchange swaps a one-time authorization code for a token pair. The
// redirect URI must match the one the consent URL was built with.
func (a *SpotifyAuthenticator) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	if !slices.Contains(a.allowed, redirectURI) {
		return nil, ErrRedirectNotAllowed
	}

	token, err := a.authenticator(redirectURI).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

// Refresh obtains a fresh access token using the token's refresh material.
func (a *SpotifyAuthenticator) Refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	if token == nil || token.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	// Any allowed redirect works here: the refresh grant does not carry one.
	refreshed, err := a.authenticator(a.allowed[0]).RefreshToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}
	return refreshed, nil
}

// HTTPClient returns an http.Client that authenticates requests with the
// given token.
func (a *SpotifyAuthenticator) HTTPClient(ctx context.Context, token *oauth2.Token) *http.Client {
	return a.authenticator(a.allowed[0]).Client(ctx, token)
}

// GenerateState creates a random state string for OAuth.
func GenerateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
