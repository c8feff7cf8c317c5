// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"
)

// Common errors.
var (
	// ErrNoMatch is returned when a search yields no results.
	ErrNoMatch = errors.New("no matching track")

	// ErrRestricted is returned when an endpoint is unavailable to the
	// application (development-mode API restrictions).
	ErrRestricted = errors.New("endpoint restricted")
)

// searchRate paces provider searches to stay under the API rate limit.
const searchRate = rate.Limit(8) // requests per second

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api     *spotify.Client
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a new Spotify client wrapper. The underlying clients should
// already be authenticated; httpClient is used for the few endpoints the SDK
// does not cover and may be nil when those are not needed.
func New(api *spotify.Client, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		api:     api,
		http:    httpClient,
		limiter: rate.NewLimiter(searchRate, 1),
	}
}

// Profile is the provider's view of the current user.
type Profile struct {
	ExternalID  string
	DisplayName string
	Email       string
}

// CurrentProfile returns the current user's profile.
func (c *Client) CurrentProfile(ctx context.Context) (*Profile, error) {
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}
	return &Profile{
		ExternalID:  user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}, nil
}

// isRestricted reports whether err is a provider 403 response.
func isRestricted(err error) bool {
	var spErr spotify.Error
	return errors.As(err, &spErr) && spErr.Status == http.StatusForbidden
}
