package flow

import (
	"context"
	"errors"
	"sync"
)

// ErrNoRefresh is returned when a refresh is requested but the session has
// no refresh material.
var ErrNoRefresh = errors.New("no refresh material")

// RefreshFunc obtains a fresh access token, typically by re-running a
// stored credential exchange.
type RefreshFunc func(ctx context.Context) (string, error)

// Session holds the client's credential state. All access goes through the
// session so logout is a single teardown, not a flag scattered across flows.
type Session struct {
	mu          sync.Mutex
	accessToken string
	refresh     RefreshFunc
}

// NewSession creates an empty, logged-out session.
func NewSession() *Session {
	return &Session{}
}

// SetCredential installs an access token with optional refresh material.
func (s *Session) SetCredential(accessToken string, refresh RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refresh = refresh
}

// AccessToken returns the current access token, empty when logged out.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// LoggedIn reports whether the session holds a credential.
func (s *Session) LoggedIn() bool {
	return s.AccessToken() != ""
}

// CanRefresh reports whether refresh material is present.
func (s *Session) CanRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh != nil
}

// RefreshCredential replaces the access token using the refresh material.
func (s *Session) RefreshCredential(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refresh
	s.mu.Unlock()
	if refresh == nil {
		return ErrNoRefresh
	}

	token, err := refresh(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
	return nil
}

// Logout drops the credential and refresh material in one step.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refresh = nil
}
