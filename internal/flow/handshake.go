package flow

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Handshake drives the delegated-authorization exchange: Begin requests the
// provider consent URL, Complete trades the returned code for a session
// credential. Complete is idempotent: a second call with the same code
// performs no second exchange.
type Handshake struct {
	gw *Gateway

	mu            sync.Mutex
	returnAddress string
	completedCode string
	result        *HandshakeResult
}

// HandshakeResult is the outcome of a completed handshake.
type HandshakeResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewHandshake creates a handshake over the gateway.
func NewHandshake(gw *Gateway) *Handshake {
	return &Handshake{gw: gw}
}

// Begin requests the provider consent URL for the given return address and
// records the address for the completion step.
func (h *Handshake) Begin(ctx context.Context, returnAddress string) (consentURL string, err error) {
	var resp struct {
		URL         string `json:"url"`
		RedirectURI string `json:"redirect_uri"`
	}
	query := url.Values{"redirect_uri": {returnAddress}}
	if err := h.gw.Do(ctx, http.MethodGet, "/auth/login", query, nil, &resp); err != nil {
		return "", err
	}

	h.mu.Lock()
	h.returnAddress = resp.RedirectURI
	h.mu.Unlock()
	return resp.URL, nil
}

// Complete exchanges the one-time code for a session credential and
// installs it on the session. Repeating a completed exchange returns the
// stored result without a second network call.
func (h *Handshake) Complete(ctx context.Context, code string) (*HandshakeResult, error) {
	if code == "" {
		return nil, &Error{Kind: KindValidation, Detail: "missing authorization code"}
	}

	h.mu.Lock()
	if h.result != nil && h.completedCode == code {
		result := h.result
		h.mu.Unlock()
		return result, nil
	}
	returnAddress := h.returnAddress
	h.mu.Unlock()

	var result HandshakeResult
	err := h.gw.Do(ctx, http.MethodPost, "/auth/callback", nil, map[string]string{
		"code":         code,
		"redirect_uri": returnAddress,
	}, &result)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.completedCode = code
	h.result = &result
	h.mu.Unlock()

	h.gw.Session().SetCredential(result.AccessToken, nil)
	return &result, nil
}
