// Package flow implements the client-side protocol for the VibeSwipe API:
// an authenticated request gateway, the authorization handshake, the swipe
// deck state machine, and the generation wizards.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Kind classifies a gateway failure for machine handling.
type Kind string

const (
	// KindUnauthorized means the session credential was absent, expired,
	// or rejected.
	KindUnauthorized Kind = "unauthorized"

	// KindValidation means the request was malformed and can be corrected
	// locally.
	KindValidation Kind = "validation"

	// KindUpstream means the server or its provider failed; the detail
	// carries the upstream text verbatim.
	KindUpstream Kind = "upstream_failure"

	// KindNetwork means the request never completed; retrying may help.
	KindNetwork Kind = "network"

	// KindUnknown covers unclassifiable failures.
	KindUnknown Kind = "unknown"
)

// Error is a typed gateway failure: a machine-usable kind plus the
// human-readable detail from the server's error envelope.
type Error struct {
	Kind   Kind
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

// kindForStatus maps an HTTP status onto the failure taxonomy.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusBadRequest,
		status == http.StatusUnprocessableEntity,
		status == http.StatusNotFound:
		return KindValidation
	case status >= 500:
		return KindUpstream
	default:
		return KindUnknown
	}
}

// Gateway performs authenticated requests against the API, translating
// failures into typed errors. It holds the session and, on an unauthorized
// response with refresh material present, performs exactly one
// refresh-and-retry before surfacing the error.
type Gateway struct {
	baseURL string
	http    *http.Client
	session *Session
}

// NewGateway creates a gateway for the API at baseURL.
func NewGateway(baseURL string, session *Session) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
		session: session,
	}
}

// Session returns the gateway's session.
func (g *Gateway) Session() *Session {
	return g.session
}

// Do performs a request and decodes the JSON response into out (skipped
// when out is nil). body, when non-nil, is sent as JSON. query may be nil.
func (g *Gateway) Do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	resp, err := g.send(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}

	if apiErr, ok := resp.(*Error); ok {
		if apiErr.Kind == KindUnauthorized && g.session.CanRefresh() {
			if refreshErr := g.session.RefreshCredential(ctx); refreshErr == nil {
				resp, err = g.send(ctx, method, endpoint, query, body)
				if err != nil {
					return err
				}
			}
		}
	}

	switch v := resp.(type) {
	case *Error:
		return v
	case []byte:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(v, out); err != nil {
			return &Error{Kind: KindUpstream, Detail: "unexpected response shape"}
		}
		return nil
	}
	return &Error{Kind: KindUnknown}
}

// send performs one HTTP round trip. It returns either the raw success
// body ([]byte) or a typed *Error; transport failures come back as a
// regular error of kind network.
func (g *Gateway) send(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error) {
	u := g.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Detail: "could not encode request"}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Detail: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Detail: "request failed, check your connection and retry"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Detail: "response cut short, retry"}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode}
	var envelope struct {
		Detail string `json:"detail"`
	}
	if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil && envelope.Detail != "" {
		apiErr.Detail = envelope.Detail
	} else {
		apiErr.Kind = KindUnknown
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr, nil
}
