package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kesslermatics/vibeswipe/internal/auth"
	"github.com/kesslermatics/vibeswipe/internal/generate"
)

func TestWriteMappedError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "spotify not linked is unauthorized",
			err:        generate.ErrSpotifyNotLinked,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not enough tracks is a bad request",
			err:        fmt.Errorf("daily drive: %w", generate.ErrNotEnoughTracks),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not enough resolved is a bad request",
			err:        generate.ErrNotEnoughResolved,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "redirect not allowed is a bad request",
			err:        auth.ErrRedirectNotAllowed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "weak password is unprocessable",
			err:        auth.ErrWeakPassword,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "anything else is an upstream failure",
			err:        errors.New("spotify said no"),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeMappedError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("body is not the error envelope: %v", err)
			}
			if resp.Detail == "" {
				t.Error("expected a non-empty detail")
			}
		})
	}
}

func TestWriteMappedError_UpstreamDetailVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	writeMappedError(rec, errors.New("Gemini API error: 503"))

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Detail != "Gemini API error: 503" {
		t.Errorf("detail = %q, want the upstream text unmodified", resp.Detail)
	}
}
