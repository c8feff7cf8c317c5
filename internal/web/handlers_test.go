package web

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kesslermatics/vibeswipe/internal/auth"
)

func TestIssueToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", "vibeswipe", 30*time.Minute)
	h := &Handlers{issuer: issuer}
	id := uuid.New()

	rec := httptest.NewRecorder()
	h.issueToken(rec, id)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 1800 {
		t.Errorf("expires_in = %d, want 1800", resp.ExpiresIn)
	}

	subject, err := issuer.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if subject != id.String() {
		t.Errorf("subject = %q, want %q", subject, id)
	}
}
