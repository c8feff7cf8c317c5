package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "vibeswipe", time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if subject != "user-123" {
		t.Errorf("Verify() subject = %q, want %q", subject, "user-123")
	}
}

func TestTokenIssuer_VerifyErrors(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "vibeswipe", time.Hour)

	expired := NewTokenIssuer("test-secret", "vibeswipe", -time.Minute)
	expiredToken, err := expired.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	otherSecret := NewTokenIssuer("other-secret", "vibeswipe", time.Hour)
	wrongSecretToken, err := otherSecret.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	otherIssuer := NewTokenIssuer("test-secret", "someone-else", time.Hour)
	wrongIssuerToken, err := otherIssuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired token", expiredToken, ErrTokenExpired},
		{"garbage token", "not-a-token", ErrTokenMalformed},
		{"empty token", "", ErrTokenMalformed},
		{"wrong secret", wrongSecretToken, ErrTokenInvalid},
		{"wrong issuer", wrongIssuerToken, ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
