package auth

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercase passthrough", "user@example.com", "user@example.com", false},
		{"uppercase is lowered", "User@Example.COM", "user@example.com", false},
		{"surrounding whitespace trimmed", "  user@example.com  ", "user@example.com", false},
		{"empty", "", "", true},
		{"missing domain", "user@", "", true},
		{"not an address", "not-an-email", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"long enough", "correcthorse", nil},
		{"exactly minimum", "12345678", nil},
		{"multibyte runes count as one", "pässwörd", nil},
		{"too short", "short", ErrWeakPassword},
		{"empty", "", ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correcthorse" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword(hash, "correcthorse") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "wronghorse") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("not-a-hash", "correcthorse") {
		t.Error("CheckPassword() accepted an invalid hash")
	}
}
