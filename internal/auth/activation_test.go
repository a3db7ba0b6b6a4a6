package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// flip swaps the final character for a different base64url character so the
// tampered token is guaranteed to differ.
func flip(c byte) string {
	if c == 'A' {
		return "B"
	}
	return "A"
}

func TestSignerRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signer := NewSigner("test-secret")
	signer.Now = func() time.Time { return now }

	token := signer.Sign("jane@example.com")

	// Still valid well inside the window.
	now = now.Add(30 * time.Minute)
	payload, err := signer.Verify(token, ActivationTokenMaxAge)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if payload != "jane@example.com" {
		t.Fatalf("payload = %q", payload)
	}
}

func TestSignerExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signer := NewSigner("test-secret")
	signer.Now = func() time.Time { return now }

	token := signer.Sign("jane@example.com")

	now = now.Add(61 * time.Minute)
	_, err := signer.Verify(token, ActivationTokenMaxAge)
	if !errors.Is(err, ErrExpiredSignature) {
		t.Fatalf("err = %v, want ErrExpiredSignature", err)
	}
}

func TestSignerTampered(t *testing.T) {
	signer := NewSigner("test-secret")
	token := signer.Sign("jane@example.com")

	tests := []struct {
		name  string
		token string
	}{
		{"altered payload", b64.EncodeToString([]byte("mallory@example.com")) + token[strings.Index(token, "."):]},
		{"altered signature", token[:len(token)-1] + flip(token[len(token)-1])},
		{"missing segment", token[:strings.LastIndex(token, ".")]},
		{"not a token", "garbage"},
		{"empty", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Verify(tt.token, ActivationTokenMaxAge)
			if !errors.Is(err, ErrBadSignature) {
				t.Fatalf("err = %v, want ErrBadSignature", err)
			}
		})
	}
}

func TestSignerWrongSecret(t *testing.T) {
	token := NewSigner("secret-a").Sign("jane@example.com")
	_, err := NewSigner("secret-b").Verify(token, ActivationTokenMaxAge)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("err = %v, want ErrBadSignature", err)
	}
}

func TestExpiredCheckedAfterSignature(t *testing.T) {
	// A tampered token that is also old must report bad signature, never
	// expired.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signer := NewSigner("test-secret")
	signer.Now = func() time.Time { return now }

	token := signer.Sign("jane@example.com")
	tampered := token[:len(token)-1] + flip(token[len(token)-1])

	now = now.Add(2 * time.Hour)
	_, err := signer.Verify(tampered, ActivationTokenMaxAge)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("err = %v, want ErrBadSignature", err)
	}
}
