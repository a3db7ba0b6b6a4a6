package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Abcdef1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Abcdef1" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "Abcdef1") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "Abcdef2") {
		t.Fatal("wrong password accepted")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "Abcdef1", true},
		{"no uppercase or digit", "abcdef", false},
		{"no uppercase", "abc123", false},
		{"no digit", "Abcdef", false},
		{"too short", "Ab1", false},
		{"empty", "", false},
		{"all rules met exactly", "Pass12", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			details := ValidatePasswordPolicy(tt.password)
			if ok := len(details) == 0; ok != tt.wantOK {
				t.Fatalf("ValidatePasswordPolicy(%q) = %v, want ok=%v", tt.password, details, tt.wantOK)
			}
		})
	}
}
