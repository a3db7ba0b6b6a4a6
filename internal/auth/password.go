package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"resumegen-backend/internal/respond"
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePasswordPolicy checks a candidate password against the account
// policy: at least 6 characters, at least one uppercase letter and at least
// one digit. Returns one detail per violated rule.
func ValidatePasswordPolicy(plain string) []respond.FieldDetail {
	var details []respond.FieldDetail
	if len(plain) < 6 {
		details = append(details, respond.FieldDetail{Field: "password", Issue: "must be at least 6 characters long"})
	}
	var hasUpper, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		details = append(details, respond.FieldDetail{Field: "password", Issue: "must contain an uppercase letter"})
	}
	if !hasDigit {
		details = append(details, respond.FieldDetail{Field: "password", Issue: "must contain a digit"})
	}
	return details
}
