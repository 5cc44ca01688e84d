package validation

import (
	"errors"
	"strings"
	"unicode"
)

const passwordSymbols = "!@#$%^&*"

// ValidatePassword enforces the registration complexity rule: at least 10
// characters with an upper-case letter, a digit, and a symbol.
func ValidatePassword(password string) error {
	if len(password) < 10 {
		return errors.New("password must be at least 10 characters")
	}

	// bcrypt silently truncates beyond 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	hasUpper := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain an upper-case letter")
	}
	if !hasDigit {
		return errors.New("password must contain a digit")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return errors.New("password must contain a symbol (!@#$%^&*)")
	}

	return nil
}
