package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/kindredhq/kindred/internal/model"
)

// BirthdateLayout is the only accepted birthdate wire format.
const BirthdateLayout = "2006-01-02"

// ValidateUsername requires at least 3 characters after trimming.
func ValidateUsername(username string) error {
	if len(strings.TrimSpace(username)) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	return nil
}

// ValidateRole checks the role against the closed enum.
func ValidateRole(role string) error {
	for _, r := range model.Roles {
		if role == r {
			return nil
		}
	}
	return errors.New("role must be one of: child, parent, admin")
}

// ParseBirthdate parses a YYYY-MM-DD birthdate. The age calculation is only
// defined for parseable dates, so this runs before any business logic.
func ParseBirthdate(birthdate string) (time.Time, error) {
	t, err := time.Parse(BirthdateLayout, birthdate)
	if err != nil {
		return time.Time{}, errors.New("birthdate must be a valid date in YYYY-MM-DD format")
	}
	return t, nil
}
