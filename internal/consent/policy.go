package consent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kindredhq/kindred/internal/model"
)

var (
	ErrMissingConsent  = errors.New("users under 15 must be created with a parent code")
	ErrInvalidConsent  = errors.New("parent code is invalid or does not exist")
	ErrConsentRequired = errors.New("parent code required or incorrect")
)

// ParentLookup reports whether an existing parent account issued the given
// linkage code.
type ParentLookup func(ctx context.Context, code string) (bool, error)

// Evaluate decides whether a registration is admissible and which linkage
// code, if any, to persist on the new account.
//
// Parents always self-issue a fresh code; the minor gate never applies to
// role parent. All other applicants under ConsentAge must present a code
// issued by an existing parent account, and the presented code is persisted
// unchanged.
func Evaluate(ctx context.Context, now time.Time, role string, birthdate time.Time, suppliedCode string, parents ParentLookup) (*string, error) {
	if role == model.RoleParent {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate parent code: %w", err)
		}
		return &code, nil
	}

	if Age(birthdate, now) >= ConsentAge {
		return nil, nil
	}

	if suppliedCode == "" {
		return nil, ErrMissingConsent
	}

	ok, err := parents(ctx, suppliedCode)
	if err != nil {
		return nil, fmt.Errorf("failed to verify parent code: %w", err)
	}
	if !ok {
		return nil, ErrInvalidConsent
	}

	return &suppliedCode, nil
}

// RequireAtLogin re-applies the consent gate on every login: an account
// under ConsentAge with a stored linkage code must present that exact code.
// The check keys on age alone, not role.
func RequireAtLogin(now, birthdate time.Time, storedCode *string, suppliedCode string) error {
	if Age(birthdate, now) >= ConsentAge {
		return nil
	}
	if storedCode == nil || *storedCode == "" {
		return nil
	}
	if suppliedCode == "" || suppliedCode != *storedCode {
		return ErrConsentRequired
	}
	return nil
}
