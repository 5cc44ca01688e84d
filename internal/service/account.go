package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kindredhq/kindred/internal/consent"
	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrAccountNotFound    = errors.New("account not found")
)

// RegisterInput is the request-scoped applicant, already shape-validated by
// the handler layer.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Role       string
	Birthdate  time.Time
	ParentCode string
}

// AccountService drives registration, login, and deletion by combining the
// consent policy with the credential and persistence collaborators.
type AccountService struct {
	accounts repository.AccountRepository
	auth     *AuthService
	now      func() time.Time
}

func NewAccountService(accounts repository.AccountRepository, auth *AuthService) *AccountService {
	return &AccountService{
		accounts: accounts,
		auth:     auth,
		now:      time.Now,
	}
}

// Register creates an account and returns it with a fresh session token.
// The email uniqueness pre-check runs before the insert; the storage-layer
// unique constraint remains the hard guard against the concurrent-register
// race, surfacing as ErrDuplicateEmail either way.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.Account, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	_, err := s.accounts.ByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	code, err := consent.Evaluate(ctx, s.now(), input.Role, input.Birthdate, input.ParentCode, s.parentCodeExists)
	if err != nil {
		return nil, "", err
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Birthdate:    input.Birthdate,
		CreatedAt:    s.now(),
	}

	// Parents self-issue their code; minors store the code they presented.
	if code != nil {
		if account.Role == model.RoleParent {
			account.IssuedLinkageCode = code
		} else {
			account.RequiredLinkageCode = code
		}
	}

	err = s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.auth.GenerateJWT(account)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("account created", "account_id", account.ID, "role", account.Role)
	return account, token, nil
}

// Login verifies credentials, re-applies the consent gate, and issues a
// fresh session token. Unknown email and wrong password collapse into one
// error to avoid account enumeration.
func (s *AccountService) Login(ctx context.Context, email, password, parentCode string) (*model.Account, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	account, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get account: %w", err)
	}

	err = s.auth.ComparePassword(password, account.PasswordHash)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	err = consent.RequireAtLogin(s.now(), account.Birthdate, account.LinkageCode(), parentCode)
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateJWT(account)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	slog.Info("account authenticated", "account_id", account.ID)
	return account, token, nil
}

// DeleteAccount removes the caller's own account. The id must come from a
// verified token, never from request data.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	err := s.accounts.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("account deleted", "account_id", id)
	return nil
}

func (s *AccountService) parentCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := s.accounts.ParentByIssuedCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
