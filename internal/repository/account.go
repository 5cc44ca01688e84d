package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/kindredhq/kindred/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already in use")
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	ByID(ctx context.Context, id string) (*model.Account, error)
	ByEmail(ctx context.Context, email string) (*model.Account, error)
	ParentByIssuedCode(ctx context.Context, code string) (*model.Account, error)
	Delete(ctx context.Context, id string) error
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (id, username, email, password_hash, role, birthdate, issued_linkage_code, required_linkage_code, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.Role, account.Birthdate, account.IssuedLinkageCode,
		account.RequiredLinkageCode, account.CreatedAt)
	if err != nil {
		// Unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *accountRepository) ByID(ctx context.Context, id string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE id = $1`

	err := r.db.GetContext(ctx, account, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE email = $1`

	err := r.db.GetContext(ctx, account, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) ParentByIssuedCode(ctx context.Context, code string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE issued_linkage_code = $1 AND role = $2`

	err := r.db.GetContext(ctx, account, query, code, model.RoleParent)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAccountNotFound
	}

	return nil
}
