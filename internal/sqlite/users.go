package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/repository"
)

// UserRepository implements repository.UserRepository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new account. Email addresses are unique.
func (r *UserRepository) Create(ctx context.Context, account *identity.Account) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		normalizeEmail(account.Email),
		account.PasswordHash,
		account.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, normalizeEmail(email)))
}

// GetByID retrieves an account by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*identity.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanAccount(row *sql.Row) (*identity.Account, error) {
	var account identity.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
