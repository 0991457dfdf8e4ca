// Package localauth is an embedded identity provider backed by the local
// users table. It exists so the dashboard works without a hosted identity
// service configured.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Provider implements identity.Provider over a user repository with bcrypt
// password hashing.
type Provider struct {
	identity.Broadcaster

	users  repository.UserRepository
	logger *slog.Logger
}

// New creates a new local provider.
func New(users repository.UserRepository, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{users: users, logger: logger}
}

// CreateAccount registers a new account and emits it as the signed-in user.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (*identity.User, error) {
	if err := identity.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	existing, err := p.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking existing account: %w", err)
	}
	if existing != nil {
		return nil, identity.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &identity.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := p.users.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, identity.ErrEmailTaken
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	p.logger.Info("account created", "user_id", account.ID)

	user := account.User()
	p.EmitChange(user)
	return user, nil
}

// VerifyCredentials checks email/password and emits the signed-in user.
// A missing account and a wrong password are indistinguishable to the caller.
func (p *Provider) VerifyCredentials(ctx context.Context, email, password string) (*identity.User, error) {
	account, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return nil, identity.ErrInvalidCredentials
	}

	user := account.User()
	p.EmitChange(user)
	return user, nil
}

// SignOut emits an absent user. There is no server-side session to tear down.
func (p *Provider) SignOut(ctx context.Context) error {
	p.EmitChange(nil)
	return nil
}
