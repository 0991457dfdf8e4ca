package repository

import (
	"context"

	"github.com/ganot/rosterdesk/internal/identity"
)

// UserRepository manages account persistence for the embedded identity
// provider.
type UserRepository interface {
	Create(ctx context.Context, account *identity.Account) error
	GetByEmail(ctx context.Context, email string) (*identity.Account, error)
	GetByID(ctx context.Context, id string) (*identity.Account, error)
}
