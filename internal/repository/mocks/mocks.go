package mocks

import (
	"context"

	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*identity.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*identity.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}
