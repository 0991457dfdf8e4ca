package identity

import (
	"context"
	"time"
)

// User is the provider's view of an authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is the stored form of a user, including credential material.
// Providers never hand it out; they return the public User view.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Provider is the external identity service. Implementations push auth-state
// changes to subscribers: a non-nil user after a successful sign-in or
// sign-up, nil after sign-out.
type Provider interface {
	// Subscribe registers callbacks for auth-state changes and provider
	// errors, and returns a function releasing the subscription. Callbacks
	// fire synchronously with the state change that caused them.
	Subscribe(onChange func(user *User), onError func(err error)) (unsubscribe func())

	// CreateAccount registers a new account and signs it in.
	CreateAccount(ctx context.Context, email, password string) (*User, error)

	// VerifyCredentials checks email/password and signs the account in.
	VerifyCredentials(ctx context.Context, email, password string) (*User, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error
}

// User returns the public view of the account.
func (a *Account) User() *User {
	return &User{ID: a.ID, Email: a.Email, CreatedAt: a.CreatedAt}
}
