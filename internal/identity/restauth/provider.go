// Package restauth is an identity.Provider client for a hosted
// Firebase-Auth-compatible REST API.
package restauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ganot/rosterdesk/internal/identity"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com"

// Config configures the REST provider.
type Config struct {
	APIKey string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string

	HTTPClient *http.Client
}

// Provider implements identity.Provider against the hosted API. The
// auth-state stream is client-side: successful calls emit the resulting user
// to subscribers, sign-out emits absent.
type Provider struct {
	identity.Broadcaster

	config Config
	client *http.Client
	logger *slog.Logger
}

// New creates a new REST provider.
func New(config Config, logger *slog.Logger) *Provider {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{config: config, client: client, logger: logger}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateAccount registers a new account via the signUp endpoint.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (*identity.User, error) {
	if err := identity.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	user, err := p.post(ctx, "accounts:signUp", email, password)
	if err != nil {
		return nil, err
	}
	p.EmitChange(user)
	return user, nil
}

// VerifyCredentials signs in via the signInWithPassword endpoint.
func (p *Provider) VerifyCredentials(ctx context.Context, email, password string) (*identity.User, error) {
	user, err := p.post(ctx, "accounts:signInWithPassword", email, password)
	if err != nil {
		return nil, err
	}
	p.EmitChange(user)
	return user, nil
}

// SignOut emits an absent user. The hosted API keeps no server-side session
// for password sign-in; signing out is a client-side state change.
func (p *Provider) SignOut(ctx context.Context) error {
	p.EmitChange(nil)
	return nil
}

func (p *Provider) post(ctx context.Context, endpoint, email, password string) (*identity.User, error) {
	body, err := json.Marshal(credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", p.config.BaseURL, endpoint, p.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity api request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading identity api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.apiError(resp.StatusCode, data)
	}

	var account accountResponse
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("decoding identity api response: %w", err)
	}

	return &identity.User{ID: account.LocalID, Email: account.Email}, nil
}

// apiError maps the hosted API's error codes onto the provider sentinels so
// callers handle both providers identically.
func (p *Provider) apiError(status int, data []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return fmt.Errorf("identity api: unexpected status %d", status)
	}

	message := payload.Error.Message
	p.logger.Debug("identity api error", "status", status, "message", message)

	switch {
	case message == "EMAIL_EXISTS":
		return identity.ErrEmailTaken
	case message == "INVALID_EMAIL":
		return identity.ErrInvalidEmail
	case strings.HasPrefix(message, "WEAK_PASSWORD"):
		return identity.ErrWeakPassword
	case message == "EMAIL_NOT_FOUND",
		message == "INVALID_PASSWORD",
		message == "INVALID_LOGIN_CREDENTIALS":
		return identity.ErrInvalidCredentials
	default:
		return fmt.Errorf("identity api: %s", message)
	}
}
