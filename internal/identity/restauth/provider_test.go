package restauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/identity/restauth"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *restauth.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return restauth.New(restauth.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, nil)
}

func writeAPIError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": 400, "message": message},
	})
}

func TestCreateAccount(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:signUp", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "new@example.com", req.Email)

		json.NewEncoder(w).Encode(map[string]string{
			"localId": "abc123",
			"email":   req.Email,
		})
	})

	var emitted []*identity.User
	provider.Subscribe(func(user *identity.User) {
		emitted = append(emitted, user)
	}, nil)

	user, err := provider.CreateAccount(context.Background(), "new@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "abc123", user.ID)
	require.Equal(t, "new@example.com", user.Email)
	require.Equal(t, []*identity.User{user}, emitted)
}

func TestCreateAccount_EmailExists(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, "EMAIL_EXISTS")
	})

	_, err := provider.CreateAccount(context.Background(), "taken@example.com", "secret1")
	require.ErrorIs(t, err, identity.ErrEmailTaken)
}

func TestCreateAccount_LocalValidationSkipsRequest(t *testing.T) {
	called := false
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := provider.CreateAccount(context.Background(), "a@b.com", "short")
	require.ErrorIs(t, err, identity.ErrWeakPassword)
	require.False(t, called)
}

func TestVerifyCredentials(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"localId": "abc123",
			"email":   "a@b.com",
		})
	})

	user, err := provider.VerifyCredentials(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "abc123", user.ID)
}

func TestVerifyCredentials_ErrorMapping(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"INVALID_LOGIN_CREDENTIALS", identity.ErrInvalidCredentials},
		{"INVALID_PASSWORD", identity.ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", identity.ErrInvalidCredentials},
		{"INVALID_EMAIL", identity.ErrInvalidEmail},
		{"WEAK_PASSWORD : Password should be at least 6 characters", identity.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, tt.message)
			})

			_, err := provider.VerifyCredentials(context.Background(), "a@b.com", "wrongpass")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyCredentials_UnknownError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, "QUOTA_EXCEEDED")
	})

	_, err := provider.VerifyCredentials(context.Background(), "a@b.com", "secret1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "QUOTA_EXCEEDED")
}

func TestSignOut_EmitsAbsentUser(t *testing.T) {
	provider := restauth.New(restauth.Config{APIKey: "test-key"}, nil)

	var emitted []*identity.User
	provider.Subscribe(func(user *identity.User) {
		emitted = append(emitted, user)
	}, nil)

	require.NoError(t, provider.SignOut(context.Background()))
	require.Equal(t, []*identity.User{nil}, emitted)
}
