package auth

import (
	"context"
	"errors"
	"fmt"

	"movieBrowser/models"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned when no user matches the credentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialStore looks a user up by username and plaintext password.
type CredentialStore interface {
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// Authenticator turns login attempts into identities. It persists nothing;
// keeping the result is the caller's job.
type Authenticator struct {
	users  CredentialStore
	secret string
}

func NewAuthenticator(users CredentialStore, secret string) *Authenticator {
	return &Authenticator{users: users, secret: secret}
}

// Authenticate returns the matching identity, or nil on any mismatch.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	return a.users.FindByCredentials(ctx, username, password)
}

// Login authenticates and signs a session token for the identity.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}
	u, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", fmt.Errorf("authenticate: %w", err)
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := IssueToken(a.secret, u)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}
