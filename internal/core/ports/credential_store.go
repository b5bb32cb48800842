package ports

import (
	"context"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// CredentialStore holds user records and their current session token.
type CredentialStore interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByToken returns the user whose current token equals token, or
	// domain.ErrUserNotFound.
	FindByToken(ctx context.Context, token string) (*domain.User, error)
	// SetToken replaces the user's token; the previous one stops matching.
	SetToken(ctx context.Context, username, token string) error
	// Upsert creates the user or refreshes its hash and role, keeping any live token.
	Upsert(ctx context.Context, user *domain.User) error
}
