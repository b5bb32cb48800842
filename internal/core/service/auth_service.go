package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

// AuthService implements login and bearer-token authentication.
type AuthService struct {
	store  ports.CredentialStore
	tokens TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	if tokens == nil {
		tokens = NewOpaqueIssuer()
	}
	return &AuthService{store: store, tokens: tokens, log: log}
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// SeedUser makes sure a doctor account with the given bcrypt hash exists.
func (s *AuthService) SeedUser(ctx context.Context, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return domain.InvalidInput("seed user needs a username and a password hash")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return fmt.Errorf("seed user %s: %w", username, err)
	}
	user := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         domain.RoleDoctor,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Upsert(ctx, user); err != nil {
		return fmt.Errorf("seed user %s: %w", username, err)
	}
	s.log.Info().Str("username", username).Msg("user seeded")
	return nil
}

// Login verifies the password and issues a fresh token, invalidating any
// token issued earlier to the same user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrMissingCredentials
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("username", username).Msg("login for unknown user")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("username", username).Msg("login rejected: wrong password")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	if err := s.store.SetToken(ctx, user.Username, token); err != nil {
		return "", fmt.Errorf("login: store token: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}

// Authenticate resolves the user currently holding token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}
	if err := s.tokens.Verify(token); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.store.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}
