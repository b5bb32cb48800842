package ports

import (
	"context"

	"github.com/healthtrack/records-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
