package ports

import (
	"context"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// ClientRepository is the Client Registry.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	// FindByID returns domain.ErrClientNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	// SearchByName matches query case-insensitively as a substring of the
	// first or last name. An empty result is not an error.
	SearchByName(ctx context.Context, query string) ([]*domain.Client, error)
	// AddPrograms appends the ids the client is not yet enrolled in, keeping
	// their order, and returns the updated client.
	AddPrograms(ctx context.Context, clientID string, programIDs []string) (*domain.Client, error)
}
