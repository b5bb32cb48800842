package ports

import (
	"context"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// RegisterClientInput carries all data needed to register a client.
// ContactInfo and MedicalHistory are optional.
type RegisterClientInput struct {
	FirstName      string
	LastName       string
	DateOfBirth    string
	ContactInfo    map[string]string
	MedicalHistory string
	RegisteredBy   string
	IdempotencyKey string
}

// ClientSummary is the reduced view returned by search.
type ClientSummary struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	RegisterClient(ctx context.Context, input RegisterClientInput) (*domain.Client, error)
	SearchClients(ctx context.Context, query string) ([]ClientSummary, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	EnrollClient(ctx context.Context, clientID string, programIDs []string) (*domain.Client, error)
}
