package ports

import (
	"context"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// ProgramRepository is the Program Registry.
type ProgramRepository interface {
	Create(ctx context.Context, p *domain.Program) error
	// FindByID returns domain.ErrProgramNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*domain.Program, error)
	// List returns every program, in insertion order where the backend keeps one.
	List(ctx context.Context) ([]*domain.Program, error)
}
