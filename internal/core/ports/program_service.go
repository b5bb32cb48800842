package ports

import (
	"context"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// CreateProgramInput carries all data needed to create a health program.
type CreateProgramInput struct {
	Name           string
	Description    string
	CreatedBy      string
	IdempotencyKey string
}

// ProgramService defines use-case operations for health programs.
type ProgramService interface {
	CreateProgram(ctx context.Context, input CreateProgramInput) (*domain.Program, error)
	ListPrograms(ctx context.Context) ([]*domain.Program, error)
}
