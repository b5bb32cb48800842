package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

type ProgramService struct {
	repo   ports.ProgramRepository
	keys   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewProgramService wires the Program Registry. keys may be nil, in which case
// Idempotency-Key values are ignored.
func NewProgramService(repo ports.ProgramRepository, keys ports.IdempotencyStore, logger zerolog.Logger) *ProgramService {
	return &ProgramService{repo: repo, keys: keys, logger: logger}
}

// CreateProgram stores a new program. A repeated idempotency key from the same
// creator returns the program created the first time.
func (s *ProgramService) CreateProgram(ctx context.Context, input ports.CreateProgramInput) (*domain.Program, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, domain.InvalidInput("Name and description are required")
	}

	key := idempotencyKey("program", input.CreatedBy, input.IdempotencyKey)
	if existing := s.replay(ctx, key); existing != nil {
		return existing, nil
	}

	program := &domain.Program{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.repo.Create(ctx, program); err != nil {
		s.logger.Error().Err(err).Msg("failed to create program")
		return nil, err
	}
	remember(ctx, s.keys, key, program.ID, s.logger)

	s.logger.Info().Str("program_id", program.ID).Str("created_by", program.CreatedBy).Msg("program created")
	return program, nil
}

func (s *ProgramService) replay(ctx context.Context, key string) *domain.Program {
	id := lookup(ctx, s.keys, key, s.logger)
	if id == "" {
		return nil
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrProgramNotFound) {
			s.logger.Warn().Err(err).Str("program_id", id).Msg("idempotent replay lookup failed")
		}
		return nil
	}
	s.logger.Info().Str("program_id", id).Msg("idempotent replay")
	return existing
}

// ListPrograms returns all programs. An empty registry yields an empty slice.
func (s *ProgramService) ListPrograms(ctx context.Context) ([]*domain.Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []*domain.Program{}
	}
	return programs, nil
}
