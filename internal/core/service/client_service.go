package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

type ClientService struct {
	clients  ports.ClientRepository
	programs ports.ProgramRepository
	keys     ports.IdempotencyStore
	logger   zerolog.Logger
	now      func() time.Time
}

func NewClientService(
	clients ports.ClientRepository,
	programs ports.ProgramRepository,
	keys ports.IdempotencyStore,
	logger zerolog.Logger,
) *ClientService {
	return &ClientService{
		clients:  clients,
		programs: programs,
		keys:     keys,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterClient stores a new client with an empty enrollment list.
func (s *ClientService) RegisterClient(ctx context.Context, input ports.RegisterClientInput) (*domain.Client, error) {
	if input.FirstName == "" || input.LastName == "" || input.DateOfBirth == "" {
		return nil, domain.InvalidInput("Missing required fields")
	}

	key := idempotencyKey("client", input.RegisteredBy, input.IdempotencyKey)
	if id := lookup(ctx, s.keys, key, s.logger); id != "" {
		existing, err := s.clients.FindByID(ctx, id)
		if err == nil {
			s.logger.Info().Str("client_id", id).Msg("idempotent replay")
			return existing, nil
		}
		if !errors.Is(err, domain.ErrClientNotFound) {
			s.logger.Warn().Err(err).Str("client_id", id).Msg("idempotent replay lookup failed")
		}
	}

	contact := make(map[string]string, len(input.ContactInfo))
	for k, v := range input.ContactInfo {
		contact[k] = v
	}

	client := &domain.Client{
		ID:               uuid.NewString(),
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DateOfBirth:      input.DateOfBirth,
		ContactInfo:      contact,
		MedicalHistory:   input.MedicalHistory,
		EnrolledPrograms: []string{},
		RegisteredBy:     input.RegisteredBy,
		RegisteredAt:     s.now().UTC(),
	}
	if err := s.clients.Create(ctx, client); err != nil {
		s.logger.Error().Err(err).Msg("failed to register client")
		return nil, err
	}
	remember(ctx, s.keys, key, client.ID, s.logger)

	s.logger.Info().Str("client_id", client.ID).Str("registered_by", client.RegisteredBy).Msg("client registered")
	return client, nil
}

// SearchClients returns summaries of every client whose first or last name
// contains query, ignoring case.
func (s *ClientService) SearchClients(ctx context.Context, query string) ([]ports.ClientSummary, error) {
	if query == "" {
		return nil, domain.InvalidInput("Search query is required")
	}

	matches, err := s.clients.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ClientSummary, 0, len(matches))
	for _, c := range matches {
		out = append(out, ports.ClientSummary{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			DateOfBirth: c.DateOfBirth,
		})
	}
	return out, nil
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// EnrollClient adds the client to every listed program. Either all ids are
// known and the new ones are appended, or nothing changes.
func (s *ClientService) EnrollClient(ctx context.Context, clientID string, programIDs []string) (*domain.Client, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	if len(programIDs) == 0 {
		return nil, domain.InvalidInput("Program IDs are required")
	}

	seen := make(map[string]struct{}, len(programIDs))
	ids := make([]string, 0, len(programIDs))
	for _, id := range programIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if _, err := s.programs.FindByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrProgramNotFound) {
				return nil, &domain.MissingProgramError{ID: id}
			}
			return nil, err
		}
		ids = append(ids, id)
	}

	client, err := s.clients.AddPrograms(ctx, clientID, ids)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", clientID).Strs("program_ids", ids).Msg("client enrolled")
	return client, nil
}
