package handler

import (
	"github.com/healthtrack/records-api/internal/core/domain"
	"github.com/healthtrack/records-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerClientRequest, registeredBy, idempotencyKey string) ports.RegisterClientInput {
	return ports.RegisterClientInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		ContactInfo:    req.ContactInfo,
		MedicalHistory: req.MedicalHistory,
		RegisteredBy:   registeredBy,
		IdempotencyKey: idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func toProgramResponses(programs []*domain.Program) []programResponse {
	out := make([]programResponse, len(programs))
	for i, p := range programs {
		out[i] = programResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedBy:   p.CreatedBy,
		}
	}
	return out
}

// toClientResponse never emits null for the contact map or enrollment list.
func toClientResponse(c *domain.Client) clientResponse {
	contact := c.ContactInfo
	if contact == nil {
		contact = map[string]string{}
	}
	enrolled := c.EnrolledPrograms
	if enrolled == nil {
		enrolled = []string{}
	}
	return clientResponse{
		ID:                    c.ID,
		FirstName:             c.FirstName,
		LastName:              c.LastName,
		DateOfBirth:           c.DateOfBirth,
		ContactInfo:           contact,
		MedicalHistory:        c.MedicalHistory,
		EnrolledPrograms:      enrolled,
		RegisteredBy:          c.RegisteredBy,
		RegistrationTimestamp: c.RegisteredAt.UTC(),
	}
}

func toSummaryResponses(items []ports.ClientSummary) []clientSummaryResponse {
	out := make([]clientSummaryResponse, len(items))
	for i, s := range items {
		out[i] = clientSummaryResponse{
			ID:          s.ID,
			FirstName:   s.FirstName,
			LastName:    s.LastName,
			DateOfBirth: s.DateOfBirth,
		}
	}
	return out
}
