package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// ClientRepository is the in-memory Client Registry. Searches scan every
// client in registration order.
type ClientRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Client
	order []string
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{byID: make(map[string]*domain.Client)}
}

func (r *ClientRepository) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return fmt.Errorf("client %s already exists", c.ID)
	}
	r.byID[c.ID] = c.Clone()
	r.order = append(r.order, c.ID)
	return nil
}

func (r *ClientRepository) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return c.Clone(), nil
}

func (r *ClientRepository) SearchByName(_ context.Context, query string) ([]*domain.Client, error) {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Client{}
	for _, id := range r.order {
		c := r.byID[id]
		if strings.Contains(strings.ToLower(c.FirstName), q) || strings.Contains(strings.ToLower(c.LastName), q) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (r *ClientRepository) AddPrograms(_ context.Context, clientID string, programIDs []string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	for _, id := range programIDs {
		if !c.IsEnrolledIn(id) {
			c.EnrolledPrograms = append(c.EnrolledPrograms, id)
		}
	}
	return c.Clone(), nil
}
