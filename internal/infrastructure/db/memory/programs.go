package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// ProgramRepository is the in-memory Program Registry. List preserves insertion order.
type ProgramRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Program
	order []string
}

func NewProgramRepository() *ProgramRepository {
	return &ProgramRepository{byID: make(map[string]*domain.Program)}
}

func (r *ProgramRepository) Create(_ context.Context, p *domain.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("program %s already exists", p.ID)
	}
	clone := *p
	r.byID[p.ID] = &clone
	r.order = append(r.order, p.ID)
	return nil
}

func (r *ProgramRepository) FindByID(_ context.Context, id string) (*domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *ProgramRepository) List(_ context.Context) ([]*domain.Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Program, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.byID[id]
		out = append(out, &clone)
	}
	return out, nil
}
