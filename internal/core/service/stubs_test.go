package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/healthtrack/records-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

var errStoreDown = errors.New("store down")

// ---------------------------------------------------------------------------
// Credential store
// ---------------------------------------------------------------------------

type stubCredentialStore struct {
	users       map[string]*domain.User
	setTokenErr error
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{users: make(map[string]*domain.User)}
}

func (s *stubCredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubCredentialStore) FindByToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Token != "" && u.Token == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubCredentialStore) SetToken(_ context.Context, username, token string) error {
	if s.setTokenErr != nil {
		return s.setTokenErr
	}
	u, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Token = token
	return nil
}

func (s *stubCredentialStore) Upsert(_ context.Context, user *domain.User) error {
	if existing, ok := s.users[user.Username]; ok {
		existing.PasswordHash = user.PasswordHash
		existing.Role = user.Role
		return nil
	}
	clone := *user
	s.users[user.Username] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Program and client registries
// ---------------------------------------------------------------------------

type stubProgramRepo struct {
	byID      map[string]*domain.Program
	order     []string
	createErr error
	lookups   []string // ids passed to FindByID, in call order
}

func newStubProgramRepo() *stubProgramRepo {
	return &stubProgramRepo{byID: make(map[string]*domain.Program)}
}

func (r *stubProgramRepo) Create(_ context.Context, p *domain.Program) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubProgramRepo) FindByID(_ context.Context, id string) (*domain.Program, error) {
	r.lookups = append(r.lookups, id)
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProgramRepo) List(_ context.Context) ([]*domain.Program, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	var out []*domain.Program
	for _, id := range r.order {
		clone := *r.byID[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProgramRepo) add(id, name string) {
	r.byID[id] = &domain.Program{ID: id, Name: name, Description: name + " description", CreatedBy: "doctor1"}
	r.order = append(r.order, id)
}

type stubClientRepo struct {
	byID      map[string]*domain.Client
	order     []string
	addCalls  int
	createErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[c.ID] = c.Clone()
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return c.Clone(), nil
}

func (r *stubClientRepo) SearchByName(_ context.Context, query string) ([]*domain.Client, error) {
	q := strings.ToLower(query)
	var out []*domain.Client
	for _, id := range r.order {
		c := r.byID[id]
		if strings.Contains(strings.ToLower(c.FirstName), q) || strings.Contains(strings.ToLower(c.LastName), q) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (r *stubClientRepo) AddPrograms(_ context.Context, clientID string, programIDs []string) (*domain.Client, error) {
	r.addCalls++
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

func (r *stubClientRepo) add(id, first, last string) {
	r.byID[id] = &domain.Client{ID: id, FirstName: first, LastName: last, DateOfBirth: "1990-01-01", EnrolledPrograms: []string{}}
	r.order = append(r.order, id)
}

// ---------------------------------------------------------------------------
// Idempotency store
// ---------------------------------------------------------------------------

type stubIdempotencyStore struct {
	entries map[string]string
	err     error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{entries: make(map[string]string)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	id, ok := s.entries[key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, key, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.entries[key]; !ok {
		s.entries[key] = id
	}
	return nil
}
