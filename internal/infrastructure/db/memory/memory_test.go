package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthtrack/records-api/internal/core/domain"
)

func TestCredentialStore_TokenRotation(t *testing.T) {
	ctx := context.Background()
	s := NewCredentialStore()
	require.NoError(t, s.Upsert(ctx, &domain.User{Username: "doctor1", PasswordHash: "h", Role: domain.RoleDoctor}))

	require.NoError(t, s.SetToken(ctx, "doctor1", "t1"))
	u, err := s.FindByToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "doctor1", u.Username)

	require.NoError(t, s.SetToken(ctx, "doctor1", "t2"))
	_, err = s.FindByToken(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = s.FindByToken(ctx, "t2")
	assert.NoError(t, err)

	_, err = s.FindByToken(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCredentialStore_UnknownUser(t *testing.T) {
	ctx := context.Background()
	s := NewCredentialStore()

	_, err := s.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, s.SetToken(ctx, "ghost", "t"), domain.ErrUserNotFound)
}

func TestCredentialStore_UpsertKeepsLiveToken(t *testing.T) {
	ctx := context.Background()
	s := NewCredentialStore()
	require.NoError(t, s.Upsert(ctx, &domain.User{Username: "doctor1", PasswordHash: "old", Role: domain.RoleDoctor}))
	require.NoError(t, s.SetToken(ctx, "doctor1", "live"))

	require.NoError(t, s.Upsert(ctx, &domain.User{Username: "doctor1", PasswordHash: "new", Role: domain.RoleDoctor}))

	u, err := s.FindByToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "new", u.PasswordHash)
}

func TestCredentialStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewCredentialStore()
	require.NoError(t, s.Upsert(ctx, &domain.User{Username: "doctor1", Role: domain.RoleDoctor}))

	u, _ := s.FindByUsername(ctx, "doctor1")
	u.Role = "admin"

	again, _ := s.FindByUsername(ctx, "doctor1")
	assert.Equal(t, domain.RoleDoctor, again.Role)
}

func TestProgramRepository(t *testing.T) {
	ctx := context.Background()
	r := NewProgramRepository()

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, r.Create(ctx, &domain.Program{ID: "p1", Name: "TB"}))
	require.NoError(t, r.Create(ctx, &domain.Program{ID: "p2", Name: "Malaria"}))
	assert.Error(t, r.Create(ctx, &domain.Program{ID: "p1", Name: "dup"}))

	list, _ = r.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p2", list[1].ID)

	_, err = r.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
}

func newJane() *domain.Client {
	return &domain.Client{
		ID:               "c1",
		FirstName:        "Jane",
		LastName:         "Doe",
		DateOfBirth:      "1990-01-01",
		ContactInfo:      map[string]string{"phone": "0700000000"},
		EnrolledPrograms: []string{},
	}
}

func TestClientRepository_SearchByName(t *testing.T) {
	ctx := context.Background()
	r := NewClientRepository()
	require.NoError(t, r.Create(ctx, newJane()))
	require.NoError(t, r.Create(ctx, &domain.Client{ID: "c2", FirstName: "John", LastName: "Smith"}))
	require.NoError(t, r.Create(ctx, &domain.Client{ID: "c3", FirstName: "Mary", LastName: "DOEtown"}))

	got, err := r.SearchByName(ctx, "doe")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c3", got[1].ID)

	none, err := r.SearchByName(ctx, "xyz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestClientRepository_AddProgramsSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	r := NewClientRepository()
	require.NoError(t, r.Create(ctx, newJane()))

	c, err := r.AddPrograms(ctx, "c1", []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, c.EnrolledPrograms)

	c, err = r.AddPrograms(ctx, "c1", []string{"p2", "p3", "p1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, c.EnrolledPrograms)

	_, err = r.AddPrograms(ctx, "ghost", []string{"p1"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestClientRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewClientRepository()
	jane := newJane()
	require.NoError(t, r.Create(ctx, jane))
	jane.ContactInfo["phone"] = "mutated"

	c, err := r.FindByID(ctx, "c1")
	require.NoError(t, err)
	c.EnrolledPrograms = append(c.EnrolledPrograms, "sneaky")
	c.ContactInfo["email"] = "x@example.com"

	again, _ := r.FindByID(ctx, "c1")
	assert.Empty(t, again.EnrolledPrograms)
	assert.Equal(t, map[string]string{"phone": "0700000000"}, again.ContactInfo)
}

func TestClientRepository_ConcurrentEnrollment(t *testing.T) {
	ctx := context.Background()
	r := NewClientRepository()
	require.NoError(t, r.Create(ctx, newJane()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.AddPrograms(ctx, "c1", []string{fmt.Sprintf("p%d", i%5)})
		}(i)
	}
	wg.Wait()

	c, _ := r.FindByID(ctx, "c1")
	assert.Len(t, c.EnrolledPrograms, 5)
}

func TestIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewIdempotencyStore(time.Minute)
	s.now = func() time.Time { return now }

	_, ok, err := s.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remember(ctx, "k", "id-1"))
	require.NoError(t, s.Remember(ctx, "k", "id-2"))
	id, ok, _ := s.Lookup(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "id-1", id, "first binding wins")

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Lookup(ctx, "k")
	assert.False(t, ok, "entry should expire")

	require.NoError(t, s.Remember(ctx, "k", "id-3"))
	id, _, _ = s.Lookup(ctx, "k")
	assert.Equal(t, "id-3", id)
}

func TestIdempotencyStore_RememberSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewIdempotencyStore(time.Minute)
	s.now = func() time.Time { return now }
	s.sweepAt = 3

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Remember(ctx, fmt.Sprintf("old-%d", i), "id"))
	}
	now = now.Add(2 * time.Minute)
	require.NoError(t, s.Remember(ctx, "fresh", "id-fresh"))

	assert.Len(t, s.entries, 1)
	id, ok, _ := s.Lookup(ctx, "fresh")
	assert.True(t, ok)
	assert.Equal(t, "id-fresh", id)
}

func TestIdempotencyStore_SweepKeepsLiveEntries(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(time.Hour)
	s.sweepAt = 2

	require.NoError(t, s.Remember(ctx, "a", "1"))
	require.NoError(t, s.Remember(ctx, "b", "2"))
	require.NoError(t, s.Remember(ctx, "c", "3"))

	assert.Len(t, s.entries, 3)
}

func TestIdempotencyStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, defaultIdempotencyTTL, NewIdempotencyStore(0).ttl)
}
