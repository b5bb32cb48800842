package memory

import (
	"context"
	"sync"
	"time"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	// Remember sweeps expired entries once the map holds this many keys.
	defaultSweepThreshold = 1024
)

type idempotencyEntry struct {
	id      string
	expires time.Time
}

// IdempotencyStore maps idempotency keys to record ids. Expired entries are
// dropped on lookup, and swept in bulk by Remember once the map grows past
// the sweep threshold.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	sweepAt int
	entries map[string]idempotencyEntry
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{
		ttl:     ttl,
		now:     time.Now,
		sweepAt: defaultSweepThreshold,
		entries: make(map[string]idempotencyEntry),
	}
}

func (s *IdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.id, true, nil
}

func (s *IdempotencyStore) Remember(_ context.Context, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expires) {
		return nil
	}
	if len(s.entries) >= s.sweepAt {
		s.sweep(now)
	}
	s.entries[key] = idempotencyEntry{id: id, expires: now.Add(s.ttl)}
	return nil
}

// sweep drops every expired entry. Callers hold s.mu.
func (s *IdempotencyStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}
