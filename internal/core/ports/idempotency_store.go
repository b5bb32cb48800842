package ports

import "context"

// IdempotencyStore remembers which record a client-supplied key produced.
type IdempotencyStore interface {
	// Lookup returns the stored id and true when key was seen before.
	Lookup(ctx context.Context, key string) (string, bool, error)
	// Remember binds key to id. An existing binding is left untouched.
	Remember(ctx context.Context, key, id string) error
}
