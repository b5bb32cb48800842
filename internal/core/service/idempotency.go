package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/healthtrack/records-api/internal/core/ports"
)

// idempotencyKey scopes a client-supplied key to a record kind and caller.
// It returns "" when the caller sent no key.
func idempotencyKey(kind, user, key string) string {
	if key == "" {
		return ""
	}
	return kind + ":" + user + ":" + key
}

// lookup is best effort: a store failure is logged and treated as a miss.
func lookup(ctx context.Context, store ports.IdempotencyStore, key string, log zerolog.Logger) string {
	if store == nil || key == "" {
		return ""
	}
	id, ok, err := store.Lookup(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return ""
	}
	if !ok {
		return ""
	}
	return id
}

func remember(ctx context.Context, store ports.IdempotencyStore, key, id string, log zerolog.Logger) {
	if store == nil || key == "" {
		return
	}
	if err := store.Remember(ctx, key, id); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}
