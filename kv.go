package supernova

import "context"

// Keys used in the durable KV store.
const (
	// KeySessions holds the serialized session collection.
	KeySessions = "gemini-chat-sessions"

	// KeyPremium holds the entitlement flag ("true" when granted).
	KeyPremium = "supernova-premium"
)

// KV is a durable key-value byte store. Get returns ErrNotFound when the
// key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Codec serializes the whole session collection for persistence. The
// collection is always written atomically as one value; sessions are
// never partially persisted.
type Codec interface {
	MarshalSessions(sessions []Session) ([]byte, error)
	UnmarshalSessions(data []byte) ([]Session, error)
}
