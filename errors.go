package supernova

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNotFound indicates a key is absent from the KV store.
	ErrNotFound = errors.New("key not found")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)
