// Package mock provides test doubles for supernova interfaces using
// function fields.
package mock

import (
	"context"
	"io"
	"sync"

	"github.com/fwojciec/supernova"
)

// Interface compliance checks.
var (
	_ supernova.Completer = (*Completer)(nil)
	_ supernova.Stream    = (*Stream)(nil)
	_ supernova.KV        = (*KV)(nil)
)

// Completer is a test double for supernova.Completer. Set StreamFn before
// calling Stream; CompleteFn is nil-safe and returns empty text so tests
// that don't care about title synthesis need no setup.
type Completer struct {
	StreamFn   func(ctx context.Context, req supernova.Request) (supernova.Stream, error)
	CompleteFn func(ctx context.Context, model, prompt string) (string, error)
}

// Stream delegates to StreamFn.
func (c *Completer) Stream(ctx context.Context, req supernova.Request) (supernova.Stream, error) {
	return c.StreamFn(ctx, req)
}

// Complete delegates to CompleteFn. Returns empty text when CompleteFn is
// not set.
func (c *Completer) Complete(ctx context.Context, model, prompt string) (string, error) {
	if c.CompleteFn == nil {
		return "", nil
	}
	return c.CompleteFn(ctx, model, prompt)
}

// Stream is a test double for supernova.Stream. Set NextFn for custom
// behavior, or use [Fragments] for the common scripted case. CloseFn is
// nil-safe because test code commonly calls defer stream.Close().
type Stream struct {
	NextFn  func() (string, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (string, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Fragments returns a Stream that yields the given fragments in order and
// then terminates with err (io.EOF when err is nil).
func Fragments(fragments []string, err error) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (string, error) {
			if i < len(fragments) {
				frag := fragments[i]
				i++
				return frag, nil
			}
			if err != nil {
				return "", err
			}
			return "", io.EOF
		},
	}
}

// KV is an in-memory supernova.KV. The zero value is ready to use. Set
// GetErr/SetErr to inject failures.
type KV struct {
	mu     sync.Mutex
	data   map[string][]byte
	GetErr error
	SetErr error
}

// Get returns the stored value or supernova.ErrNotFound.
func (kv *KV) Get(_ context.Context, key string) ([]byte, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.GetErr != nil {
		return nil, kv.GetErr
	}
	value, ok := kv.data[key]
	if !ok {
		return nil, supernova.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of value under key.
func (kv *KV) Set(_ context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.SetErr != nil {
		return kv.SetErr
	}
	if kv.data == nil {
		kv.data = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	kv.data[key] = stored
	return nil
}
