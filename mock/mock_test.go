package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/supernova"
	"github.com/fwojciec/supernova/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragments(t *testing.T) {
	t.Parallel()

	t.Run("yields fragments then EOF", func(t *testing.T) {
		t.Parallel()

		s := mock.Fragments([]string{"a", "b"}, nil)

		frag, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, "a", frag)

		frag, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, "b", frag)

		_, err = s.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("terminates with the given error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		s := mock.Fragments([]string{"a"}, boom)

		_, err := s.Next()
		require.NoError(t, err)

		_, err = s.Next()
		assert.Equal(t, boom, err)
	})

	t.Run("close is nil-safe", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mock.Fragments(nil, nil).Close())
	})
}

func TestCompleter_CompleteNilSafe(t *testing.T) {
	t.Parallel()

	text, err := (&mock.Completer{}).Complete(context.Background(), "m", "p")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestKV(t *testing.T) {
	t.Parallel()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := (&mock.KV{}).Get(context.Background(), "absent")
		assert.ErrorIs(t, err, supernova.ErrNotFound)
	})

	t.Run("stores and returns copies", func(t *testing.T) {
		t.Parallel()

		kv := &mock.KV{}
		value := []byte("v1")
		require.NoError(t, kv.Set(context.Background(), "k", value))
		value[0] = 'X'

		got, err := kv.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got, "stored value is insulated from caller mutation")

		got[0] = 'Y'
		again, err := kv.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), again)
	})

	t.Run("injected errors surface", func(t *testing.T) {
		t.Parallel()

		kv := &mock.KV{GetErr: assert.AnError, SetErr: assert.AnError}
		_, err := kv.Get(context.Background(), "k")
		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorIs(t, kv.Set(context.Background(), "k", nil), assert.AnError)
	})
}
