package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/supernova"
	"github.com/fwojciec/supernova/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV(t *testing.T) {
	t.Parallel()

	t.Run("missing key returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		kv, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer kv.Close()

		_, err = kv.Get(context.Background(), "absent")
		assert.ErrorIs(t, err, supernova.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		kv, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(t, kv.Set(context.Background(), "k", []byte("v1")))
		value, err := kv.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), value)
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		t.Parallel()

		kv, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(t, kv.Set(context.Background(), "k", []byte("v1")))
		require.NoError(t, kv.Set(context.Background(), "k", []byte("v2")))

		value, err := kv.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), value)
	})

	t.Run("values survive reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.db")

		kv, err := sqlite.Open(path)
		require.NoError(t, err)
		require.NoError(t, kv.Set(context.Background(), "k", []byte("persisted")))
		require.NoError(t, kv.Close())

		reopened, err := sqlite.Open(path)
		require.NoError(t, err)
		defer reopened.Close()

		value, err := reopened.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("persisted"), value)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "deeper", "test.db")
		kv, err := sqlite.Open(path)
		require.NoError(t, err)
		defer kv.Close()

		require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	})
}
