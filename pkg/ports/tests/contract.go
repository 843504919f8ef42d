package tests

import (
	"context"
	"testing"
	"time"

	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStorageContract runs a suite of tests verifying that a Storage
// implementation adheres to the interface contract.
func RunStorageContract(t *testing.T, storage ports.Storage) {
	ctx := context.Background()
	key := "user/contract-" + time.Now().Format("20060102150405")

	t.Run("Write and Read", func(t *testing.T) {
		doc := map[string]any{
			domain.PropertyWelcomed:          true,
			domain.PropertyUnsuccessfulCount: 2,
		}

		err := storage.Write(ctx, key, doc)
		require.NoError(t, err, "Write should not return error")

		loaded, err := storage.Read(ctx, key)
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, true, loaded[domain.PropertyWelcomed])
		// JSON persistence may turn ints into float64/json.Number; only
		// presence is part of the contract. Coercion is the accessor's job.
		assert.NotNil(t, loaded[domain.PropertyUnsuccessfulCount])
	})

	t.Run("Overwrite replaces document", func(t *testing.T) {
		require.NoError(t, storage.Write(ctx, key, map[string]any{"a": "1", "b": "2"}))
		require.NoError(t, storage.Write(ctx, key, map[string]any{"a": "3"}))

		loaded, err := storage.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "3", loaded["a"])
		assert.NotContains(t, loaded, "b", "old fields must not survive an overwrite")
	})

	t.Run("Read non-existent", func(t *testing.T) {
		_, err := storage.Read(ctx, "conversation/never-written")
		assert.ErrorIs(t, err, domain.ErrScopeNotFound)
	})

	t.Run("List contains key", func(t *testing.T) {
		keys, err := storage.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, key)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, key))

		_, err := storage.Read(ctx, key)
		assert.ErrorIs(t, err, domain.ErrScopeNotFound)

		// Deleting again is not an error.
		assert.NoError(t, storage.Delete(ctx, key))
	})

	t.Run("Isolation", func(t *testing.T) {
		doc := map[string]any{"n": "seed"}
		require.NoError(t, storage.Write(ctx, "user/iso", doc))

		// Mutating the caller's map after Write must not affect the store.
		doc["n"] = "mutated"
		loaded, err := storage.Read(ctx, "user/iso")
		require.NoError(t, err)
		assert.Equal(t, "seed", loaded["n"])

		// Mutating a loaded map must not affect later reads.
		loaded["n"] = "mutated-again"
		reloaded, err := storage.Read(ctx, "user/iso")
		require.NoError(t, err)
		assert.Equal(t, "seed", reloaded["n"])

		require.NoError(t, storage.Delete(ctx, "user/iso"))
	})
}
