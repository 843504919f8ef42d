package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cascadebot/cascade/internal/adapters/redis"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	tests.RunStorageContract(t, store)
}

func TestRedisStore_TTLExpiresDocuments(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestStore(t, redis.WithTTL(time.Minute))

	require.NoError(t, store.Write(ctx, "conversation/c1", map[string]any{"x": "y"}))

	_, err := store.Read(ctx, "conversation/c1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Read(ctx, "conversation/c1")
	assert.ErrorIs(t, err, domain.ErrScopeNotFound)
}

func TestRedisStore_ListPrunesExpiredIndexEntries(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestStore(t, redis.WithTTL(time.Minute))

	require.NoError(t, store.Write(ctx, "conversation/old", map[string]any{"x": "y"}))

	// Backdate the index entry past its expiry; List must drop it.
	mr.FastForward(2 * time.Minute)
	_, err := mr.ZAdd("cascade:state:index", 1, "conversation/old")
	require.NoError(t, err)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keys, "conversation/old")
}

func TestRedisStore_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	mr, store := newTestStore(t, redis.WithPrefix("acme:"))

	require.NoError(t, store.Write(ctx, "user/u1", map[string]any{"a": "b"}))
	assert.True(t, mr.Exists("acme:user/u1"))
}
