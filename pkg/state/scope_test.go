package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cascadebot/cascade/internal/adapters/memory"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/cascadebot/cascade/pkg/state"
	"github.com/cascadebot/cascade/pkg/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTurn() *turn.Context {
	activity := &domain.Activity{
		Type:           domain.ActivityMessage,
		ConversationID: "c1",
		From:           domain.ChannelAccount{ID: "u1"},
		Recipient:      domain.ChannelAccount{ID: "bot"},
	}
	return turn.NewContext(activity, ports.ResponderFunc(func(context.Context, string) error {
		return nil
	}))
}

func TestScope_BufferedUntilFlush(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	users := state.UserScope(storage)

	tc := newTurn()
	require.NoError(t, users.Set(ctx, tc, "field", "pending"))

	// Not durable yet.
	_, err := storage.Read(ctx, "user/u1")
	assert.ErrorIs(t, err, domain.ErrScopeNotFound)

	// Visible to reads within the same turn.
	v, ok, err := users.Get(ctx, tc, "field")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "pending", v)

	require.NoError(t, users.Flush(ctx, tc))
	doc, err := storage.Read(ctx, "user/u1")
	require.NoError(t, err)
	assert.Equal(t, "pending", doc["field"])
}

func TestScope_MultipleFlushesOverwrite(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	users := state.UserScope(storage)

	tc := newTurn()
	require.NoError(t, users.Set(ctx, tc, "n", 1))
	require.NoError(t, users.Flush(ctx, tc))

	require.NoError(t, users.Set(ctx, tc, "n", 2))
	require.NoError(t, users.Flush(ctx, tc))

	doc, err := storage.Read(ctx, "user/u1")
	require.NoError(t, err)
	assert.Equal(t, 2, doc["n"])
}

func TestScope_FlushWithoutChangesIsNoop(t *testing.T) {
	ctx := context.Background()
	storage := &countingStorage{Storage: memory.NewStore()}
	conversations := state.ConversationScope(storage)

	tc := newTurn()
	// Untouched scope: nothing to write.
	require.NoError(t, conversations.Flush(ctx, tc))
	assert.Equal(t, 0, storage.writes)

	require.NoError(t, conversations.Set(ctx, tc, "x", "y"))
	require.NoError(t, conversations.Flush(ctx, tc))
	require.NoError(t, conversations.Flush(ctx, tc)) // clean again
	assert.Equal(t, 1, storage.writes)
}

func TestScope_FailedFlushKeepsBuffer(t *testing.T) {
	ctx := context.Background()
	storage := &countingStorage{Storage: memory.NewStore(), fail: true}
	users := state.UserScope(storage)

	tc := newTurn()
	require.NoError(t, users.Set(ctx, tc, "n", 7))
	assert.Error(t, users.Flush(ctx, tc))

	// Backing store untouched, buffer intact; a retried flush commits.
	storage.fail = false
	require.NoError(t, users.Flush(ctx, tc))
	doc, err := storage.Read(ctx, "user/u1")
	require.NoError(t, err)
	assert.Equal(t, 7, doc["n"])
}

func TestScope_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	conversations := state.ConversationScope(storage)
	users := state.UserScope(storage)

	tc := newTurn()
	require.NoError(t, conversations.Set(ctx, tc, "a", "conv"))
	require.NoError(t, users.Set(ctx, tc, "a", "user"))

	// Flushing one scope must not commit the other.
	require.NoError(t, users.Flush(ctx, tc))
	_, err := storage.Read(ctx, "conversation/c1")
	assert.ErrorIs(t, err, domain.ErrScopeNotFound)

	doc, err := storage.Read(ctx, "user/u1")
	require.NoError(t, err)
	assert.Equal(t, "user", doc["a"])
}

func TestIntProperty_Coercion(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()

	cases := []struct {
		name   string
		stored any
		want   int
	}{
		{"int", 3, 3},
		{"float64 from json", float64(4), 4},
		{"non-numeric string", "not-a-number", 0},
		{"bool garbage", true, 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, storage.Write(ctx, "user/u1", map[string]any{
				domain.PropertyUnsuccessfulCount: tt.stored,
			}))

			users := state.UserScope(storage)
			count := state.NewIntProperty(users, domain.PropertyUnsuccessfulCount)

			got, err := count.Get(ctx, newTurn(), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoolProperty_Default(t *testing.T) {
	ctx := context.Background()
	users := state.UserScope(memory.NewStore())
	welcomed := state.NewBoolProperty(users, domain.PropertyWelcomed)

	tc := newTurn()
	got, err := welcomed.Get(ctx, tc, false)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, welcomed.Set(ctx, tc, true))
	got, err = welcomed.Get(ctx, tc, false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestObjectProperty_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	conversations := state.ConversationScope(storage)
	stack := state.NewObjectProperty(conversations, domain.PropertyDialogState)

	type holder struct {
		Frames []domain.Frame `mapstructure:"frames"`
	}

	tc := newTurn()
	require.NoError(t, stack.Set(ctx, tc, holder{Frames: []domain.Frame{
		{Dialog: "main", Step: 1, Options: domain.FrameOptions{RestartMessage: "again?"}},
	}}))
	require.NoError(t, conversations.Flush(ctx, tc))

	// Fresh turn: decode what storage committed.
	var out holder
	found, err := stack.Get(ctx, newTurn(), &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, out.Frames, 1)
	assert.Equal(t, "main", out.Frames[0].Dialog)
	assert.Equal(t, 1, out.Frames[0].Step)
	assert.Equal(t, "again?", out.Frames[0].Options.RestartMessage)
}

// countingStorage counts writes and can be told to fail them.
type countingStorage struct {
	ports.Storage
	writes int
	fail   bool
}

func (c *countingStorage) Write(ctx context.Context, key string, document map[string]any) error {
	if c.fail {
		return errors.New("storage unavailable")
	}
	c.writes++
	return c.Storage.Write(ctx, key, document)
}
