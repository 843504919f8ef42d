package dialog_test

import (
	"context"
	"testing"

	"github.com/cascadebot/cascade/internal/adapters/memory"
	"github.com/cascadebot/cascade/pkg/dialog"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/cascadebot/cascade/pkg/state"
	"github.com/cascadebot/cascade/pkg/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyTurn(rec *recorder) *turn.Context {
	return turn.NewContext(&domain.Activity{
		Type:           domain.ActivityMessage,
		ConversationID: "c1",
		From:           domain.ChannelAccount{ID: "u1"},
		Recipient:      domain.ChannelAccount{ID: "bot"},
	}, rec)
}

func persistedCount(t *testing.T, storage ports.Storage) int {
	t.Helper()
	doc, err := storage.Read(context.Background(), "user/u1")
	require.NoError(t, err)
	n, ok := doc[domain.PropertyUnsuccessfulCount].(int)
	require.True(t, ok, "counter not stored as int: %#v", doc[domain.PropertyUnsuccessfulCount])
	return n
}

func TestEscalationPolicy_OnResolvedFlushesImmediately(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	users := state.UserScope(storage)
	policy := dialog.NewEscalationPolicy(users)

	tc := policyTurn(&recorder{})
	require.NoError(t, policy.OnResolved(ctx, tc))

	// Durable without an end-of-turn flush.
	assert.Equal(t, 0, persistedCount(t, storage))
}

func TestEscalationPolicy_IncrementsBelowThreshold(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	users := state.UserScope(storage)
	policy := dialog.NewEscalationPolicy(users)

	rec := &recorder{}
	tc := policyTurn(rec)

	decision, err := policy.OnUnresolved(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionReprompted, decision)
	assert.Equal(t, 1, persistedCount(t, storage))

	decision, err = policy.OnUnresolved(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionReprompted, decision)
	assert.Equal(t, 2, persistedCount(t, storage))

	require.Len(t, rec.sent, 2)
	assert.Contains(t, rec.sent[0], "try asking in a different way")
}

func TestEscalationPolicy_EscalatesAtThreshold(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	require.NoError(t, storage.Write(ctx, "user/u1", map[string]any{
		domain.PropertyUnsuccessfulCount: 2,
	}))
	users := state.UserScope(storage)
	policy := dialog.NewEscalationPolicy(users)

	rec := &recorder{}
	decision, err := policy.OnUnresolved(ctx, policyTurn(rec))
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionEscalated, decision)

	require.Len(t, rec.sent, 1)
	assert.Contains(t, rec.sent[0], "IT Helpdesk")

	// Counter resets durably so the next sub-loop starts clean.
	assert.Equal(t, 0, persistedCount(t, storage))
}

func TestEscalationPolicy_CustomThreshold(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	users := state.UserScope(storage)
	policy := dialog.NewEscalationPolicy(users, dialog.WithThreshold(1))

	rec := &recorder{}
	tc := policyTurn(rec)

	decision, err := policy.OnUnresolved(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionReprompted, decision)

	decision, err = policy.OnUnresolved(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionEscalated, decision)
}

func TestEscalationPolicy_CoercesCorruptCounter(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	require.NoError(t, storage.Write(ctx, "user/u1", map[string]any{
		domain.PropertyUnsuccessfulCount: "garbage",
	}))
	users := state.UserScope(storage)
	policy := dialog.NewEscalationPolicy(users)

	// Corrupt counter reads as 0: reprompt, not escalate.
	decision, err := policy.OnUnresolved(ctx, policyTurn(&recorder{}))
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionReprompted, decision)
	assert.Equal(t, 1, persistedCount(t, storage))
}
