package metrics_test

import (
	"context"
	"testing"

	"github.com/cascadebot/cascade/internal/metrics"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHooks_IncrementCounters(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())
	hooks := m.Hooks()

	event := &domain.TurnEvent{ConversationID: "c1", UserID: "u1"}

	hooks.OnTurnStart(ctx, event)
	hooks.OnTurnStart(ctx, event)
	hooks.OnReprompt(ctx, event)
	hooks.OnEscalation(ctx, event)
	hooks.OnWelcome(ctx, event)
	hooks.OnIntentResolved(ctx, &domain.IntentEvent{
		TurnEvent: *event,
		Intent:    domain.IntentSetupBoxDrive,
	})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Turns))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Reprompts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Escalations))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Welcomes))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.Intents.WithLabelValues(string(domain.IntentSetupBoxDrive)),
	))
}

func TestNew_RegistersOnGatherer(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics.New(registry)

	families, err := registry.Gather()
	assert.NoError(t, err)
	// Vec counters with no observations don't gather; the plain counters do.
	assert.GreaterOrEqual(t, len(families), 4)
}
