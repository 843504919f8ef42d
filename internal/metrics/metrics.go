// Package metrics exposes prometheus counters for the turn engine, wired
// in through domain.LifecycleHooks so the core stays free of metric
// types.
package metrics

import (
	"context"

	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's counters.
type Metrics struct {
	Turns       prometheus.Counter
	Intents     *prometheus.CounterVec
	Reprompts   prometheus.Counter
	Escalations prometheus.Counter
	Welcomes    prometheus.Counter
}

// New creates and registers the counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cascade_turns_total",
			Help: "Inbound activities processed.",
		}),
		Intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_intents_resolved_total",
			Help: "Recognized intents routed, by label.",
		}, []string{"intent"}),
		Reprompts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cascade_reprompts_total",
			Help: "Unresolved turns answered with a reprompt.",
		}),
		Escalations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cascade_escalations_total",
			Help: "Failure sub-loops terminated by escalation.",
		}),
		Welcomes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cascade_welcomes_total",
			Help: "One-shot welcome cards sent.",
		}),
	}
	reg.MustRegister(m.Turns, m.Intents, m.Reprompts, m.Escalations, m.Welcomes)
	return m
}

// Hooks returns lifecycle hooks that increment the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(context.Context, *domain.TurnEvent) {
			m.Turns.Inc()
		},
		OnIntentResolved: func(_ context.Context, e *domain.IntentEvent) {
			m.Intents.WithLabelValues(string(e.Intent)).Inc()
		},
		OnReprompt: func(context.Context, *domain.TurnEvent) {
			m.Reprompts.Inc()
		},
		OnEscalation: func(context.Context, *domain.TurnEvent) {
			m.Escalations.Inc()
		},
		OnWelcome: func(context.Context, *domain.TurnEvent) {
			m.Welcomes.Inc()
		},
	}
}
