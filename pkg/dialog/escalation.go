package dialog

import (
	"context"
	"log/slog"

	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/state"
	"github.com/cascadebot/cascade/pkg/turn"
)

// DefaultThreshold makes escalation fire on the third consecutive
// unresolved turn: the comparison is count >= threshold, tested before
// incrementing.
const DefaultThreshold = 2

// EscalationPolicy decides what an unresolved turn does to the persisted
// failure counter, and when the user gets pointed at human support.
// Every counter mutation is flushed immediately so no later step in the
// same turn can read a stale value.
type EscalationPolicy struct {
	users     *state.Scope
	count     state.IntProperty
	threshold int
	logger    *slog.Logger
}

// PolicyOption configures the EscalationPolicy.
type PolicyOption func(*EscalationPolicy)

// WithThreshold overrides the escalation threshold.
func WithThreshold(threshold int) PolicyOption {
	return func(p *EscalationPolicy) {
		p.threshold = threshold
	}
}

// WithPolicyLogger configures a logger for the policy.
func WithPolicyLogger(logger *slog.Logger) PolicyOption {
	return func(p *EscalationPolicy) {
		p.logger = logger
	}
}

// NewEscalationPolicy creates a policy over the user scope.
func NewEscalationPolicy(users *state.Scope, opts ...PolicyOption) *EscalationPolicy {
	p := &EscalationPolicy{
		users:     users,
		count:     state.NewIntProperty(users, domain.PropertyUnsuccessfulCount),
		threshold: DefaultThreshold,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnResolved zeroes the failure counter and flushes the user scope
// immediately, making the reset durable before anything else runs this
// turn.
func (p *EscalationPolicy) OnResolved(ctx context.Context, tc *turn.Context) error {
	if err := p.count.Set(ctx, tc, 0); err != nil {
		return err
	}
	return p.users.Flush(ctx, tc)
}

// OnUnresolved handles one unresolved utterance. At the threshold it
// sends the escalation message, resets the counter and lets the cycle
// finish; below it, it increments the counter and re-prompts.
func (p *EscalationPolicy) OnUnresolved(ctx context.Context, tc *turn.Context) (domain.Decision, error) {
	count, err := p.count.Get(ctx, tc, 0)
	if err != nil {
		return domain.DecisionReprompted, err
	}

	if count >= p.threshold {
		p.logger.Info("escalating to human support",
			"user_id", tc.Activity.From.ID,
			"failures", count,
		)
		if err := tc.SendActivity(ctx, escalationMessage); err != nil {
			return domain.DecisionEscalated, err
		}
		if err := p.count.Set(ctx, tc, 0); err != nil {
			return domain.DecisionEscalated, err
		}
		if err := p.users.Flush(ctx, tc); err != nil {
			return domain.DecisionEscalated, err
		}
		return domain.DecisionEscalated, nil
	}

	if err := p.count.Set(ctx, tc, count+1); err != nil {
		return domain.DecisionReprompted, err
	}
	if err := p.users.Flush(ctx, tc); err != nil {
		return domain.DecisionReprompted, err
	}
	if err := tc.SendActivity(ctx, repromptMessage); err != nil {
		return domain.DecisionReprompted, err
	}
	return domain.DecisionReprompted, nil
}
