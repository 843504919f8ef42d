package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/cascadebot/cascade/pkg/state"
	"github.com/cascadebot/cascade/pkg/turn"
)

// ID is the registered name of the main waterfall dialog.
const ID = "main"

// Step indices of the waterfall. A frame's Step field holds the index to
// run when the conversation resumes.
const (
	StepIntro = iota
	StepAct
	StepFinal
)

type stepStatus int

const (
	// statusWaiting suspends the turn; the frame resumes at result.resume
	// with the next inbound message as its input.
	statusWaiting stepStatus = iota

	// statusNext advances to the following step within the same turn.
	statusNext

	// statusReplace swaps the frame for a fresh intro frame and keeps
	// executing in the same turn.
	statusReplace
)

type stepResult struct {
	status  stepStatus
	resume  int
	options domain.FrameOptions
}

// StepContext carries what one step invocation needs: the turn, the
// frame's start options, and the user input being delivered (empty when
// the step was reached by falling through, not by resumption).
type StepContext struct {
	Turn    *turn.Context
	Options domain.FrameOptions
	Input   string
}

// Waterfall is the Intro → Act → Final step machine. Intro prompts and
// suspends, Act resolves the reply (or loops on reprompts), Final restarts
// the cycle. It never mutates the dialog stack itself; it only reports
// step results to the stack engine.
type Waterfall struct {
	classifier ports.Classifier
	router     *Router
	policy     *EscalationPolicy
	fallback   ports.FallbackDialog
	count      state.IntProperty
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// WaterfallOption configures the Waterfall.
type WaterfallOption func(*Waterfall)

// WithFallback sets the degraded-mode fallback dialog.
func WithFallback(fallback ports.FallbackDialog) WaterfallOption {
	return func(w *Waterfall) {
		w.fallback = fallback
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) WaterfallOption {
	return func(w *Waterfall) {
		w.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) WaterfallOption {
	return func(w *Waterfall) {
		w.logger = logger
	}
}

// NewWaterfall wires the step machine to its collaborators. The users
// scope backs the coarse counter reset Intro performs on entry.
func NewWaterfall(classifier ports.Classifier, router *Router, policy *EscalationPolicy, users *state.Scope, opts ...WaterfallOption) *Waterfall {
	w := &Waterfall{
		classifier: classifier,
		router:     router,
		policy:     policy,
		count:      state.NewIntProperty(users, domain.PropertyUnsuccessfulCount),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Waterfall) run(ctx context.Context, step int, sc *StepContext) (stepResult, error) {
	switch step {
	case StepIntro:
		return w.introStep(ctx, sc)
	case StepAct:
		return w.actStep(ctx, sc)
	case StepFinal:
		return w.finalStep(ctx, sc)
	default:
		return stepResult{}, fmt.Errorf("dialog %q has no step %d", ID, step)
	}
}

// introStep opens a cycle: it zeroes the failure counter, prompts, and
// suspends. In degraded mode it warns once and falls through to Act with
// no prompt.
func (w *Waterfall) introStep(ctx context.Context, sc *StepContext) (stepResult, error) {
	if !w.classifier.IsConfigured() {
		if err := sc.Turn.SendActivity(ctx, notConfiguredWarning); err != nil {
			return stepResult{}, err
		}
		return stepResult{status: statusNext}, nil
	}

	// Coarse reset on every cycle entry, regardless of how the previous
	// cycle ended. This wipes any count a reprompt sub-loop accumulated,
	// so the threshold is only reachable within a single Act sub-loop.
	if err := w.count.Set(ctx, sc.Turn, 0); err != nil {
		return stepResult{}, err
	}

	prompt := sc.Options.RestartMessage
	if prompt == "" {
		prompt = defaultIntroPrompt
	}
	if err := sc.Turn.SendActivity(ctx, prompt); err != nil {
		return stepResult{}, err
	}
	return stepResult{status: statusWaiting, resume: StepAct}, nil
}

// actStep consumes the user's reply to the intro prompt. Recognized
// intents are routed and the cycle advances; unresolved ones go through
// the escalation policy, which either re-prompts (the frame stays here)
// or escalates (the cycle finishes).
func (w *Waterfall) actStep(ctx context.Context, sc *StepContext) (stepResult, error) {
	if !w.classifier.IsConfigured() {
		if w.fallback == nil {
			return stepResult{}, fmt.Errorf("classifier not configured and no fallback dialog registered")
		}
		if err := w.fallback.Run(ctx, sc.Input, sc.Turn); err != nil {
			return stepResult{}, err
		}
		// The fallback owns degraded-mode turns; stay here for the next one.
		return stepResult{status: statusWaiting, resume: StepAct}, nil
	}

	intent, err := w.classifier.Classify(ctx, sc.Input)
	if err != nil {
		return stepResult{}, fmt.Errorf("classifier failed: %w", err)
	}
	w.logger.Debug("utterance classified",
		"intent", string(intent),
		"conversation_id", sc.Turn.Activity.ConversationID,
	)

	if intent.Recognized() {
		if err := w.policy.OnResolved(ctx, sc.Turn); err != nil {
			return stepResult{}, err
		}
		if _, err := w.router.Route(ctx, sc.Turn, intent); err != nil {
			return stepResult{}, err
		}
		w.fireIntentResolved(ctx, sc.Turn, intent)
		return stepResult{status: statusNext}, nil
	}

	decision, err := w.policy.OnUnresolved(ctx, sc.Turn)
	if err != nil {
		return stepResult{}, err
	}
	if decision == domain.DecisionReprompted {
		w.fireTurnEvent(ctx, sc.Turn, domain.EventReprompt, w.hooks.OnReprompt)
		return stepResult{status: statusWaiting, resume: StepAct}, nil
	}
	w.fireTurnEvent(ctx, sc.Turn, domain.EventEscalation, w.hooks.OnEscalation)
	return stepResult{status: statusNext}, nil
}

// finalStep always restarts the cycle with the fixed restart prompt. The
// replacement frame executes immediately, so the machine never halts for
// an active conversation.
func (w *Waterfall) finalStep(ctx context.Context, sc *StepContext) (stepResult, error) {
	return stepResult{
		status:  statusReplace,
		options: domain.FrameOptions{RestartMessage: restartPrompt},
	}, nil
}

func (w *Waterfall) fireIntentResolved(ctx context.Context, tc *turn.Context, intent domain.Intent) {
	if w.hooks.OnIntentResolved == nil {
		return
	}
	w.hooks.OnIntentResolved(ctx, &domain.IntentEvent{
		TurnEvent: domain.TurnEvent{
			Timestamp:      time.Now(),
			Type:           domain.EventIntentResolved,
			ConversationID: tc.Activity.ConversationID,
			UserID:         tc.Activity.From.ID,
		},
		Intent: intent,
	})
}

func (w *Waterfall) fireTurnEvent(ctx context.Context, tc *turn.Context, kind domain.EventType, hook func(context.Context, *domain.TurnEvent)) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.TurnEvent{
		Timestamp:      time.Now(),
		Type:           kind,
		ConversationID: tc.Activity.ConversationID,
		UserID:         tc.Activity.From.ID,
	})
}
