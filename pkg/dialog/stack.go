package dialog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/state"
	"github.com/cascadebot/cascade/pkg/turn"
)

// dialogState is the persisted shape of a conversation's dialog stack.
type dialogState struct {
	Stack []domain.Frame `json:"stack" mapstructure:"stack"`
}

// Engine owns the per-conversation dialog stack. It is the only component
// that mutates the stack: each turn it resumes the top frame at its stored
// step index, or pushes a fresh intro frame when the stack is empty, and
// runs steps until one suspends.
type Engine struct {
	waterfall     *Waterfall
	conversations *state.Scope
	stack         state.ObjectProperty
	logger        *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets a structured logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a stack engine persisting frames in the conversation
// scope.
func NewEngine(waterfall *Waterfall, conversations *state.Scope, opts ...EngineOption) *Engine {
	e := &Engine{
		waterfall:     waterfall,
		conversations: conversations,
		stack:         state.NewObjectProperty(conversations, domain.PropertyDialogState),
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunTurn drives the dialog for one inbound message. The resulting stack
// is buffered in the conversation scope; the turn coordinator flushes it
// at end of turn. Frame replacement is atomic from the caller's view — no
// partial stack is ever observable between turns.
func (e *Engine) RunTurn(ctx context.Context, tc *turn.Context) error {
	var ds dialogState
	if _, err := e.stack.Get(ctx, tc, &ds); err != nil {
		return fmt.Errorf("failed to load dialog stack: %w", err)
	}

	input := tc.Activity.Text
	var step int

	if len(ds.Stack) == 0 {
		ds.Stack = append(ds.Stack, domain.NewFrame(ID, domain.FrameOptions{}))
		step = StepIntro
		e.logger.Debug("starting new dialog cycle",
			"conversation_id", tc.Activity.ConversationID,
		)
	} else {
		step = ds.Stack[len(ds.Stack)-1].Step
		e.logger.Debug("resuming dialog",
			"conversation_id", tc.Activity.ConversationID,
			"step", step,
		)
	}

	for {
		top := &ds.Stack[len(ds.Stack)-1]
		res, err := e.waterfall.run(ctx, step, &StepContext{
			Turn:    tc,
			Options: top.Options,
			Input:   input,
		})
		if err != nil {
			return err
		}

		switch res.status {
		case statusWaiting:
			top.Step = res.resume
			return e.stack.Set(ctx, tc, ds)

		case statusNext:
			step++
			input = "" // consumed by the step that just ran
			if step > StepFinal {
				// Ran off the end of the waterfall: pop the frame. Final
				// always replaces, so this only happens if steps change.
				ds.Stack = ds.Stack[:len(ds.Stack)-1]
				return e.stack.Set(ctx, tc, ds)
			}

		case statusReplace:
			ds.Stack[len(ds.Stack)-1] = domain.NewFrame(ID, res.options)
			step = StepIntro
			input = ""
		}
	}
}

// StackDepth reports the current stack depth for a turn, for tests and
// introspection.
func (e *Engine) StackDepth(ctx context.Context, tc *turn.Context) (int, error) {
	var ds dialogState
	if _, err := e.stack.Get(ctx, tc, &ds); err != nil {
		return 0, err
	}
	return len(ds.Stack), nil
}
