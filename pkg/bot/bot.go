// Package bot contains the turn coordinator: it receives one inbound
// activity, drives the dialog stack engine, and flushes both persisted
// state scopes at the end of every successful turn.
package bot

import (
	"context"
	"log/slog"
	"time"

	"github.com/cascadebot/cascade/internal/logging"
	"github.com/cascadebot/cascade/pkg/dialog"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/cascadebot/cascade/pkg/state"
	"github.com/cascadebot/cascade/pkg/turn"
)

// Bot coordinates one turn at a time. The transport guarantees turns for
// the same conversation are serialized; different conversations may run
// concurrently, sharing nothing but the storage backend.
type Bot struct {
	engine        *dialog.Engine
	conversations *state.Scope
	users         *state.Scope
	welcomed      state.BoolProperty
	count         state.IntProperty
	card          domain.WelcomeCard
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bot) {
		b.hooks = hooks
	}
}

// WithWelcomeCard overrides the stock greeting card.
func WithWelcomeCard(card domain.WelcomeCard) Option {
	return func(b *Bot) {
		b.card = card
	}
}

// New wires a Bot to its engine and the two state scopes.
func New(engine *dialog.Engine, conversations, users *state.Scope, opts ...Option) *Bot {
	b := &Bot{
		engine:        engine,
		conversations: conversations,
		users:         users,
		welcomed:      state.NewBoolProperty(users, domain.PropertyWelcomed),
		count:         state.NewIntProperty(users, domain.PropertyUnsuccessfulCount),
		card:          domain.DefaultWelcomeCard(),
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnTurn processes one inbound activity to completion (or until the
// dialog suspends) and then flushes the conversation and user scopes.
// Any error aborts the turn before the final flushes, leaving buffered
// state uncommitted; messages already sent are not retracted.
func (b *Bot) OnTurn(ctx context.Context, activity *domain.Activity, responder ports.Responder) error {
	tc := turn.NewContext(activity, responder)

	if b.hooks.OnTurnStart != nil {
		b.hooks.OnTurnStart(ctx, &domain.TurnEvent{
			Timestamp:      time.Now(),
			Type:           domain.EventTurnStart,
			ConversationID: activity.ConversationID,
			UserID:         activity.From.ID,
		})
	}

	var err error
	switch activity.Type {
	case domain.ActivityConversationUpdate:
		err = b.onMembersAdded(ctx, tc)
	case domain.ActivityMessage:
		err = b.engine.RunTurn(ctx, tc)
	default:
		b.logger.Debug("ignoring activity",
			"type", string(activity.Type),
			"conversation_id", activity.ConversationID,
		)
		return nil
	}
	if err != nil {
		return err
	}

	if err := b.conversations.Flush(ctx, tc); err != nil {
		return err
	}
	return b.users.Flush(ctx, tc)
}

// onMembersAdded sends the one-shot welcome. The welcomed flag transitions
// false→true exactly once per user and never reverts; a second join event
// for the same user sends nothing.
func (b *Bot) onMembersAdded(ctx context.Context, tc *turn.Context) error {
	for _, member := range tc.Activity.MembersAdded {
		if member.ID == tc.Activity.Recipient.ID {
			continue // the bot joining is not a user to greet
		}

		welcomed, err := b.welcomed.Get(ctx, tc, false)
		if err != nil {
			return err
		}
		if welcomed {
			continue
		}

		if err := tc.SendActivity(ctx, b.card.Markdown()); err != nil {
			return err
		}
		// Start the first dialog cycle so the intro prompt follows the card.
		if err := b.engine.RunTurn(ctx, tc); err != nil {
			return err
		}
		if err := b.welcomed.Set(ctx, tc, true); err != nil {
			return err
		}
		if err := b.count.Set(ctx, tc, 0); err != nil {
			return err
		}

		if b.hooks.OnWelcome != nil {
			b.hooks.OnWelcome(ctx, &domain.TurnEvent{
				Timestamp:      time.Now(),
				Type:           domain.EventWelcome,
				ConversationID: tc.Activity.ConversationID,
				UserID:         member.ID,
			})
		}
		b.logger.Info("welcomed new member",
			"conversation_id", tc.Activity.ConversationID,
			"user_id", member.ID,
		)
	}
	return nil
}
