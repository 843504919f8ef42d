package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurnStart      EventType = "turn_start"
	EventIntentResolved EventType = "intent_resolved"
	EventReprompt       EventType = "reprompt"
	EventEscalation     EventType = "escalation"
	EventWelcome        EventType = "welcome"
)

// TurnEvent identifies the turn an event belongs to.
type TurnEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
}

// IntentEvent records a routed intent.
type IntentEvent struct {
	TurnEvent
	Intent Intent `json:"intent"`
}

// LifecycleHooks defines callbacks for engine observability. All hooks are
// optional; nil members are skipped. Hooks run synchronously inside the
// turn and must not block.
type LifecycleHooks struct {
	OnTurnStart      func(context.Context, *TurnEvent)
	OnIntentResolved func(context.Context, *IntentEvent)
	OnReprompt       func(context.Context, *TurnEvent)
	OnEscalation     func(context.Context, *TurnEvent)
	OnWelcome        func(context.Context, *TurnEvent)
}
