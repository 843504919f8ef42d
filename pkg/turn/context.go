// Package turn provides the per-message turn context: the inbound
// activity, the outbound responder, and a scratch value store used by the
// state accessors to cache scope documents for the duration of one turn.
package turn

import (
	"context"

	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
)

// Context carries everything one turn needs. It is created by the turn
// coordinator when an activity arrives and discarded when the turn ends;
// nothing in it survives across turns except what the state accessors
// flush to storage.
//
// A Context is confined to the single goroutine processing the turn, so
// no locking is done here.
type Context struct {
	Activity *domain.Activity

	// Responded is true once at least one activity has been sent.
	Responded bool

	responder ports.Responder
	values    map[string]any
}

// NewContext creates a turn context for one inbound activity.
func NewContext(activity *domain.Activity, responder ports.Responder) *Context {
	return &Context{
		Activity:  activity,
		responder: responder,
		values:    make(map[string]any),
	}
}

// SendActivity emits one outbound message through the transport.
func (c *Context) SendActivity(ctx context.Context, text string) error {
	if err := c.responder.SendActivity(ctx, text); err != nil {
		return err
	}
	c.Responded = true
	return nil
}

// Value returns a turn-scoped value set earlier in the same turn.
func (c *Context) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// SetValue stores a turn-scoped value.
func (c *Context) SetValue(key string, v any) {
	c.values[key] = v
}
