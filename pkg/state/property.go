package state

import (
	"context"
	"encoding/json"

	"github.com/cascadebot/cascade/pkg/turn"
	"github.com/mitchellh/mapstructure"
)

// BoolProperty is a typed accessor for a boolean scope field.
type BoolProperty struct {
	scope *Scope
	name  string
}

// NewBoolProperty binds a boolean property to a scope field.
func NewBoolProperty(scope *Scope, name string) BoolProperty {
	return BoolProperty{scope: scope, name: name}
}

// Get returns the buffered value, or def when unset or not a boolean.
func (p BoolProperty) Get(ctx context.Context, tc *turn.Context, def bool) (bool, error) {
	v, ok, err := p.scope.Get(ctx, tc, p.name)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, nil
	}
	return b, nil
}

// Set buffers a new value.
func (p BoolProperty) Set(ctx context.Context, tc *turn.Context, value bool) error {
	return p.scope.Set(ctx, tc, p.name, value)
}

// IntProperty is a typed accessor for an integer scope field. Backends
// round-trip through JSON, so committed integers come back as float64 or
// json.Number; both are accepted. A non-numeric stored value coerces to
// the default rather than raising — a deliberate default-substitution.
type IntProperty struct {
	scope *Scope
	name  string
}

// NewIntProperty binds an integer property to a scope field.
func NewIntProperty(scope *Scope, name string) IntProperty {
	return IntProperty{scope: scope, name: name}
}

// Get returns the buffered value coerced to int, or def.
func (p IntProperty) Get(ctx context.Context, tc *turn.Context, def int) (int, error) {
	v, ok, err := p.scope.Get(ctx, tc, p.name)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return coerceInt(v, def), nil
}

// Set buffers a new value.
func (p IntProperty) Set(ctx context.Context, tc *turn.Context, value int) error {
	return p.scope.Set(ctx, tc, p.name, value)
}

func coerceInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return def
		}
		return int(i)
	default:
		return def
	}
}

// ObjectProperty is an accessor for a structured scope field. Values are
// persisted as plain maps/slices and decoded back into typed structs with
// mapstructure on read.
type ObjectProperty struct {
	scope *Scope
	name  string
}

// NewObjectProperty binds a structured property to a scope field.
func NewObjectProperty(scope *Scope, name string) ObjectProperty {
	return ObjectProperty{scope: scope, name: name}
}

// Get decodes the buffered value into out. Returns false when the
// property was never set.
func (p ObjectProperty) Get(ctx context.Context, tc *turn.Context, out any) (bool, error) {
	v, ok, err := p.scope.Get(ctx, tc, p.name)
	if err != nil || !ok {
		return false, err
	}
	if err := mapstructure.Decode(v, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set buffers a new value. The value is stored as-is; backends serialize
// it to JSON on flush.
func (p ObjectProperty) Set(ctx context.Context, tc *turn.Context, value any) error {
	return p.scope.Set(ctx, tc, p.name, value)
}
