// Package state implements the persisted state accessors: buffered,
// typed read/write wrappers over a ports.Storage backend, partitioned
// into a per-conversation scope and a per-user scope.
//
// Reads and writes during a turn hit an in-memory document cached on the
// turn context; nothing reaches the backing store until Flush. A turn may
// flush a scope more than once — later flushes overwrite earlier ones.
package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/ports"
	"github.com/cascadebot/cascade/pkg/turn"
)

// KeyFunc derives the scope identity from the inbound activity.
type KeyFunc func(*domain.Activity) string

// Scope is one persistence partition (conversation or user). The zero
// value is not usable; construct with NewScope or the two helpers below.
type Scope struct {
	kind    string
	storage ports.Storage
	keyFn   KeyFunc
}

// NewScope creates a scope of the given kind backed by storage.
func NewScope(kind string, storage ports.Storage, keyFn KeyFunc) *Scope {
	return &Scope{kind: kind, storage: storage, keyFn: keyFn}
}

// ConversationScope creates the per-conversation partition.
func ConversationScope(storage ports.Storage) *Scope {
	return NewScope(domain.ScopeConversation, storage, func(a *domain.Activity) string {
		return a.ConversationID
	})
}

// UserScope creates the per-user partition.
func UserScope(storage ports.Storage) *Scope {
	return NewScope(domain.ScopeUser, storage, func(a *domain.Activity) string {
		return a.From.ID
	})
}

// Kind returns the scope kind ("conversation" or "user").
func (s *Scope) Kind() string { return s.kind }

// StorageKey returns the backing-store key for the activity's identity.
func (s *Scope) StorageKey(a *domain.Activity) string {
	return s.kind + "/" + s.keyFn(a)
}

// document is the per-turn cached copy of a scope's property map.
type document struct {
	values map[string]any
	dirty  bool
}

func (s *Scope) cacheKey() string {
	return "state/" + s.kind
}

// load returns the turn-cached document, reading it from storage on first
// access. A scope that was never committed starts as an empty document.
func (s *Scope) load(ctx context.Context, tc *turn.Context) (*document, error) {
	if v, ok := tc.Value(s.cacheKey()); ok {
		return v.(*document), nil
	}

	values, err := s.storage.Read(ctx, s.StorageKey(tc.Activity))
	if err != nil {
		if !errors.Is(err, domain.ErrScopeNotFound) {
			return nil, fmt.Errorf("failed to load %s scope: %w", s.kind, err)
		}
		values = make(map[string]any)
	}

	doc := &document{values: values}
	tc.SetValue(s.cacheKey(), doc)
	return doc, nil
}

// Get returns the buffered value for a property, or (nil, false) when the
// property was never set in this scope.
func (s *Scope) Get(ctx context.Context, tc *turn.Context, name string) (any, bool, error) {
	doc, err := s.load(ctx, tc)
	if err != nil {
		return nil, false, err
	}
	v, ok := doc.values[name]
	return v, ok, nil
}

// Set buffers a pending value for a property. The value is not durable
// until Flush.
func (s *Scope) Set(ctx context.Context, tc *turn.Context, name string, value any) error {
	doc, err := s.load(ctx, tc)
	if err != nil {
		return err
	}
	doc.values[name] = value
	doc.dirty = true
	return nil
}

// Flush durably commits all pending values for this scope. It is a no-op
// when nothing changed since the last flush. On failure the buffered
// values stay intact so a redelivered turn can re-attempt the commit.
func (s *Scope) Flush(ctx context.Context, tc *turn.Context) error {
	v, ok := tc.Value(s.cacheKey())
	if !ok {
		return nil // scope never touched this turn
	}
	doc := v.(*document)
	if !doc.dirty {
		return nil
	}

	if err := s.storage.Write(ctx, s.StorageKey(tc.Activity), doc.values); err != nil {
		return fmt.Errorf("failed to flush %s scope: %w", s.kind, err)
	}
	doc.dirty = false
	return nil
}
