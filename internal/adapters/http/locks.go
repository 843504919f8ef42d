package http

import "sync"

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// turnLocks serializes turns per conversation. Reference counting garbage
// collects entries once no turn is waiting on them.
type turnLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newTurnLocks() *turnLocks {
	return &turnLocks{locks: make(map[string]*lockEntry)}
}

// acquire blocks until the conversation's lock is held and returns the
// release function.
func (t *turnLocks) acquire(conversationID string) func() {
	t.mu.Lock()
	entry, ok := t.locks[conversationID]
	if !ok {
		entry = &lockEntry{}
		t.locks[conversationID] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		t.mu.Lock()
		entry.refs--
		if entry.refs <= 0 {
			delete(t.locks, conversationID)
		}
		t.mu.Unlock()
	}
}
