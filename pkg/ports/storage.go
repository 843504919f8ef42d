package ports

import "context"

// Storage defines the backing key-value store behind the persisted state
// scopes. Keys are scope keys ("conversation/<id>", "user/<id>"); values
// are flat property documents. Implementations must round-trip documents
// through JSON faithfully — numeric values may come back as float64 or
// json.Number, which the state accessors coerce.
//
// Storage is only touched by Flush; all per-turn reads and writes happen
// against the in-memory turn cache.
type Storage interface {
	// Read retrieves the committed document for a scope key.
	// Returns domain.ErrScopeNotFound if nothing was ever committed.
	Read(ctx context.Context, key string) (map[string]any, error)

	// Write durably commits the document for a scope key, replacing any
	// previous version.
	Write(ctx context.Context, key string, document map[string]any) error

	// Delete removes the document for a scope key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all committed scope keys.
	List(ctx context.Context) ([]string, error)
}
