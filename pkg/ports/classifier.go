package ports

import (
	"context"

	"github.com/cascadebot/cascade/pkg/domain"
)

// Classifier is the external intent-resolution capability. Given a user
// utterance it returns a label from the closed vocabulary, or the
// unresolved sentinel when nothing matches.
type Classifier interface {
	// IsConfigured reports whether the classifier is usable. When false
	// the engine runs in degraded mode and never calls Classify. Checked
	// per call, not cached.
	IsConfigured() bool

	// Classify resolves the top intent for the utterance. Errors surface
	// to the transport uncaught (the turn ends uncommitted).
	Classify(ctx context.Context, utterance string) (domain.Intent, error)
}
