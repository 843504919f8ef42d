package dialog

import (
	"context"

	"github.com/cascadebot/cascade/pkg/catalog"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/cascadebot/cascade/pkg/turn"
)

// Router dispatches a resolved intent to its canned response. It holds no
// state: one catalog lookup plus one send per recognized label.
type Router struct {
	catalog *catalog.Catalog
}

// NewRouter creates a router over the given catalog.
func NewRouter(c *catalog.Catalog) *Router {
	return &Router{catalog: c}
}

// Route sends the catalog response for a recognized label and reports
// Resolved. The unresolved sentinel reports Unresolved without a message —
// what to tell the user is the escalation policy's call. A recognized
// label missing from the catalog surfaces domain.ErrUnknownIntent.
func (r *Router) Route(ctx context.Context, tc *turn.Context, intent domain.Intent) (domain.Outcome, error) {
	if !intent.Recognized() {
		return domain.OutcomeUnresolved, nil
	}

	text, err := r.catalog.Response(intent)
	if err != nil {
		return domain.OutcomeUnresolved, err
	}
	if err := tc.SendActivity(ctx, text); err != nil {
		return domain.OutcomeUnresolved, err
	}
	return domain.OutcomeResolved, nil
}
