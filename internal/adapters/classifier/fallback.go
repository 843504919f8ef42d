package classifier

import (
	"context"
	"fmt"

	"github.com/cascadebot/cascade/pkg/ports"
)

// EchoFallback is the stock degraded-mode dialog: it acknowledges the
// utterance and points the user at human support. Deployments with a real
// fallback (a QnA service, a handoff queue) plug in their own
// ports.FallbackDialog.
type EchoFallback struct{}

// Run handles one degraded-mode turn.
func (EchoFallback) Run(ctx context.Context, utterance string, responder ports.Responder) error {
	if utterance == "" {
		return responder.SendActivity(ctx, "I can't answer questions right now, but a teammate can. Please open a ticket with the IT Helpdesk.")
	}
	return responder.SendActivity(ctx, fmt.Sprintf("I heard %q, but I can't answer questions right now. Please open a ticket with the IT Helpdesk.", utterance))
}
