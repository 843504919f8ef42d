// Package ports defines the boundary interfaces of the Cascade engine:
// the persisted state storage, the external intent classifier, the
// outbound transport responder, and the degraded-mode fallback dialog.
//
// Adapters live under internal/adapters; the core only depends on these
// interfaces.
package ports
