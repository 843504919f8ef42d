package ports

import "context"

// Responder is the outbound half of the transport boundary. A turn may
// send zero or more activities; the transport owns delivery and rendering.
type Responder interface {
	SendActivity(ctx context.Context, text string) error
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, text string) error

// SendActivity calls f.
func (f ResponderFunc) SendActivity(ctx context.Context, text string) error {
	return f(ctx, text)
}
