package ports

import "context"

// FallbackDialog handles a whole turn when the classifier is not
// configured. Its internals are opaque to the engine: it runs to
// completion (or suspends on its own state) and the step machine does not
// proceed further that turn.
type FallbackDialog interface {
	Run(ctx context.Context, utterance string, responder Responder) error
}
