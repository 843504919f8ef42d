package domain

// Persisted property names. These are storage field keys; renaming them
// invalidates existing state documents.
const (
	PropertyWelcomed          = "welcomed"
	PropertyUnsuccessfulCount = "unsuccessfulCount"
	PropertyDialogState       = "dialogState"
)

// Scope kinds for the two persistence partitions.
const (
	ScopeConversation = "conversation"
	ScopeUser         = "user"
)
