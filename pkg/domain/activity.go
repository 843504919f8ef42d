package domain

// ActivityType discriminates inbound transport events.
type ActivityType string

const (
	// ActivityMessage carries user text for one turn.
	ActivityMessage ActivityType = "message"

	// ActivityConversationUpdate signals membership changes (joins).
	ActivityConversationUpdate ActivityType = "conversationUpdate"
)

// ChannelAccount identifies a participant as reported by the transport.
type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Activity is one inbound transport event. The conversation and user
// identifiers are stable across turns and are supplied by the channel,
// never minted by the engine.
type Activity struct {
	Type           ActivityType     `json:"type"`
	ConversationID string           `json:"conversation_id"`
	From           ChannelAccount   `json:"from"`
	Recipient      ChannelAccount   `json:"recipient"`
	Text           string           `json:"text,omitempty"`
	MembersAdded   []ChannelAccount `json:"members_added,omitempty"`
}
