package dialog

// Fixed engine messages. Catalog responses live in pkg/catalog; these are
// the step machine's own prompts and warnings.
const (
	// defaultIntroPrompt opens a fresh cycle.
	defaultIntroPrompt = "How can I help you? Select an option above or type your question:"

	// restartPrompt is carried by the frame Final creates.
	restartPrompt = "What else can I do for you?"

	// repromptMessage re-prompts after an unresolved utterance below the
	// escalation threshold.
	repromptMessage = "Sorry, I didn’t understand that. Could you try asking in a different way?"

	// escalationMessage terminates a failure sub-loop.
	escalationMessage = "Sorry I still don’t understand your question. Click this [link](https://alexion.service-now.com/ask) to open a ticket with IT Helpdesk and someone will get in touch with you. Thank you."

	// notConfiguredWarning is sent by Intro in degraded mode.
	notConfiguredWarning = "NOTE: the intent classifier is not configured. All questions will be handled by the fallback dialog until one is connected."
)
