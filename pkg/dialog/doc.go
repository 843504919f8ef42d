/*
Package dialog implements the conversation turn engine: the Intro → Act →
Final waterfall step machine, the dialog stack that resumes it across
independent turns, the intent router, and the escalation policy over the
persisted failure counter.

The stack engine persists frames as plain data in the conversation scope,
so "resume" is nothing more than reading the stored step index and
invoking that step with the new input. The only suspension point is the
Intro/Act prompt boundary; control returns to the transport, which calls
RunTurn again when the next message for the conversation arrives.
*/
package dialog
