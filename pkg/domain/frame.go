package domain

// FrameOptions carries arguments passed when a dialog is started or
// replaced. They survive serialization with the frame.
type FrameOptions struct {
	// RestartMessage overrides the intro prompt when a cycle restarts.
	RestartMessage string `json:"restart_message,omitempty" mapstructure:"restart_message"`
}

// Frame is one in-progress invocation of a step machine on the dialog
// stack: which dialog is active, which step runs next, and the options it
// was started with. Frames are plain data so any Storage backend can
// round-trip them as JSON.
type Frame struct {
	Dialog  string       `json:"dialog" mapstructure:"dialog"`
	Step    int          `json:"step" mapstructure:"step"`
	Options FrameOptions `json:"options" mapstructure:"options"`
}

// NewFrame creates a frame positioned at the first step.
func NewFrame(dialog string, opts FrameOptions) Frame {
	return Frame{Dialog: dialog, Options: opts}
}
