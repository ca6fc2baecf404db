package parameter

// Tutorial and instruction copy
const (
	MsgWelcome       = "Welcome! Tap a grey cloud to begin."
	MsgSelectCloud   = "Select a grey cloud to begin."
	MsgInhale        = "Inhale deeply through your nose (1... 2... 3...)"
	MsgExhale        = "Now blow steadily into the microphone!"
	MsgSwap          = "Well done! Drag to join 3 colors."
	MsgSwapHint      = "Try to join at least 3 bubbles of the same color."
	MsgTutorialDone  = "Excellent! You have the basic mechanic."
	MsgBreathIdle    = "Tap a grey cloud to start"
	MsgBreathInhale  = "Filling the lungs..."
	MsgBreathExhale  = "Releasing tension..."
	MsgAudioRequired = "Microphone access is required for the therapeutic features."
)
