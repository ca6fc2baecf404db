package constant

// Breath gesture
const (
	// ProgressMax is the full value of the inhale and exhale meters
	ProgressMax = 100.0

	// ProgressEpsilon absorbs float drift when a meter is compared against ProgressMax
	ProgressEpsilon = 1e-9

	// ExhaleLoudnessThreshold is the loudness that must be exceeded for exhale to advance
	ExhaleLoudnessThreshold = 10.0

	// DefaultTickRate is the reference frame rate the breath rate is expressed in
	DefaultTickRate = 60
)

// Keyboard breath source
const (
	// BreathKeyPeak is the loudness a single blow key press produces
	BreathKeyPeak = 60.0

	// BreathKeyDecayPerSecond is how fast the blow level falls back to silence
	BreathKeyDecayPerSecond = 240.0
)
