package constant

import "time"

// Scoring and lives
const (
	// ScorePerCell is awarded for every popped cell
	ScorePerCell = 10

	// InfiniteLives is the starting life count of Infinite mode
	InfiniteLives = 3

	// TimeTrialDuration is the Time Trial countdown length
	TimeTrialDuration = 120 * time.Second
)

// Deferred gameplay delays
const (
	// SwapCheckDelay is the pause between a swap and its match check
	SwapCheckDelay = 300 * time.Millisecond

	// GravityDelay lets pop animations play before compaction
	GravityDelay = 400 * time.Millisecond

	// LevelCompleteDelay is the pause between reaching a goal and the level-complete screen
	LevelCompleteDelay = time.Second

	// ShakeDuration is how long the screen shake lasts after a breath completes
	ShakeDuration = 500 * time.Millisecond
)

// Frame timing
const (
	// FrameUpdateInterval is the render and game tick period (~60 FPS)
	FrameUpdateInterval = time.Second / DefaultTickRate

	// BiometricInterval is the simulated wearable sample period
	BiometricInterval = 2 * time.Second
)
