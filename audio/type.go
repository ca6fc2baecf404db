package audio

// SoundType identifies a game tone
type SoundType int

const (
	SoundPop      SoundType = iota // Match or breath blast
	SoundWin                       // Therapy level goal reached
	SoundLifeLost                  // Failed swap in infinite mode
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundPop:
		return "pop"
	case SoundWin:
		return "win"
	case SoundLifeLost:
		return "life_lost"
	default:
		return "unknown"
	}
}

// Player states published to the status registry
const (
	StateUninitialized = "uninitialized"
	StateReady         = "ready"
	StateSilent        = "silent"
	StateMuted         = "muted"
)
