package core

import "strings"

// GameMode selects the rule set of a session
type GameMode uint8

const (
	ModeTherapy GameMode = iota
	ModeTimeTrial
	ModeInfinite
)

func (m GameMode) String() string {
	switch m {
	case ModeTherapy:
		return "therapy"
	case ModeTimeTrial:
		return "time-trial"
	case ModeInfinite:
		return "infinite"
	default:
		return "unknown"
	}
}

// ParseGameMode accepts the String form and a few short aliases
func ParseGameMode(s string) (GameMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "therapy", "guided", "t":
		return ModeTherapy, true
	case "time-trial", "timetrial", "time", "tt":
		return ModeTimeTrial, true
	case "infinite", "zen", "i":
		return ModeInfinite, true
	}
	return 0, false
}

// GamePhase is the session-level state
type GamePhase uint8

const (
	PhaseModeSelect GamePhase = iota
	PhasePlaying
	PhaseLevelComplete
	PhaseVictory
	PhaseGameOver
)

func (p GamePhase) String() string {
	switch p {
	case PhaseModeSelect:
		return "mode-select"
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level-complete"
	case PhaseVictory:
		return "victory"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Ended reports whether the phase is one of the terminal result screens
func (p GamePhase) Ended() bool {
	return p == PhaseLevelComplete || p == PhaseVictory || p == PhaseGameOver
}

// BreathPhase is the state of the breath gesture
type BreathPhase uint8

const (
	BreathIdle BreathPhase = iota
	BreathInhale
	BreathExhale
)

func (b BreathPhase) String() string {
	switch b {
	case BreathIdle:
		return "idle"
	case BreathInhale:
		return "inhale"
	case BreathExhale:
		return "exhale"
	default:
		return "unknown"
	}
}

// Visibility is the reveal state of a cell
type Visibility uint8

const (
	Hidden Visibility = iota
	Revealed
	Popped
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Popped:
		return "popped"
	default:
		return "unknown"
	}
}
