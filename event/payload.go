package event

import (
	"time"

	"github.com/lixenwraith/neurobreath/core"
)

// GameEvent is one queued notification
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}

// RecoverySource tells what caused a recovery event
type RecoverySource uint8

const (
	RecoveryMatch RecoverySource = iota
	RecoveryBreath
)

func (s RecoverySource) String() string {
	if s == RecoveryBreath {
		return "breath"
	}
	return "match"
}

// RecoveryPayload describes a recovery event
type RecoveryPayload struct {
	Source RecoverySource
}

// ShakePayload carries the shake length
type ShakePayload struct {
	Duration time.Duration
}

// InstructionPayload carries the instruction text
type InstructionPayload struct {
	Text string
}

// PhaseChangePayload carries the session transition
type PhaseChangePayload struct {
	From  core.GamePhase
	To    core.GamePhase
	Mode  core.GameMode
	Score int
	Level int
}

// BreathPhasePayload carries the new breath phase and its target cell
type BreathPhasePayload struct {
	Phase  core.BreathPhase
	Target string
}

// LifeLostPayload carries the remaining lives
type LifeLostPayload struct {
	Remaining int
}

// ScorePayload carries a score change
type ScorePayload struct {
	Delta   int
	Total   int
	Matched int
}
