package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never emitted
	EventNone EventType = iota

	// EventRecovery signals a therapeutic action (match or completed breath)
	// Trigger: Controller | Consumer: BiometricSimulator | Payload: *RecoveryPayload
	EventRecovery

	// EventPopSound requests the pop tone
	// Trigger: Controller on match and breath completion | Consumer: audio.Handler | Payload: nil
	EventPopSound

	// EventWinSound requests the level-complete chord
	// Trigger: Controller on level complete | Consumer: audio.Handler | Payload: nil
	EventWinSound

	// EventScreenShake starts a transient shake
	// Trigger: Controller on breath completion | Consumer: renderer | Payload: *ShakePayload
	EventScreenShake

	// EventInstruction carries a new tutorial/instruction line
	// Trigger: Controller tutorial tracker | Consumer: renderer, logger | Payload: *InstructionPayload
	EventInstruction

	// EventPhaseChange signals a session phase transition
	// Trigger: Controller | Consumer: logger, CLI summary | Payload: *PhaseChangePayload
	EventPhaseChange

	// EventBreathPhase signals an inhale/exhale/idle edge of the breath gesture
	// Trigger: Controller | Consumer: renderer, logger | Payload: *BreathPhasePayload
	EventBreathPhase

	// EventLifeLost signals an invalid swap in Infinite mode
	// Trigger: Controller | Consumer: renderer, audio | Payload: *LifeLostPayload
	EventLifeLost

	// EventScore signals a score change after a match
	// Trigger: Controller | Consumer: logger | Payload: *ScorePayload
	EventScore
)
