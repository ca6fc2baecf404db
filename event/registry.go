package event

import "fmt"

var typeNames = map[EventType]string{
	EventNone:        "None",
	EventRecovery:    "Recovery",
	EventPopSound:    "PopSound",
	EventWinSound:    "WinSound",
	EventScreenShake: "ScreenShake",
	EventInstruction: "Instruction",
	EventPhaseChange: "PhaseChange",
	EventBreathPhase: "BreathPhase",
	EventLifeLost:    "LifeLost",
	EventScore:       "Score",
}

// String returns the registered name of the event type
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// AllTypes lists every emitted event type
func AllTypes() []EventType {
	return []EventType{
		EventRecovery,
		EventPopSound,
		EventWinSound,
		EventScreenShake,
		EventInstruction,
		EventPhaseChange,
		EventBreathPhase,
		EventLifeLost,
		EventScore,
	}
}
