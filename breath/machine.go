// Package breath implements the inhale/exhale gesture that gates cell reveal
package breath

import (
	"time"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
)

// Step reports what one advance of the machine did
type Step struct {
	Phase        core.BreathPhase // Phase after the advance
	PhaseChanged bool
	Completed    bool   // Exhale reached full; machine is back to Idle
	Target       string // Target of the completed cycle, set only when Completed
}

// Machine is the Idle -> Inhale -> Exhale -> Idle cycle
// Inhale advances on every tick; exhale only while loudness exceeds the threshold
// Not safe for concurrent use; the session controller owns it
type Machine struct {
	phase  core.BreathPhase
	target string
	inhale float64
	exhale float64

	tickRate  float64
	duration  float64 // effective seconds per phase
	threshold float64
}

// NewMachine creates an idle machine; tickRate is the frame rate Tick assumes
func NewMachine(tickRate int) *Machine {
	if tickRate <= 0 {
		tickRate = constant.DefaultTickRate
	}
	return &Machine{
		tickRate:  float64(tickRate),
		threshold: constant.ExhaleLoudnessThreshold,
	}
}

// SetDuration sets the effective seconds of each phase (level duration * profile multiplier)
func (m *Machine) SetDuration(seconds float64) {
	m.duration = seconds
}

// Duration returns the effective seconds of each phase
func (m *Machine) Duration() float64 { return m.duration }

// SetThreshold overrides the exhale loudness threshold
func (m *Machine) SetThreshold(threshold float64) {
	m.threshold = threshold
}

func (m *Machine) Phase() core.BreathPhase { return m.phase }
func (m *Machine) Target() string { return m.target }
func (m *Machine) InhaleProgress() float64 { return m.inhale }
func (m *Machine) ExhaleProgress() float64 { return m.exhale }
func (m *Machine) Idle() bool { return m.phase == core.BreathIdle }

// ExhaleSeconds converts exhale progress back to seconds of sustained blowing
func (m *Machine) ExhaleSeconds() float64 {
	return m.exhale / constant.ProgressMax * m.duration
}

// Start begins a cycle on target; ignored unless Idle
func (m *Machine) Start(target string) bool {
	if m.phase != core.BreathIdle || target == "" {
		return false
	}
	m.phase = core.BreathInhale
	m.target = target
	m.inhale = 0
	m.exhale = 0
	return true
}

// Reset returns to Idle with no target and empty meters
// There is no player-facing cancel; the controller calls this on restart and exit
func (m *Machine) Reset() {
	m.phase = core.BreathIdle
	m.target = ""
	m.inhale = 0
	m.exhale = 0
}

// Tick advances exactly one frame at the configured tick rate
func (m *Machine) Tick(loudness float64) Step {
	return m.advanceTicks(1, loudness)
}

// Advance converts dt to fractional frames so callers can pass real frame deltas
func (m *Machine) Advance(dt time.Duration, loudness float64) Step {
	if dt <= 0 {
		return Step{Phase: m.phase}
	}
	return m.advanceTicks(dt.Seconds()*m.tickRate, loudness)
}

// perTick is the meter gain of one frame: 100 / (duration * tickRate)
func (m *Machine) perTick() float64 {
	if m.duration <= 0 {
		return constant.ProgressMax
	}
	return constant.ProgressMax / (m.duration * m.tickRate)
}

func (m *Machine) advanceTicks(ticks, loudness float64) Step {
	switch m.phase {
	case core.BreathInhale:
		m.inhale += m.perTick() * ticks
		if m.inhale >= constant.ProgressMax-constant.ProgressEpsilon {
			m.inhale = constant.ProgressMax
			m.phase = core.BreathExhale
			m.exhale = 0
			return Step{Phase: m.phase, PhaseChanged: true}
		}

	case core.BreathExhale:
		if loudness <= m.threshold {
			break
		}
		m.exhale += m.perTick() * ticks
		if m.exhale >= constant.ProgressMax-constant.ProgressEpsilon {
			target := m.target
			m.Reset()
			return Step{Phase: m.phase, PhaseChanged: true, Completed: true, Target: target}
		}
	}
	return Step{Phase: m.phase}
}
