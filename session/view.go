package session

import (
	"time"

	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/grid"
)

// BreathView is the breath meter state at snapshot time
type BreathView struct {
	Phase       core.BreathPhase
	Target      string
	TargetIndex int // -1 when idle
	Inhale      float64
	Exhale      float64
	SecondsLeft float64 // Countdown of the active phase at the nominal rate
}

// View is a read-only snapshot for renderers; it shares nothing with the live session
type View struct {
	Phase core.GamePhase
	Mode  core.GameMode
	Frame int64

	Rows  int
	Cols  int
	Cells []grid.Cell

	Score         int
	ScoreGoal     int // Therapy only
	Level         int // 1-based therapy level
	LevelCount    int
	Lives         int // Infinite only
	TimeRemaining time.Duration

	Breath      BreathView
	Instruction string
	Tutorial    TutorialStep
	Profile     core.DifficultyProfile

	Busy           bool // A swap check or gravity pass is pending
	ShakeRemaining time.Duration
}

// Cell returns the cell at row, col
func (v View) Cell(row, col int) grid.Cell {
	return v.Cells[row*v.Cols+col]
}

// Shaking reports whether the screen shake is active
func (v View) Shaking() bool {
	return v.ShakeRemaining > 0
}
