package core

import "strings"

// StressLevel is the coarse stress bucket derived from HRV
type StressLevel uint8

const (
	StressLow StressLevel = iota
	StressMedium
	StressHigh
)

func (s StressLevel) String() string {
	switch s {
	case StressLow:
		return "Low"
	case StressMedium:
		return "Medium"
	case StressHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// ParseStressLevel is case-insensitive
func ParseStressLevel(s string) (StressLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return StressLow, true
	case "medium", "med":
		return StressMedium, true
	case "high":
		return StressHigh, true
	}
	return 0, false
}

// BiometricReading is one sample from the wearable signal source
type BiometricReading struct {
	HeartRate int
	HRV       int
	Oxygen    int
	Stress    StressLevel
}

// VisualSpeed paces decorative animation only
type VisualSpeed uint8

const (
	VisualNormal VisualSpeed = iota
	VisualSlow
)

func (v VisualSpeed) String() string {
	if v == VisualSlow {
		return "slow"
	}
	return "normal"
}

// DifficultyProfile scales breath timing; produced by calibration, read-only for the game
type DifficultyProfile struct {
	Name                     string
	BreathDurationMultiplier float64
	VisualSpeed              VisualSpeed
	Label                    string
}

// LevelConfig is one entry of the therapy progression
type LevelConfig struct {
	ID                   int
	BreathDurationSecond float64
	ScoreGoal            int
	Theme                string
}
