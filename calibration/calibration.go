// Package calibration scores the pre-game questionnaire into a difficulty profile
package calibration

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/parameter"
)

// SleepQuality is the self-reported sleep answer
type SleepQuality uint8

const (
	SleepGood SleepQuality = iota
	SleepAverage
	SleepPoor
)

func (s SleepQuality) String() string {
	switch s {
	case SleepGood:
		return "good"
	case SleepAverage:
		return "average"
	case SleepPoor:
		return "poor"
	default:
		return "unknown"
	}
}

// ParseSleepQuality accepts the names printed by String
func ParseSleepQuality(s string) (SleepQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good":
		return SleepGood, nil
	case "average", "ok":
		return SleepAverage, nil
	case "poor", "bad":
		return SleepPoor, nil
	}
	return 0, fmt.Errorf("unknown sleep quality %q", s)
}

// Answers collects the facial scan percentages plus the questionnaire
type Answers struct {
	FacialStress    int
	FacialFatigue   int
	FacialHappiness int
	Sleep           SleepQuality
	Stress          core.StressLevel
}

// Result is the calibration outcome handed to the game
type Result struct {
	Profile         core.DifficultyProfile
	Risk            int
	RecommendedGame string
}

// RiskThreshold is the score at which the relax profile is chosen
const RiskThreshold = 2

// facialCutoff marks a facial percentage as significant
const facialCutoff = 60

// RecommendedGame is the only game this build ships
const RecommendedGame = "neurobreath"

// Risk computes the additive risk score
func Risk(a Answers) int {
	risk := 0
	if a.FacialStress > facialCutoff {
		risk += 2
	}
	if a.FacialFatigue > facialCutoff {
		risk++
	}
	if a.FacialHappiness > facialCutoff {
		risk--
	}
	if a.Sleep == SleepPoor {
		risk += 2
	}
	switch a.Stress {
	case core.StressHigh:
		risk += 2
	case core.StressMedium:
		risk++
	}
	return risk
}

// Assess maps answers to a profile: high risk slows the breath, otherwise the focus profile
func Assess(a Answers) Result {
	risk := Risk(a)
	profile := parameter.ProfileFocus
	if risk >= RiskThreshold {
		profile = parameter.ProfileRelax
	}
	return Result{
		Profile:         profile,
		Risk:            risk,
		RecommendedGame: RecommendedGame,
	}
}

// SimulateFace stands in for the camera scan
func SimulateFace(rng *rand.Rand) (stress, fatigue, happiness int) {
	stress = 40 + rng.Intn(40)
	fatigue = 20 + rng.Intn(50)
	happiness = 10 + rng.Intn(30)
	return stress, fatigue, happiness
}
