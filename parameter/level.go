package parameter

import "github.com/lixenwraith/neurobreath/core"

// TherapyLevels is the default ordered therapy progression
var TherapyLevels = []core.LevelConfig{
	{ID: 1, BreathDurationSecond: 3.0, ScoreGoal: 500, Theme: "calm"},
	{ID: 2, BreathDurationSecond: 3.0, ScoreGoal: 1000, Theme: "meadow"},
	{ID: 3, BreathDurationSecond: 3.0, ScoreGoal: 2000, Theme: "sunset"},
}

// DefaultLevels returns a copy of TherapyLevels safe to mutate
func DefaultLevels() []core.LevelConfig {
	out := make([]core.LevelConfig, len(TherapyLevels))
	copy(out, TherapyLevels)
	return out
}
