package parameter

import (
	"strings"

	"github.com/lixenwraith/neurobreath/core"
)

// Built-in difficulty profiles
var (
	// ProfileRelax slows the breath 50% to force relaxation
	ProfileRelax = core.DifficultyProfile{
		Name:                     "relax",
		BreathDurationMultiplier: 1.5,
		VisualSpeed:              core.VisualSlow,
		Label:                    "Deep Relaxation Mode",
	}

	// ProfileFocus keeps the reference breath length
	ProfileFocus = core.DifficultyProfile{
		Name:                     "focus",
		BreathDurationMultiplier: 1.0,
		VisualSpeed:              core.VisualNormal,
		Label:                    "Cognitive Activation Mode",
	}
)

// ProfileByName resolves a built-in profile
func ProfileByName(name string) (core.DifficultyProfile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProfileRelax.Name:
		return ProfileRelax, true
	case ProfileFocus.Name, "":
		return ProfileFocus, true
	}
	return core.DifficultyProfile{}, false
}
