package session

import "github.com/lixenwraith/neurobreath/parameter"

// TutorialStep is the advisory onboarding progress
type TutorialStep uint8

const (
	TutorialStart     TutorialStep = iota // Not yet breathed
	TutorialBreathing                     // First breath in progress
	TutorialSwapping                      // Breathed once, waiting for a match
	TutorialDone
)

func (t TutorialStep) String() string {
	switch t {
	case TutorialStart:
		return "start"
	case TutorialBreathing:
		return "breathing"
	case TutorialSwapping:
		return "swapping"
	case TutorialDone:
		return "done"
	default:
		return "unknown"
	}
}

// Tutorial tracks milestones and yields the message to show; it never blocks an action
type Tutorial struct {
	step TutorialStep
}

func (t *Tutorial) Step() TutorialStep { return t.step }

func (t *Tutorial) Done() bool { return t.step == TutorialDone }

// Welcome is the message for the current step before any milestone fires
func (t *Tutorial) Welcome() string {
	switch t.step {
	case TutorialStart:
		return parameter.MsgWelcome
	case TutorialBreathing:
		return parameter.MsgSelectCloud
	case TutorialSwapping:
		return parameter.MsgSwap
	default:
		return parameter.MsgBreathIdle
	}
}

// OnBreathStart also fires again when an interrupted first breath is restarted
func (t *Tutorial) OnBreathStart() (string, bool) {
	if t.step != TutorialStart && t.step != TutorialBreathing {
		return "", false
	}
	t.step = TutorialBreathing
	return parameter.MsgInhale, true
}

func (t *Tutorial) OnExhale() (string, bool) {
	if t.step != TutorialBreathing {
		return "", false
	}
	return parameter.MsgExhale, true
}

func (t *Tutorial) OnBreathComplete() (string, bool) {
	if t.step != TutorialBreathing {
		return "", false
	}
	t.step = TutorialSwapping
	return parameter.MsgSwap, true
}

func (t *Tutorial) OnInvalidSwap() (string, bool) {
	if t.step != TutorialSwapping {
		return "", false
	}
	return parameter.MsgSwapHint, true
}

func (t *Tutorial) OnMatch() (string, bool) {
	if t.step != TutorialSwapping {
		return "", false
	}
	t.step = TutorialDone
	return parameter.MsgTutorialDone, true
}
