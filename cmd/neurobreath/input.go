package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neurobreath/core"
)

// intentKind is what a key press asks the game to do
type intentKind uint8

const (
	intentNone intentKind = iota
	intentQuit
	intentSelectMode
	intentMove
	intentSwap
	intentTap
	intentBlow
	intentExit
	intentRetry
	intentNext
	intentMute
)

type intent struct {
	kind   intentKind
	mode   core.GameMode
	dr, dc int
}

var directionKeys = map[tcell.Key][2]int{
	tcell.KeyUp:    {-1, 0},
	tcell.KeyDown:  {1, 0},
	tcell.KeyLeft:  {0, -1},
	tcell.KeyRight: {0, 1},
}

var directionRunes = map[rune][2]int{
	'k': {-1, 0},
	'j': {1, 0},
	'h': {0, -1},
	'l': {0, 1},
}

var modeRunes = map[rune]core.GameMode{
	'1': core.ModeTherapy,
	'2': core.ModeTimeTrial,
	'3': core.ModeInfinite,
}

// keyIntent maps a key event to an intent for the current phase
func keyIntent(ev *tcell.EventKey, phase core.GamePhase) intent {
	if ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
		return intent{kind: intentQuit}
	}
	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'q':
			return intent{kind: intentQuit}
		case 'm':
			return intent{kind: intentMute}
		}
	}

	switch {
	case phase == core.PhaseModeSelect:
		if ev.Key() == tcell.KeyRune {
			if m, ok := modeRunes[ev.Rune()]; ok {
				return intent{kind: intentSelectMode, mode: m}
			}
		}

	case phase.Ended():
		switch {
		case ev.Key() == tcell.KeyEscape:
			return intent{kind: intentExit}
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'r':
			return intent{kind: intentRetry}
		case ev.Rune() == 'n':
			return intent{kind: intentNext}
		}

	case phase == core.PhasePlaying:
		return playingIntent(ev)
	}
	return intent{}
}

func playingIntent(ev *tcell.EventKey) intent {
	switch ev.Key() {
	case tcell.KeyEscape:
		return intent{kind: intentExit}
	case tcell.KeyEnter:
		return intent{kind: intentTap}
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		d := directionKeys[ev.Key()]
		if ev.Modifiers()&tcell.ModShift != 0 {
			return intent{kind: intentSwap, dr: d[0], dc: d[1]}
		}
		return intent{kind: intentMove, dr: d[0], dc: d[1]}
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return intent{kind: intentBlow}
		}
		if d, ok := directionRunes[r]; ok {
			return intent{kind: intentMove, dr: d[0], dc: d[1]}
		}
		// Shifted vi keys swap
		if d, ok := directionRunes[r+'a'-'A']; ok && r >= 'A' && r <= 'Z' {
			return intent{kind: intentSwap, dr: d[0], dc: d[1]}
		}
	}
	return intent{}
}

// neighbor steps from index by (dr, dc) on a rows×cols board
func neighbor(index, rows, cols, dr, dc int) (int, bool) {
	if rows <= 0 || cols <= 0 {
		return 0, false
	}
	r, c := index/cols+dr, index%cols+dc
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return index, false
	}
	return r*cols + c, true
}
