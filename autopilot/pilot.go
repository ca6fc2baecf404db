// Package autopilot plays the game headlessly: swap when a match is available, otherwise breathe
package autopilot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/grid"
	"github.com/lixenwraith/neurobreath/session"
)

// Action is what one Step decided
type Action uint8

const (
	ActionWait Action = iota
	ActionSwap
	ActionTap
)

func (a Action) String() string {
	switch a {
	case ActionSwap:
		return "swap"
	case ActionTap:
		return "tap"
	default:
		return "wait"
	}
}

// Result summarizes a finished run
type Result struct {
	Mode     core.GameMode
	Phase    core.GamePhase
	Score    int
	Level    int
	Lives    int
	Frames   int64
	Swaps    int
	Taps     int
	GameTime time.Duration
}

// Pilot drives a controller through its public API only
type Pilot struct {
	ctrl   *session.Controller
	logger *slog.Logger
	swaps  int
	taps   int
}

func New(ctrl *session.Controller, logger *slog.Logger) *Pilot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pilot{ctrl: ctrl, logger: logger.With("component", "autopilot")}
}

// Step inspects the current view and issues at most one input
func (p *Pilot) Step() Action {
	v := p.ctrl.View()
	if v.Phase != core.PhasePlaying || v.Busy || v.Breath.Phase != core.BreathIdle {
		return ActionWait
	}
	g, err := grid.FromCells(v.Rows, v.Cols, v.Cells)
	if err != nil {
		p.logger.Warn("unreadable view", "error", err)
		return ActionWait
	}

	if from, to, ok := FindSwap(g); ok && p.ctrl.Swap(from, to) {
		p.swaps++
		p.logger.Debug("swap", "from", from, "to", to)
		return ActionSwap
	}
	if idx, ok := PickTap(g); ok && p.ctrl.Tap(idx) {
		p.taps++
		p.logger.Debug("tap", "index", idx)
		return ActionTap
	}
	return ActionWait
}

// Run plays until the session ends or limit of game time passes, advancing dt per frame
// Therapy level completions advance to the next level automatically
func (p *Pilot) Run(ctx context.Context, limit, dt time.Duration) (Result, error) {
	if dt <= 0 {
		dt = constant.FrameUpdateInterval
	}
	var elapsed time.Duration
	var frames int64

	for elapsed < limit {
		if err := ctx.Err(); err != nil {
			return p.result(frames, elapsed), fmt.Errorf("autopilot interrupted: %w", err)
		}

		phase := p.ctrl.Phase()
		if phase == core.PhaseLevelComplete {
			p.ctrl.NextLevel()
			continue
		}
		if phase != core.PhasePlaying {
			break
		}

		p.Step()
		p.ctrl.Advance(dt)
		elapsed += dt
		frames++
	}
	return p.result(frames, elapsed), nil
}

func (p *Pilot) result(frames int64, elapsed time.Duration) Result {
	v := p.ctrl.View()
	return Result{
		Mode:     v.Mode,
		Phase:    v.Phase,
		Score:    v.Score,
		Level:    v.Level,
		Lives:    v.Lives,
		Frames:   frames,
		Swaps:    p.swaps,
		Taps:     p.taps,
		GameTime: elapsed,
	}
}

// FindSwap returns the first adjacent Revealed pair, scanning right then down, whose swap makes a match
func FindSwap(g *grid.Grid) (from, to int, ok bool) {
	for i := 0; i < g.Len(); i++ {
		if g.Get(i).Visibility != core.Revealed {
			continue
		}
		row, col := g.ToRowCol(i)
		candidates := make([]int, 0, 2)
		if col+1 < g.Cols() {
			candidates = append(candidates, g.Index(row, col+1))
		}
		if row+1 < g.Rows() {
			candidates = append(candidates, g.Index(row+1, col))
		}
		for _, j := range candidates {
			if g.Get(j).Visibility != core.Revealed {
				continue
			}
			g.Swap(i, j)
			matched := len(g.FindMatches()) > 0
			g.Swap(i, j)
			if matched {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// PickTap returns the Hidden cell whose blast would reveal the most Hidden cells
func PickTap(g *grid.Grid) (int, bool) {
	best, bestGain := -1, 0
	for i := 0; i < g.Len(); i++ {
		if g.Get(i).Visibility != core.Hidden {
			continue
		}
		gain := 0
		for _, j := range g.BlastArea(i, constant.BlastRadius) {
			if g.Get(j).Visibility == core.Hidden {
				gain++
			}
		}
		if gain > bestGain {
			best, bestGain = i, gain
		}
	}
	return best, best >= 0
}
