// Package session owns the game state: grid, breath cycle, mode rules and deferred work
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/lixenwraith/neurobreath/breath"
	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/grid"
	"github.com/lixenwraith/neurobreath/parameter"
	"github.com/lixenwraith/neurobreath/signal"
)

// ErrInvalidMode is returned by SelectMode for an unknown mode
var ErrInvalidMode = errors.New("invalid game mode")

// Scheduler task names
const (
	taskSwapCheck     = "swap_check"
	taskGravity       = "gravity"
	taskLevelComplete = "level_complete"
)

// Controller is the session state machine
// All public methods serialize on one mutex, so input, frame and timer goroutines may call freely
type Controller struct {
	mu sync.Mutex

	cfg      Config
	loudness signal.LoudnessSource
	events   *event.EventQueue
	rng      *rand.Rand
	logger   *slog.Logger

	phase core.GamePhase
	mode  core.GameMode

	grid     *grid.Grid
	breath   *breath.Machine
	sched    *Scheduler
	tutorial Tutorial

	score         int
	levelIdx      int
	lives         int
	timeRemaining time.Duration
	countdown     time.Duration // Accumulates toward the next 1 Hz countdown tick
	goalReached   bool
	busy          bool
	shake         time.Duration
	instruction   string
	frame         int64
}

// New creates a controller in ModeSelect
func New(cfg Config, deps Deps) *Controller {
	cfg = cfg.withDefaults()
	if deps.Loudness == nil {
		deps.Loudness = signal.Fixed(0)
	}
	if deps.Events == nil {
		deps.Events = event.NewEventQueue()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	c := &Controller{
		cfg:      cfg,
		loudness: deps.Loudness,
		events:   deps.Events,
		rng:      deps.Rand,
		logger:   deps.Logger.With("component", "session"),
		phase:    core.PhaseModeSelect,
		breath:   breath.NewMachine(cfg.TickRate),
		sched:    NewScheduler(),
	}
	c.breath.SetThreshold(cfg.ExhaleThreshold)
	c.instruction = parameter.MsgWelcome
	return c
}

// Events returns the queue the controller emits into
func (c *Controller) Events() *event.EventQueue {
	return c.events
}

// SelectMode starts a fresh session of mode from any phase
func (c *Controller) SelectMode(mode core.GameMode) error {
	switch mode {
	case core.ModeTherapy, core.ModeTimeTrial, core.ModeInfinite:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode
	c.levelIdx = 0
	c.lives = c.cfg.Lives
	c.timeRemaining = c.cfg.TimeTrialDuration
	c.countdown = 0
	c.startLevel()
	c.logger.Info("mode selected", "mode", mode, "profile", c.cfg.Profile.Name)
	return nil
}

// startLevel builds a fresh grid for the current level and enters Playing
func (c *Controller) startLevel() {
	c.sched.Clear()
	c.breath.Reset()
	c.breath.SetDuration(c.levelConfig().BreathDurationSecond * c.cfg.Profile.BreathDurationMultiplier)
	c.grid = grid.New(c.cfg.Rows, c.cfg.Cols, c.rng)
	c.score = 0
	c.goalReached = false
	c.busy = false
	c.shake = 0
	c.tutorial = Tutorial{}
	c.setInstruction(c.tutorial.Welcome())
	c.transition(core.PhasePlaying)
}

func (c *Controller) levelConfig() core.LevelConfig {
	if c.mode != core.ModeTherapy {
		return c.cfg.Levels[0]
	}
	return c.cfg.Levels[c.levelIdx]
}

// Tap starts a breath cycle on a Hidden cell; any other tap is a no-op
func (c *Controller) Tap(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != core.PhasePlaying || !c.grid.Valid(index) {
		return false
	}
	cell := c.grid.Get(index)
	if cell.Visibility != core.Hidden || !c.breath.Idle() {
		return false
	}
	if !c.breath.Start(cell.ID) {
		return false
	}

	c.emit(event.EventBreathPhase, &event.BreathPhasePayload{Phase: core.BreathInhale, Target: cell.ID})
	if msg, ok := c.tutorial.OnBreathStart(); ok {
		c.setInstruction(msg)
	} else if c.tutorial.Done() {
		c.setInstruction(parameter.MsgBreathInhale)
	}
	c.logger.Debug("breath started", "index", index, "target", cell.ID)
	return true
}

// Swap exchanges two adjacent Revealed cells and schedules the match check
// Rejected while a breath is active or another swap or gravity pass is pending
func (c *Controller) Swap(from, to int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != core.PhasePlaying || c.busy || !c.breath.Idle() {
		return false
	}
	if !c.grid.Adjacent(from, to) {
		return false
	}
	if c.grid.Get(from).Visibility != core.Revealed || c.grid.Get(to).Visibility != core.Revealed {
		return false
	}

	c.grid.Swap(from, to)
	c.busy = true
	c.sched.After(c.cfg.SwapCheckDelay, taskSwapCheck, func() { c.checkSwap(from, to) })
	return true
}

// checkSwap resolves a pending swap: revert on no match, pop and score otherwise
func (c *Controller) checkSwap(from, to int) {
	matched := c.grid.FindMatches()
	if len(matched) == 0 {
		c.grid.Swap(from, to)
		c.busy = false
		if msg, ok := c.tutorial.OnInvalidSwap(); ok {
			c.setInstruction(msg)
		}
		if c.mode == core.ModeInfinite {
			c.loseLife()
		}
		return
	}

	c.grid.MarkPopped(matched)
	delta := len(matched) * c.cfg.ScorePerCell
	c.score += delta

	c.emit(event.EventPopSound, nil)
	c.emit(event.EventRecovery, &event.RecoveryPayload{Source: event.RecoveryMatch})
	c.emit(event.EventScore, &event.ScorePayload{Delta: delta, Total: c.score, Matched: len(matched)})
	if msg, ok := c.tutorial.OnMatch(); ok {
		c.setInstruction(msg)
	}
	c.logger.Debug("match", "cells", len(matched), "score", c.score)

	c.sched.After(c.cfg.GravityDelay, taskGravity, c.applyGravity)
	c.checkGoal()
}

func (c *Controller) applyGravity() {
	created := c.grid.ApplyGravity(c.rng)
	c.busy = false
	c.logger.Debug("gravity", "created", created)
}

func (c *Controller) loseLife() {
	c.lives--
	if c.lives < 0 {
		c.lives = 0
	}
	c.emit(event.EventLifeLost, &event.LifeLostPayload{Remaining: c.lives})
	c.logger.Debug("life lost", "remaining", c.lives)
	if c.lives == 0 {
		c.finish(core.PhaseGameOver)
	}
}

// checkGoal schedules LevelComplete once per level when the therapy goal is met
func (c *Controller) checkGoal() {
	if c.mode != core.ModeTherapy || c.goalReached {
		return
	}
	if c.score < c.levelConfig().ScoreGoal {
		return
	}
	c.goalReached = true
	c.sched.After(c.cfg.LevelCompleteDelay, taskLevelComplete, func() {
		c.emit(event.EventWinSound, nil)
		c.finish(core.PhaseLevelComplete)
	})
}

// Advance moves the session forward by dt: deferred work, breath meter, shake and countdown
func (c *Controller) Advance(dt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != core.PhasePlaying {
		return
	}
	c.frame++
	c.grid.ClearNew()

	c.sched.Advance(dt)
	if c.phase != core.PhasePlaying {
		return
	}

	c.advanceBreath(dt)

	if c.shake > 0 {
		c.shake = max(c.shake-dt, 0)
	}

	if c.mode == core.ModeTimeTrial {
		c.advanceCountdown(dt)
	}
}

func (c *Controller) advanceBreath(dt time.Duration) {
	step := c.breath.Advance(dt, c.loudness.Level())
	if !step.PhaseChanged {
		return
	}

	if !step.Completed {
		c.emit(event.EventBreathPhase, &event.BreathPhasePayload{Phase: step.Phase, Target: c.breath.Target()})
		if msg, ok := c.tutorial.OnExhale(); ok {
			c.setInstruction(msg)
		} else if c.tutorial.Done() {
			c.setInstruction(parameter.MsgBreathExhale)
		}
		return
	}

	c.emit(event.EventBreathPhase, &event.BreathPhasePayload{Phase: core.BreathIdle, Target: step.Target})
	c.completeBreath(step.Target)
}

// completeBreath reveals the blast area around the target's current position
func (c *Controller) completeBreath(target string) {
	center, ok := c.grid.Find(target)
	if !ok {
		c.logger.Warn("breath target vanished", "target", target)
		return
	}
	revealed := c.grid.Reveal(center, c.cfg.BlastRadius)

	c.shake = c.cfg.ShakeDuration
	c.emit(event.EventPopSound, nil)
	c.emit(event.EventRecovery, &event.RecoveryPayload{Source: event.RecoveryBreath})
	c.emit(event.EventScreenShake, &event.ShakePayload{Duration: c.cfg.ShakeDuration})
	if msg, ok := c.tutorial.OnBreathComplete(); ok {
		c.setInstruction(msg)
	} else if c.tutorial.Done() {
		c.setInstruction(parameter.MsgBreathIdle)
	}
	c.logger.Debug("breath complete", "center", center, "revealed", len(revealed))
}

func (c *Controller) advanceCountdown(dt time.Duration) {
	c.countdown += dt
	for c.countdown >= time.Second && c.timeRemaining > 0 {
		c.countdown -= time.Second
		c.timeRemaining -= time.Second
	}
	if c.timeRemaining <= 0 {
		c.timeRemaining = 0
		c.finish(core.PhaseVictory)
	}
}

// NextLevel leaves LevelComplete for the next therapy level, or Victory after the last
func (c *Controller) NextLevel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != core.PhaseLevelComplete {
		return false
	}
	if c.levelIdx+1 >= len(c.cfg.Levels) {
		c.transition(core.PhaseVictory)
		c.logger.Info("therapy complete", "levels", len(c.cfg.Levels))
		return true
	}
	c.levelIdx++
	c.startLevel()
	c.logger.Info("level started", "level", c.levelIdx+1)
	return true
}

// Retry restarts the current mode from its first level with fresh lives and clock
func (c *Controller) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == core.PhaseModeSelect {
		return false
	}
	c.levelIdx = 0
	c.lives = c.cfg.Lives
	c.timeRemaining = c.cfg.TimeTrialDuration
	c.countdown = 0
	c.startLevel()
	c.logger.Info("retry", "mode", c.mode, "level", c.levelIdx+1)
	return true
}

// Exit abandons the session and returns to ModeSelect, dropping all deferred work
func (c *Controller) Exit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == core.PhaseModeSelect {
		return
	}
	c.sched.Clear()
	c.breath.Reset()
	c.busy = false
	c.shake = 0
	c.transition(core.PhaseModeSelect)
	c.logger.Info("exit to mode select", "mode", c.mode, "score", c.score)
}

// finish ends play in an end phase and drops pending work
func (c *Controller) finish(to core.GamePhase) {
	c.sched.Clear()
	c.breath.Reset()
	c.busy = false
	c.shake = 0
	c.transition(to)
	c.logger.Info("session ended", "mode", c.mode, "phase", to, "score", c.score, "level", c.levelIdx+1)
}

func (c *Controller) transition(to core.GamePhase) {
	from := c.phase
	c.phase = to
	c.emit(event.EventPhaseChange, &event.PhaseChangePayload{
		From:  from,
		To:    to,
		Mode:  c.mode,
		Score: c.score,
		Level: c.levelIdx + 1,
	})
}

func (c *Controller) setInstruction(text string) {
	if text == c.instruction {
		return
	}
	c.instruction = text
	c.emit(event.EventInstruction, &event.InstructionPayload{Text: text})
}

func (c *Controller) emit(t event.EventType, payload any) {
	c.events.Emit(t, payload, c.frame)
}

func (c *Controller) Phase() core.GamePhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Mode() core.GameMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

func (c *Controller) Lives() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lives
}

func (c *Controller) TimeRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeRemaining
}

// Level returns the 1-based therapy level
func (c *Controller) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.levelIdx + 1
}

// Profile returns the difficulty profile the session runs with
func (c *Controller) Profile() core.DifficultyProfile {
	return c.cfg.Profile
}

// View captures a consistent snapshot of the session
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase:          c.phase,
		Mode:           c.mode,
		Frame:          c.frame,
		Rows:           c.cfg.Rows,
		Cols:           c.cfg.Cols,
		Score:          c.score,
		Level:          c.levelIdx + 1,
		LevelCount:     len(c.cfg.Levels),
		Lives:          c.lives,
		TimeRemaining:  c.timeRemaining,
		Instruction:    c.instruction,
		Tutorial:       c.tutorial.Step(),
		Profile:        c.cfg.Profile,
		Busy:           c.busy,
		ShakeRemaining: c.shake,
	}
	if c.mode == core.ModeTherapy {
		v.ScoreGoal = c.levelConfig().ScoreGoal
	}
	if c.grid != nil {
		v.Cells = c.grid.Cells()
	}

	b := BreathView{
		Phase:       c.breath.Phase(),
		Target:      c.breath.Target(),
		TargetIndex: -1,
		Inhale:      c.breath.InhaleProgress(),
		Exhale:      c.breath.ExhaleProgress(),
	}
	if b.Target != "" && c.grid != nil {
		if idx, ok := c.grid.Find(b.Target); ok {
			b.TargetIndex = idx
		}
	}
	switch b.Phase {
	case core.BreathInhale:
		b.SecondsLeft = (constant.ProgressMax - b.Inhale) / constant.ProgressMax * c.breath.Duration()
	case core.BreathExhale:
		b.SecondsLeft = (constant.ProgressMax - b.Exhale) / constant.ProgressMax * c.breath.Duration()
	}
	v.Breath = b
	return v
}

// Grid returns a copy of the live grid for inspection
func (c *Controller) Grid() *grid.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid == nil {
		return nil
	}
	return c.grid.Clone()
}
