package session

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/parameter"
	"github.com/lixenwraith/neurobreath/signal"
)

// Config holds the gameplay tunables of a session
type Config struct {
	Rows     int
	Cols     int
	TickRate int

	Levels  []core.LevelConfig
	Profile core.DifficultyProfile

	TimeTrialDuration time.Duration
	Lives             int
	ScorePerCell      int
	ExhaleThreshold   float64
	BlastRadius       int

	SwapCheckDelay     time.Duration
	GravityDelay       time.Duration
	LevelCompleteDelay time.Duration
	ShakeDuration      time.Duration
}

// DefaultConfig returns the stock 7x7 game with the focus profile
func DefaultConfig() Config {
	return Config{
		Rows:               constant.GridRows,
		Cols:               constant.GridCols,
		TickRate:           constant.DefaultTickRate,
		Levels:             parameter.DefaultLevels(),
		Profile:            parameter.ProfileFocus,
		TimeTrialDuration:  constant.TimeTrialDuration,
		Lives:              constant.InfiniteLives,
		ScorePerCell:       constant.ScorePerCell,
		ExhaleThreshold:    constant.ExhaleLoudnessThreshold,
		BlastRadius:        constant.BlastRadius,
		SwapCheckDelay:     constant.SwapCheckDelay,
		GravityDelay:       constant.GravityDelay,
		LevelCompleteDelay: constant.LevelCompleteDelay,
		ShakeDuration:      constant.ShakeDuration,
	}
}

// withDefaults fills zero fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Rows <= 0 {
		c.Rows = d.Rows
	}
	if c.Cols <= 0 {
		c.Cols = d.Cols
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if len(c.Levels) == 0 {
		c.Levels = d.Levels
	}
	if c.Profile.Name == "" {
		c.Profile = d.Profile
	}
	if c.TimeTrialDuration <= 0 {
		c.TimeTrialDuration = d.TimeTrialDuration
	}
	if c.Lives <= 0 {
		c.Lives = d.Lives
	}
	if c.ScorePerCell <= 0 {
		c.ScorePerCell = d.ScorePerCell
	}
	if c.ExhaleThreshold <= 0 {
		c.ExhaleThreshold = d.ExhaleThreshold
	}
	if c.BlastRadius <= 0 {
		c.BlastRadius = d.BlastRadius
	}
	return c
}

// Deps are the collaborators injected into a controller; nil fields get inert defaults
type Deps struct {
	Loudness signal.LoudnessSource
	Events   *event.EventQueue
	Rand     *rand.Rand
	Logger   *slog.Logger
}
