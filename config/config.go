// Package config layers compiled defaults, a TOML file and the environment into one game configuration
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/neurobreath/audio"
	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/parameter"
	"github.com/lixenwraith/neurobreath/session"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables
const (
	EnvSeed     = "NEUROBREATH_SEED"
	EnvTickRate = "NEUROBREATH_TICK_RATE"
	EnvLogLevel = "NEUROBREATH_LOG_LEVEL"
	EnvLogFile  = "NEUROBREATH_LOG_FILE"
	EnvMute     = "NEUROBREATH_MUTE"
	EnvProfile  = "NEUROBREATH_PROFILE"
	EnvVolume   = "NEUROBREATH_VOLUME"
)

// Config is the file and environment facing configuration
type Config struct {
	Seed     int64   `toml:"seed"` // 0 picks a time-based seed
	TickRate int     `toml:"tick_rate"`
	Profile  string  `toml:"profile"`
	Mute     bool    `toml:"mute"`
	Volume   float64 `toml:"volume"`

	Log    LogConfig     `toml:"log"`
	Game   GameConfig    `toml:"game"`
	Levels []LevelConfig `toml:"levels"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type GameConfig struct {
	Rows             int     `toml:"rows"`
	Cols             int     `toml:"cols"`
	Lives            int     `toml:"lives"`
	TimeTrialSeconds int     `toml:"time_trial_seconds"`
	ExhaleThreshold  float64 `toml:"exhale_threshold"`
}

type LevelConfig struct {
	ID            int     `toml:"id"`
	BreathSeconds float64 `toml:"breath_seconds"`
	ScoreGoal     int     `toml:"score_goal"`
	Theme         string  `toml:"theme"`
}

// Default returns the built-in configuration
func Default() Config {
	levels := make([]LevelConfig, 0, len(parameter.TherapyLevels))
	for _, l := range parameter.TherapyLevels {
		levels = append(levels, LevelConfig{
			ID:            l.ID,
			BreathSeconds: l.BreathDurationSecond,
			ScoreGoal:     l.ScoreGoal,
			Theme:         l.Theme,
		})
	}
	return Config{
		TickRate: constant.DefaultTickRate,
		Profile:  parameter.ProfileFocus.Name,
		Volume:   1.0,
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogFile(),
		},
		Game: GameConfig{
			Rows:             constant.GridRows,
			Cols:             constant.GridCols,
			Lives:            constant.InfiniteLives,
			TimeTrialSeconds: int(constant.TimeTrialDuration / time.Second),
			ExhaleThreshold:  constant.ExhaleLoudnessThreshold,
		},
		Levels: levels,
	}
}

// DefaultLogFile is neurobreath.log in the temp directory; the terminal belongs to the game
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "neurobreath.log")
}

// Load reads defaults overlaid by the TOML file at path; empty path skips the file
// Unknown keys are rejected so typos do not silently fall back to defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadDotEnv loads path into the process environment; a missing file is not an error
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("no .env file", "path", path)
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	slog.Debug("loaded .env file", "path", path)
	return nil
}

// ApplyEnv overlays NEUROBREATH_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var errs []error

	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err))
		} else {
			c.Seed = seed
		}
	}
	if v, ok := lookup(EnvTickRate); ok && v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvTickRate, v, err))
		} else {
			c.TickRate = rate
		}
	}
	if v, ok := lookup(EnvMute); ok && v != "" {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvMute, v, err))
		} else {
			c.Mute = mute
		}
	}
	if v, ok := lookup(EnvVolume); ok && v != "" {
		vol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvVolume, v, err))
		} else {
			c.Volume = vol
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.Log.File = v
	}
	if v, ok := lookup(EnvProfile); ok && v != "" {
		c.Profile = v
	}
	return errors.Join(errs...)
}

// Validate reports every invalid field; each error wraps ErrInvalidConfig
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.TickRate <= 0 {
		bad("tick_rate must be positive, got %d", c.TickRate)
	}
	if _, ok := parameter.ProfileByName(c.Profile); !ok {
		bad("unknown profile %q", c.Profile)
	}
	if c.Volume < 0 || c.Volume > 1 {
		bad("volume must be within 0-1, got %g", c.Volume)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		bad("%v", err)
	}
	if c.Game.Rows < constant.MatchMinSize || c.Game.Cols < constant.MatchMinSize {
		bad("grid %dx%d is smaller than a match", c.Game.Rows, c.Game.Cols)
	}
	if c.Game.Lives <= 0 {
		bad("lives must be positive, got %d", c.Game.Lives)
	}
	if c.Game.TimeTrialSeconds <= 0 {
		bad("time_trial_seconds must be positive, got %d", c.Game.TimeTrialSeconds)
	}
	if c.Game.ExhaleThreshold <= 0 {
		bad("exhale_threshold must be positive, got %g", c.Game.ExhaleThreshold)
	}
	if len(c.Levels) == 0 {
		bad("at least one level is required")
	}
	for i, l := range c.Levels {
		if l.ScoreGoal <= 0 {
			bad("level %d: score_goal must be positive, got %d", i+1, l.ScoreGoal)
		}
		if l.BreathSeconds < 0 {
			bad("level %d: breath_seconds must not be negative, got %g", i+1, l.BreathSeconds)
		}
	}
	return errors.Join(errs...)
}

// ParseLevel maps debug|info|warn|error to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// DifficultyProfile resolves the configured profile name
func (c Config) DifficultyProfile() core.DifficultyProfile {
	p, ok := parameter.ProfileByName(c.Profile)
	if !ok {
		return parameter.ProfileFocus
	}
	return p
}

// SessionConfig converts to the controller's configuration
func (c Config) SessionConfig() session.Config {
	sc := session.DefaultConfig()
	sc.Rows = c.Game.Rows
	sc.Cols = c.Game.Cols
	sc.TickRate = c.TickRate
	sc.Lives = c.Game.Lives
	sc.TimeTrialDuration = time.Duration(c.Game.TimeTrialSeconds) * time.Second
	sc.ExhaleThreshold = c.Game.ExhaleThreshold
	sc.Profile = c.DifficultyProfile()

	sc.Levels = make([]core.LevelConfig, 0, len(c.Levels))
	for i, l := range c.Levels {
		id := l.ID
		if id == 0 {
			id = i + 1
		}
		sc.Levels = append(sc.Levels, core.LevelConfig{
			ID:                   id,
			BreathDurationSecond: l.BreathSeconds,
			ScoreGoal:            l.ScoreGoal,
			Theme:                l.Theme,
		})
	}
	return sc
}

// AudioConfig converts to the tone player's configuration
func (c Config) AudioConfig() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = !c.Mute
	ac.MasterVolume = c.Volume
	return ac
}
