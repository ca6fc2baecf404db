package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/neurobreath/config"
)

// App carries the resolved configuration shared by every subcommand
type App struct {
	ConfigPath string
	EnvFile    string
	Seed       int64
	TickRate   int
	Profile    string
	Mute       bool
	LogLevel   string
	LogFile    string
	LogStderr  bool

	cfg     config.Config
	logger  *slog.Logger
	logFile io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "neurobreath",
		Short:        "Breath-gated match puzzle for the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Play interactively (Space blows, Enter starts a breath)
  neurobreath

  # Start in the relax profile with sound off
  neurobreath play --profile relax --mute

  # Let the autopilot play five minutes of Time Trial
  neurobreath simulate --mode time-trial --duration 5m

  # Run the calibration questionnaire with a simulated face scan
  neurobreath calibrate --sleep poor --stress high
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		app.close()
		return nil
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "Path to a TOML config file")
	flags.StringVar(&app.EnvFile, "env-file", ".env", "Path to a .env file (missing is fine)")
	flags.Int64Var(&app.Seed, "seed", 0, "Random seed; 0 picks one from the clock")
	flags.IntVar(&app.TickRate, "tick-rate", 0, "Breath reference frame rate")
	flags.StringVar(&app.Profile, "profile", "", "Difficulty profile (focus|relax)")
	flags.BoolVar(&app.Mute, "mute", false, "Disable sound")
	flags.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.StringVar(&app.LogFile, "log-file", "", "Log file path")
	flags.BoolVar(&app.LogStderr, "log-stderr", false, "Log to stderr instead of the log file (headless commands)")

	cmd.AddCommand(newPlayCmd(app))
	cmd.AddCommand(newSimulateCmd(app))
	cmd.AddCommand(newCalibrateCmd(app))

	return cmd
}

// load layers defaults, the TOML file, .env and environment, then explicit flags
func (a *App) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.Seed
	}
	if flags.Changed("tick-rate") {
		cfg.TickRate = a.TickRate
	}
	if flags.Changed("profile") {
		cfg.Profile = a.Profile
	}
	if flags.Changed("mute") {
		cfg.Mute = a.Mute
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.LogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.LogFile
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	return a.initializeLogger()
}

// initializeLogger sends text logs to the log file, or stderr for headless commands
func (a *App) initializeLogger() error {
	level, err := config.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if !a.LogStderr {
		f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = f
	}

	a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	a.logger.Debug("configuration loaded",
		"config", a.ConfigPath,
		"seed", a.cfg.Seed,
		"tick_rate", a.cfg.TickRate,
		"profile", a.cfg.Profile,
		"mute", a.cfg.Mute,
	)
	return nil
}

func (a *App) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// rand returns a generator derived from the configured seed; offset keeps streams independent
func (a *App) rand(offset int64) *rand.Rand {
	return rand.New(rand.NewSource(a.cfg.Seed + offset))
}
