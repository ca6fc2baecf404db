package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/neurobreath/autopilot"
	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/session"
	"github.com/lixenwraith/neurobreath/signal"
	"github.com/lixenwraith/neurobreath/status"
)

type simulateOptions struct {
	mode     string
	duration time.Duration
	loudness float64
}

func newSimulateCmd(app *App) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Let the autopilot play headlessly and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, app, opts)
		},
	}
	cmd.Flags().StringVar(&opts.mode, "mode", "therapy", "Game mode (therapy|time-trial|infinite)")
	cmd.Flags().DurationVar(&opts.duration, "duration", 10*time.Minute, "Game time limit")
	cmd.Flags().Float64Var(&opts.loudness, "loudness", 50, "Constant exhale loudness fed to the breath gesture")
	return cmd
}

// runSimulate advances game time in biometric-interval chunks so the wearable walk and
// recovery events interleave with play the way they do live
func runSimulate(cmd *cobra.Command, app *App, opts *simulateOptions) error {
	mode, ok := core.ParseGameMode(opts.mode)
	if !ok {
		return fmt.Errorf("%w: %q", session.ErrInvalidMode, opts.mode)
	}
	if opts.duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", opts.duration)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := app.logger
	reg := status.NewRegistry()
	queue := event.NewEventQueue()

	ctrl := session.New(app.cfg.SessionConfig(), session.Deps{
		Loudness: signal.Fixed(opts.loudness),
		Events:   queue,
		Rand:     app.rand(0),
		Logger:   logger,
	})
	bio := signal.NewBiometricSimulator(signal.SimulatorOptions{
		Rand:     app.rand(1),
		Registry: reg,
		Logger:   logger,
	})

	router := event.NewRouter(queue)
	router.Register(bio)
	router.Register(newEventLogger(logger))

	if err := ctrl.SelectMode(mode); err != nil {
		return err
	}
	router.DispatchAll()

	pilot := autopilot.New(ctrl, logger)
	frames := reg.Ints.Get(status.KeyFrames)
	var total autopilot.Result

	for total.GameTime < opts.duration {
		chunk := min(constant.BiometricInterval, opts.duration-total.GameTime)
		res, err := pilot.Run(ctx, chunk, constant.FrameUpdateInterval)
		router.DispatchAll()
		bio.Step()

		total.GameTime += res.GameTime
		total.Frames += res.Frames
		frames.Add(res.Frames)
		res.GameTime, res.Frames = total.GameTime, total.Frames
		total = res

		if err != nil {
			return err
		}
		if res.Phase == core.PhaseVictory || res.Phase == core.PhaseGameOver {
			break
		}
	}

	logger.Info("simulation finished",
		"mode", total.Mode,
		"phase", total.Phase,
		"score", total.Score,
		"game_time", total.GameTime,
		"swaps", total.Swaps,
		"taps", total.Taps,
	)
	writeSimulationSummary(cmd.OutOrStdout(), total, bio.Current(), reg)
	return nil
}
