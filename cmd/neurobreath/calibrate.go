package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/neurobreath/calibration"
	"github.com/lixenwraith/neurobreath/core"
)

type calibrateOptions struct {
	faceStress int
	fatigue    int
	happiness  int
	sleep      string
	stress     string
}

func newCalibrateCmd(app *App) *cobra.Command {
	opts := &calibrateOptions{}

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Assess stress and recommend a difficulty profile",
		Long: `Assess stress from a face scan and a short questionnaire and recommend a
difficulty profile. Facial percentages left unset are simulated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrate(cmd, app, opts)
		},
	}
	cmd.Flags().IntVar(&opts.faceStress, "face-stress", -1, "Facial stress percentage (simulated when negative)")
	cmd.Flags().IntVar(&opts.fatigue, "fatigue", -1, "Facial fatigue percentage (simulated when negative)")
	cmd.Flags().IntVar(&opts.happiness, "happiness", -1, "Facial happiness percentage (simulated when negative)")
	cmd.Flags().StringVar(&opts.sleep, "sleep", "average", "Last night's sleep (good|average|poor)")
	cmd.Flags().StringVar(&opts.stress, "stress", "medium", "Self-reported stress (low|medium|high)")
	return cmd
}

func runCalibrate(cmd *cobra.Command, app *App, opts *calibrateOptions) error {
	sleep, err := calibration.ParseSleepQuality(opts.sleep)
	if err != nil {
		return err
	}
	stress, ok := core.ParseStressLevel(opts.stress)
	if !ok {
		return fmt.Errorf("unknown stress level %q", opts.stress)
	}
	for name, v := range map[string]int{"face-stress": opts.faceStress, "fatigue": opts.fatigue, "happiness": opts.happiness} {
		if v > 100 {
			return fmt.Errorf("%s must be at most 100, got %d", name, v)
		}
	}

	faceStress, fatigue, happiness := calibration.SimulateFace(app.rand(2))
	if opts.faceStress >= 0 {
		faceStress = opts.faceStress
	}
	if opts.fatigue >= 0 {
		fatigue = opts.fatigue
	}
	if opts.happiness >= 0 {
		happiness = opts.happiness
	}

	answers := calibration.Answers{
		FacialStress:    faceStress,
		FacialFatigue:   fatigue,
		FacialHappiness: happiness,
		Sleep:           sleep,
		Stress:          stress,
	}
	res := calibration.Assess(answers)
	app.logger.Info("calibration", "risk", res.Risk, "profile", res.Profile.Name)

	writeCalibrationSummary(cmd.OutOrStdout(), answers, res)
	return nil
}
