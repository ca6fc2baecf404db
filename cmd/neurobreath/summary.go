package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/neurobreath/autopilot"
	"github.com/lixenwraith/neurobreath/calibration"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/status"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0b7285", Dark: "#66d9e8"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6c757d", Dark: "#868e96"}
	colorGood   = lipgloss.AdaptiveColor{Light: "#2b8a3e", Dark: "#8ce99a"}
	colorBad    = lipgloss.AdaptiveColor{Light: "#c92a2a", Dark: "#ff8787"}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)

type field struct {
	label string
	value string
}

// renderPanel draws a titled box of label/value rows
func renderPanel(title string, fields []field) string {
	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, f := range fields {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(f.label),
			valueStyle.Render(f.value),
		))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func phaseStyle(p core.GamePhase) lipgloss.Style {
	switch p {
	case core.PhaseVictory, core.PhaseLevelComplete:
		return valueStyle.Foreground(colorGood)
	case core.PhaseGameOver:
		return valueStyle.Foreground(colorBad)
	default:
		return valueStyle
	}
}

// sessionFields describes a finished session and the last biometric state
func sessionFields(mode core.GameMode, phase core.GamePhase, score, level int, bio core.BiometricReading, reg *status.Registry) []field {
	fields := []field{
		{"Mode", mode.String()},
		{"Outcome", phaseStyle(phase).Render(phase.String())},
		{"Score", fmt.Sprintf("%d", score)},
	}
	if mode == core.ModeTherapy {
		fields = append(fields, field{"Level", fmt.Sprintf("%d", level)})
	}
	fields = append(fields,
		field{"Heart rate", fmt.Sprintf("%d bpm", bio.HeartRate)},
		field{"HRV", fmt.Sprintf("%d ms", bio.HRV)},
		field{"Stress", bio.Stress.String()},
	)
	if reg != nil {
		fields = append(fields,
			field{"Recoveries", fmt.Sprintf("%d", reg.Ints.Get(status.KeyRecovery).Load())},
			field{"Frames", fmt.Sprintf("%d", reg.Ints.Get(status.KeyFrames).Load())},
		)
	}
	return fields
}

func writeSessionSummary(w io.Writer, mode core.GameMode, phase core.GamePhase, score, level int, bio core.BiometricReading, reg *status.Registry) {
	fmt.Fprintln(w, renderPanel("NeuroBreath session", sessionFields(mode, phase, score, level, bio, reg)))
}

func writeSimulationSummary(w io.Writer, res autopilot.Result, bio core.BiometricReading, reg *status.Registry) {
	fields := sessionFields(res.Mode, res.Phase, res.Score, res.Level, bio, reg)
	fields = append(fields,
		field{"Game time", res.GameTime.Round(100 * time.Millisecond).String()},
		field{"Swaps", fmt.Sprintf("%d", res.Swaps)},
		field{"Breaths", fmt.Sprintf("%d", res.Taps)},
	)
	if res.Mode == core.ModeInfinite {
		fields = append(fields, field{"Lives", fmt.Sprintf("%d", res.Lives)})
	}
	fmt.Fprintln(w, renderPanel("NeuroBreath simulation", fields))
}

func writeCalibrationSummary(w io.Writer, a calibration.Answers, res calibration.Result) {
	fields := []field{
		{"Facial stress", fmt.Sprintf("%d%%", a.FacialStress)},
		{"Fatigue", fmt.Sprintf("%d%%", a.FacialFatigue)},
		{"Happiness", fmt.Sprintf("%d%%", a.FacialHappiness)},
		{"Sleep", a.Sleep.String()},
		{"Stress", a.Stress.String()},
		{"Risk", fmt.Sprintf("%d", res.Risk)},
		{"Profile", titleStyle.Render(res.Profile.Label)},
		{"Game", res.RecommendedGame},
	}
	fmt.Fprintln(w, renderPanel("NeuroBreath calibration", fields))
	hint := fmt.Sprintf("play with: neurobreath play --profile %s", res.Profile.Name)
	fmt.Fprintln(w, lipgloss.NewStyle().Faint(true).Render(hint))
}
