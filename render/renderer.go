// Package render draws session snapshots onto a tcell screen
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/session"
)

const (
	meterWidth    = 20
	loudnessWidth = 10
	loudnessScale = 100.0
)

// Frame is everything one draw needs: the session snapshot plus UI-only state
type Frame struct {
	View     session.View
	Cursor   int
	Selected int // Swap source, -1 when none
	Bio      core.BiometricReading
	Loudness float64
	Audio    string
}

// Renderer draws frames; it keeps the last layout for mouse hit-testing
type Renderer struct {
	screen tcell.Screen
	layout Layout
	base   tcell.Style
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		base:   tcell.StyleDefault.Background(RGBToTcell(RgbBackground)).Foreground(RGBToTcell(RgbText)),
	}
}

// Layout returns the layout of the last drawn frame
func (r *Renderer) Layout() Layout {
	return r.layout
}

// HitTest maps a mouse position to a cell index of the last drawn board
func (r *Renderer) HitTest(x, y int) (int, bool) {
	return r.layout.HitTest(x, y)
}

// Draw renders a full frame and shows it
func (r *Renderer) Draw(f Frame) {
	w, h := r.screen.Size()
	r.layout = ComputeLayout(w, h, f.View.Rows, f.View.Cols)

	r.screen.SetStyle(r.base)
	r.screen.Clear()

	if f.View.Phase == core.PhaseModeSelect {
		r.drawModeSelect(f)
		r.screen.Show()
		return
	}

	r.drawBioHeader(f.Bio)
	r.drawModeIndicator(f.View)
	r.drawScore(f.View)
	r.drawBoard(f)
	r.drawBreath(f)
	r.drawInstruction(f.View)
	r.drawFooter(f)

	if f.View.Phase.Ended() {
		r.drawEndScreen(f.View)
	}
	r.screen.Show()
}

func (r *Renderer) style(fg core.RGB) tcell.Style {
	return r.base.Foreground(RGBToTcell(fg))
}

// drawText writes s starting at x, clipped to the screen; returns the column after the text
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.layout.Height {
		return x
	}
	for _, ch := range s {
		if x >= 0 && x < r.layout.Width {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func (r *Renderer) drawCentered(y int, s string, style tcell.Style) {
	x := (r.layout.Width - len([]rune(s))) / 2
	r.drawText(max(x, 0), y, s, style)
}

func (r *Renderer) drawModeSelect(f Frame) {
	top := max(r.layout.Height/2-6, 0)
	r.drawCentered(top, "N E U R O B R E A T H", r.style(RgbAccent).Bold(true))
	r.drawCentered(top+1, "breathe to reveal, match to recover", r.style(RgbDim))
	if label := f.View.Profile.Label; label != "" {
		r.drawCentered(top+3, label, r.style(RgbExhale))
	}

	options := []string{
		"1  Therapy      guided levels with score goals",
		"2  Time Trial   score as much as you can before the clock runs out",
		"3  Infinite     no clock, three lives for failed swaps",
	}
	for i, opt := range options {
		r.drawCentered(top+5+i, opt, r.style(RgbText))
	}
	r.drawCentered(top+9, "q quit", r.style(RgbDim))
}

func (r *Renderer) drawBioHeader(b core.BiometricReading) {
	x := r.drawText(1, 0, fmt.Sprintf("♥ %d bpm   HRV %d ms   SpO2 %d%%   Stress ", b.HeartRate, b.HRV, b.Oxygen), r.style(RgbText))
	r.drawText(x, 0, b.Stress.String(), r.style(stressColor(b.Stress)).Bold(true))
}

func stressColor(s core.StressLevel) core.RGB {
	switch s {
	case core.StressHigh:
		return RgbDanger
	case core.StressMedium:
		return RgbWarn
	default:
		return RgbExhale
	}
}

func (r *Renderer) drawModeIndicator(v session.View) {
	var text string
	style := r.style(RgbAccent)
	switch v.Mode {
	case core.ModeTherapy:
		text = fmt.Sprintf("Therapy   Level %d/%d   Goal %d", v.Level, v.LevelCount, v.ScoreGoal)
	case core.ModeTimeTrial:
		text = "Time Trial   " + formatClock(v.TimeRemaining)
		if v.TimeRemaining <= 10*time.Second {
			style = r.style(RgbDanger)
		}
	case core.ModeInfinite:
		text = "Infinite   Lives " + hearts(v.Lives, constant.InfiniteLives)
	}
	r.drawText(1, 1, text, style)
}

// formatClock renders mm:ss, rounding partial seconds up
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func hearts(lives, total int) string {
	total = max(total, lives)
	return strings.Repeat("♥", max(lives, 0)) + strings.Repeat("♡", total-max(lives, 0))
}

func (r *Renderer) drawScore(v session.View) {
	x := r.drawText(1, 2, fmt.Sprintf("Score %d ", v.Score), r.style(RgbText).Bold(true))
	if v.Mode == core.ModeTherapy && v.ScoreGoal > 0 {
		r.drawText(x, 2, bar(float64(v.Score)/float64(v.ScoreGoal), meterWidth), r.style(RgbWarn))
	}
}

// bar renders a [####....] meter with fraction clamped to 0-1
func bar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// shakeOffset jitters the board horizontally while a shake is active
func shakeOffset(v session.View) int {
	if !v.Shaking() {
		return 0
	}
	return 1 - int(v.Frame%3)
}

func (r *Renderer) drawBoard(f Frame) {
	v := f.View
	dx := shakeOffset(v)
	for i := range v.Cells {
		x, y := r.layout.CellOrigin(i)
		glyph, style := r.cellAppearance(v, i)
		if i == f.Selected {
			style = style.Underline(true).Bold(true)
		}
		if i == f.Cursor {
			style = style.Reverse(true)
		}
		r.drawText(x+dx, y, glyph, style)
	}
}

// cellAppearance picks glyph and style for a cell by visibility and breath state
func (r *Renderer) cellAppearance(v session.View, i int) (string, tcell.Style) {
	cell := v.Cells[i]
	switch cell.Visibility {
	case core.Revealed:
		rgb := cell.Color.RGB()
		if cell.IsNew {
			rgb = rgb.Scale(0.6)
		}
		return strings.Repeat("█", cellGlyphWidth), r.style(rgb)
	case core.Popped:
		return " ** ", r.style(core.RGBWhite).Bold(true)
	}

	if v.Breath.TargetIndex == i {
		switch v.Breath.Phase {
		case core.BreathInhale:
			return fillGlyph(v.Breath.Inhale, '~'), r.style(RgbInhale).Bold(true)
		case core.BreathExhale:
			return fillGlyph(v.Breath.Exhale, '≈'), r.style(RgbExhale).Bold(true)
		}
	}
	cloud := core.RGBCloud
	if v.Profile.VisualSpeed == core.VisualSlow {
		cloud = cloud.Blend(RgbInhale, 0.25)
	}
	return strings.Repeat("░", cellGlyphWidth), r.style(cloud)
}

// fillGlyph shows meter progress inside a cell: filled runes then cloud
func fillGlyph(progress float64, fill rune) string {
	n := int(progress / constant.ProgressMax * cellGlyphWidth)
	n = min(max(n, 0), cellGlyphWidth)
	return strings.Repeat(string(fill), n) + strings.Repeat("░", cellGlyphWidth-n)
}

func (r *Renderer) drawBreath(f Frame) {
	b := f.View.Breath
	y := r.layout.BelowBoard() + 1
	x := r.layout.BoardX

	inhaleStyle, exhaleStyle := r.style(RgbDim), r.style(RgbDim)
	switch b.Phase {
	case core.BreathInhale:
		inhaleStyle = r.style(RgbInhale).Bold(true)
	case core.BreathExhale:
		exhaleStyle = r.style(RgbExhale).Bold(true)
	}

	end := r.drawText(x, y, "Inhale "+bar(b.Inhale/constant.ProgressMax, meterWidth), inhaleStyle)
	if b.Phase == core.BreathInhale {
		r.drawText(end+1, y, fmt.Sprintf("%.1fs", b.SecondsLeft), inhaleStyle)
	}
	end = r.drawText(x, y+1, "Exhale "+bar(b.Exhale/constant.ProgressMax, meterWidth), exhaleStyle)
	if b.Phase == core.BreathExhale {
		r.drawText(end+1, y+1, fmt.Sprintf("%.1fs", b.SecondsLeft), exhaleStyle)
	}

	level := bar(f.Loudness/loudnessScale, loudnessWidth)
	r.drawText(x, y+2, "Breath "+level, r.style(RgbAccent))
}

func (r *Renderer) drawInstruction(v session.View) {
	y := r.layout.BelowBoard() + 5
	r.drawCentered(y, v.Instruction, r.style(RgbText).Italic(true))
}

func (r *Renderer) drawFooter(f Frame) {
	help := "arrows move  enter breathe  shift+arrow swap  space blow  esc menu  q quit"
	if f.Audio != "" {
		help += "   audio " + f.Audio
	}
	r.drawText(1, r.layout.Height-1, help, r.style(RgbDim))
}

func (r *Renderer) drawEndScreen(v session.View) {
	var title, hint string
	titleStyle := r.style(RgbExhale).Bold(true)
	switch v.Phase {
	case core.PhaseLevelComplete:
		title = fmt.Sprintf("Level %d Complete", v.Level)
		hint = "n next level   r retry   esc menu"
	case core.PhaseVictory:
		title = "Victory"
		hint = "r play again   esc menu"
	case core.PhaseGameOver:
		title = "Game Over"
		titleStyle = r.style(RgbDanger).Bold(true)
		hint = "r retry   esc menu"
	}

	lines := []string{title, fmt.Sprintf("Score %d", v.Score), hint}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4

	top := r.layout.BoardY + r.layout.BoardHeight()/2 - 2
	left := max((r.layout.Width-width)/2, 0)
	boxStyle := r.style(RgbText)
	for row := 0; row < len(lines)+2; row++ {
		r.drawText(left, top+row, strings.Repeat(" ", width), boxStyle)
	}
	r.drawCentered(top+1, title, titleStyle)
	r.drawCentered(top+2, lines[1], boxStyle)
	r.drawCentered(top+3, hint, r.style(RgbDim))
}
