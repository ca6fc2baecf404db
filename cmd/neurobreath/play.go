package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/neurobreath/audio"
	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/render"
	"github.com/lixenwraith/neurobreath/session"
	"github.com/lixenwraith/neurobreath/signal"
	"github.com/lixenwraith/neurobreath/status"
)

// maxFrameStep caps the game time one tick may advance after a stall
const maxFrameStep = 100 * time.Millisecond

func newPlayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal (default)",
		Long: `Play interactively in the terminal.

Keys: 1/2/3 pick Therapy, Time Trial or Infinite. Arrows or hjkl move the
cursor, Enter starts a breath on a cloud, Space blows, Shift+arrow or HJKL
swaps with a neighbor. The mouse taps with a click and swaps with a drag.
r retries, n goes to the next level, m toggles sound, Esc returns to the
mode menu, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, app)
		},
	}
}

// outcome is the last finished or abandoned session, for the exit summary
type outcome struct {
	mode  core.GameMode
	phase core.GamePhase
	score int
	level int
}

type playLoop struct {
	screen   tcell.Screen
	ctrl     *session.Controller
	router   *event.Router
	renderer *render.Renderer
	key      *signal.BreathKey
	bio      *signal.BiometricSimulator
	player   *audio.Player
	reg      *status.Registry
	logger   *slog.Logger

	view     session.View
	cursor   int
	dragFrom int

	frames *atomic.Int64
	last   *outcome
}

func runPlay(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashCleanup(screen.Fini)

	reg := status.NewRegistry()
	queue := event.NewEventQueue()
	key := signal.NewBreathKey(reg)
	logger := app.logger

	ctrl := session.New(app.cfg.SessionConfig(), session.Deps{
		Loudness: key,
		Events:   queue,
		Rand:     app.rand(0),
		Logger:   logger,
	})
	bio := signal.NewBiometricSimulator(signal.SimulatorOptions{
		Rand:     app.rand(1),
		Registry: reg,
		Logger:   logger,
	})
	player := audio.NewPlayer(app.cfg.AudioConfig(), reg, logger)
	if err := player.Initialize(); err != nil {
		logger.Warn("running without sound", "error", err)
	}

	l := &playLoop{
		screen:   screen,
		ctrl:     ctrl,
		router:   event.NewRouter(queue),
		renderer: render.NewRenderer(screen),
		key:      key,
		bio:      bio,
		player:   player,
		reg:      reg,
		logger:   logger,
		dragFrom: -1,
		frames:   reg.Ints.Get(status.KeyFrames),
	}
	l.router.Register(bio)
	l.router.Register(player)
	l.router.Register(newEventLogger(logger))
	l.router.Register(event.HandlerFunc{
		Types: []event.EventType{event.EventPhaseChange},
		Fn:    l.trackOutcome,
	})

	bio.Start(ctx)
	l.run(ctx)

	bio.Stop()
	player.Cleanup()
	screen.Fini()
	core.SetCrashCleanup(nil)

	l.writeSummary(cmd)
	return nil
}

// run is the frame loop: input arrives from a polling goroutine, the ticker drives game time
func (l *playLoop) run(ctx context.Context) {
	ticker := time.NewTicker(constant.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	l.view = l.ctrl.View()
	l.draw()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-eventChan:
			if !l.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if dt > maxFrameStep {
				dt = maxFrameStep
			}
			l.tick(dt)
		}
	}
}

func (l *playLoop) tick(dt time.Duration) {
	l.key.Decay(dt)
	l.ctrl.Advance(dt)
	l.router.DispatchAll()
	l.frames.Add(1)

	l.view = l.ctrl.View()
	l.draw()
}

func (l *playLoop) draw() {
	l.renderer.Draw(render.Frame{
		View:     l.view,
		Cursor:   l.cursor,
		Selected: l.dragFrom,
		Bio:      l.bio.Current(),
		Loudness: l.key.Level(),
		Audio:    l.reg.Strings.Get(status.KeyAudio).Load(),
	})
}

// handleInput returns false when the player quits
func (l *playLoop) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return l.handleKey(ev)
	case *tcell.EventMouse:
		l.handleMouse(ev)
	case *tcell.EventResize:
		l.screen.Sync()
		l.draw()
	}
	return true
}

func (l *playLoop) handleKey(ev *tcell.EventKey) bool {
	in := keyIntent(ev, l.ctrl.Phase())
	switch in.kind {
	case intentQuit:
		return false
	case intentSelectMode:
		if err := l.ctrl.SelectMode(in.mode); err != nil {
			l.logger.Warn("mode select failed", "error", err)
		}
		l.cursor = l.center()
	case intentMove:
		if n, ok := neighbor(l.cursor, l.view.Rows, l.view.Cols, in.dr, in.dc); ok {
			l.cursor = n
		}
	case intentSwap:
		if n, ok := neighbor(l.cursor, l.view.Rows, l.view.Cols, in.dr, in.dc); ok && l.ctrl.Swap(l.cursor, n) {
			l.cursor = n
		}
	case intentTap:
		l.ctrl.Tap(l.cursor)
	case intentBlow:
		l.key.Blow()
	case intentExit:
		l.ctrl.Exit()
	case intentRetry:
		l.ctrl.Retry()
	case intentNext:
		l.ctrl.NextLevel()
	case intentMute:
		l.player.SetMuted(!l.player.Muted())
	}
	l.router.DispatchAll()
	l.view = l.ctrl.View()
	return true
}

// handleMouse taps on a click released over the same cell and swaps on a drag to a neighbor
func (l *playLoop) handleMouse(ev *tcell.EventMouse) {
	if l.view.Phase != core.PhasePlaying {
		l.dragFrom = -1
		return
	}
	x, y := ev.Position()
	idx, hit := l.renderer.HitTest(x, y)

	if ev.Buttons()&tcell.Button1 != 0 {
		if l.dragFrom < 0 && hit {
			l.dragFrom = idx
			l.cursor = idx
		}
		return
	}
	if l.dragFrom < 0 {
		return
	}
	from := l.dragFrom
	l.dragFrom = -1
	if !hit {
		return
	}
	if idx == from {
		l.ctrl.Tap(idx)
	} else if l.ctrl.Swap(from, idx) {
		l.cursor = idx
	}
	l.view = l.ctrl.View()
}

func (l *playLoop) center() int {
	v := l.ctrl.View()
	return (v.Rows/2)*v.Cols + v.Cols/2
}

func (l *playLoop) trackOutcome(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PhaseChangePayload)
	if !ok {
		return
	}
	if p.To.Ended() || p.From == core.PhasePlaying {
		l.last = &outcome{mode: p.Mode, phase: p.To, score: p.Score, level: p.Level}
	}
}

// writeSummary prints the live session if one is running, otherwise the last one that ended
func (l *playLoop) writeSummary(cmd *cobra.Command) {
	out := l.last
	if v := l.ctrl.View(); v.Phase == core.PhasePlaying {
		out = &outcome{mode: v.Mode, phase: v.Phase, score: v.Score, level: v.Level}
	}
	if out == nil {
		return
	}
	writeSessionSummary(cmd.OutOrStdout(), out.mode, out.phase, out.score, out.level, l.bio.Current(), l.reg)
}

// newEventLogger records gameplay events at debug level and outcomes at info
func newEventLogger(logger *slog.Logger) event.Handler {
	logger = logger.With("component", "events")
	return event.HandlerFunc{
		Types: []event.EventType{
			event.EventPhaseChange,
			event.EventBreathPhase,
			event.EventScore,
			event.EventLifeLost,
			event.EventInstruction,
			event.EventRecovery,
		},
		Fn: func(ev event.GameEvent) {
			switch p := ev.Payload.(type) {
			case *event.PhaseChangePayload:
				logger.Info("phase", "from", p.From, "to", p.To, "mode", p.Mode, "score", p.Score, "level", p.Level, "frame", ev.Frame)
			case *event.BreathPhasePayload:
				logger.Debug("breath", "phase", p.Phase, "target", p.Target, "frame", ev.Frame)
			case *event.ScorePayload:
				logger.Debug("score", "delta", p.Delta, "total", p.Total, "matched", p.Matched)
			case *event.LifeLostPayload:
				logger.Info("life lost", "remaining", p.Remaining)
			case *event.InstructionPayload:
				logger.Debug("instruction", "text", p.Text)
			case *event.RecoveryPayload:
				logger.Debug("recovery", "source", p.Source)
			default:
				logger.Debug("event", "type", ev.Type, "frame", ev.Frame)
			}
		},
	}
}
