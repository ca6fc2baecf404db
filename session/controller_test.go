package session

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/parameter"
)

func TestNew_StartsInModeSelect(t *testing.T) {
	c := New(DefaultConfig(), Deps{Logger: testLogger()})
	if c.Phase() != core.PhaseModeSelect {
		t.Errorf("phase = %v, want ModeSelect", c.Phase())
	}
	if c.Tap(0) {
		t.Error("tap accepted before a mode was selected")
	}
	if c.Swap(0, 1) {
		t.Error("swap accepted before a mode was selected")
	}
	c.Advance(time.Second)
	if c.Grid() != nil {
		t.Error("grid should not exist before a mode is selected")
	}
}

func TestSelectMode_Invalid(t *testing.T) {
	c := New(DefaultConfig(), Deps{Logger: testLogger()})
	err := c.SelectMode(core.GameMode(42))
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("err = %v, want ErrInvalidMode", err)
	}
	if c.Phase() != core.PhaseModeSelect {
		t.Errorf("phase = %v, want ModeSelect", c.Phase())
	}
}

func TestSelectMode_FreshGrid(t *testing.T) {
	for _, mode := range []core.GameMode{core.ModeTherapy, core.ModeTimeTrial, core.ModeInfinite} {
		t.Run(mode.String(), func(t *testing.T) {
			c, _ := newTestController(t, mode, DefaultConfig(), 0)
			v := c.View()
			if v.Phase != core.PhasePlaying {
				t.Fatalf("phase = %v, want Playing", v.Phase)
			}
			if len(v.Cells) != 49 {
				t.Fatalf("cells = %d, want 49", len(v.Cells))
			}
			for _, cell := range v.Cells {
				if cell.Visibility != core.Hidden {
					t.Fatalf("cell %d starts %v, want Hidden", cell.Index, cell.Visibility)
				}
			}
			if v.Score != 0 {
				t.Errorf("score = %d, want 0", v.Score)
			}
			assertValid(t, c)
		})
	}
}

func TestSwap_MatchPopsScoresAndCompacts(t *testing.T) {
	c, q := newTestController(t, core.ModeTherapy, DefaultConfig(), 0)
	install(t, c, matchCells())

	if !c.Swap(9, 2) {
		t.Fatal("valid swap rejected")
	}
	if !c.View().Busy {
		t.Error("session should be busy while the swap check is pending")
	}
	if c.Swap(42, 43) {
		t.Error("second swap accepted while one is pending")
	}

	// Cells swap immediately, check runs after the delay
	g := c.Grid()
	if g.Get(2).Color != core.ColorRed || g.Get(2).ID != "c09" {
		t.Fatalf("cell 2 = %+v, want swapped red c09", g.Get(2))
	}
	c.Advance(299 * time.Millisecond)
	if c.Score() != 0 {
		t.Fatal("match resolved before the check delay")
	}

	c.Advance(time.Millisecond)
	if c.Score() != 30 {
		t.Fatalf("score = %d, want 30", c.Score())
	}
	g = c.Grid()
	for _, i := range []int{0, 1, 2} {
		if g.Get(i).Visibility != core.Popped {
			t.Errorf("cell %d = %v, want Popped", i, g.Get(i).Visibility)
		}
	}

	evs := q.Consume()
	if count(evs, event.EventPopSound) != 1 || count(evs, event.EventRecovery) != 1 || count(evs, event.EventScore) != 1 {
		t.Errorf("events after match: pop=%d recovery=%d score=%d", count(evs, event.EventPopSound), count(evs, event.EventRecovery), count(evs, event.EventScore))
	}
	for _, ev := range evs {
		if p, ok := ev.Payload.(*event.RecoveryPayload); ok && p.Source != event.RecoveryMatch {
			t.Errorf("recovery source = %v, want match", p.Source)
		}
		if p, ok := ev.Payload.(*event.ScorePayload); ok && (p.Delta != 30 || p.Total != 30 || p.Matched != 3) {
			t.Errorf("score payload = %+v", p)
		}
	}

	// Gravity after its own delay
	c.Advance(399 * time.Millisecond)
	if c.Grid().Count(core.Popped) != 3 {
		t.Fatal("gravity ran early")
	}
	c.Advance(time.Millisecond)
	g = c.Grid()
	if g.Count(core.Popped) != 0 {
		t.Errorf("popped cells remain after gravity")
	}
	for _, i := range []int{0, 1, 2} {
		cell := g.Get(i)
		if cell.Visibility != core.Hidden || !cell.IsNew {
			t.Errorf("refill %d = %+v, want new Hidden cell", i, cell)
		}
	}
	if c.View().Busy {
		t.Error("session still busy after gravity")
	}
	assertValid(t, c)

	// Entrance flags last one advance
	c.Advance(frame)
	for _, cell := range c.Grid().Cells() {
		if cell.IsNew {
			t.Fatalf("cell %d still new after the next advance", cell.Index)
		}
	}
}

func TestSwap_NoMatchReverts(t *testing.T) {
	c, q := newTestController(t, core.ModeTherapy, DefaultConfig(), 0)
	install(t, c, matchCells())
	before := c.Grid().Cells()

	if !c.Swap(0, 7) {
		t.Fatal("adjacent revealed swap rejected")
	}
	c.Advance(300 * time.Millisecond)

	after := c.Grid().Cells()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("cell %d = %+v, want reverted %+v", i, after[i], before[i])
		}
	}
	evs := q.Consume()
	if count(evs, event.EventRecovery) != 0 || count(evs, event.EventLifeLost) != 0 {
		t.Error("failed therapy swap should emit neither recovery nor life loss")
	}
	if c.View().Busy {
		t.Error("session still busy after revert")
	}
}

func TestSwap_Rejections(t *testing.T) {
	c, _ := newTestController(t, core.ModeTherapy, DefaultConfig(), 0)
	cells := matchCells()
	cells[48].Visibility = core.Hidden
	cells[47].Visibility = core.Popped
	install(t, c, cells)

	tests := []struct {
		name     string
		from, to int
	}{
		{"not adjacent", 0, 2},
		{"diagonal", 0, 8},
		{"wraparound", 6, 7},
		{"hidden endpoint", 41, 48},
		{"popped endpoint", 40, 47},
		{"out of range", 0, -1},
		{"self", 3, 3},
	}
	for _, tt := range tests {
		if c.Swap(tt.from, tt.to) {
			t.Errorf("%s: swap(%d, %d) accepted", tt.name, tt.from, tt.to)
		}
	}
	if c.View().Busy {
		t.Error("rejected swaps left the session busy")
	}
}

func TestSwap_BlockedDuringBreath(t *testing.T) {
	c, _ := newTestController(t, core.ModeTherapy, DefaultConfig(), 0)
	cells := matchCells()
	cells[48].Visibility = core.Hidden
	install(t, c, cells)

	if !c.Tap(48) {
		t.Fatal("tap on hidden cell rejected")
	}
	if c.Swap(9, 2) {
		t.Error("swap accepted during an active breath")
	}
}

func TestTap_Rules(t *testing.T) {
	c, q := newTestController(t, core.ModeTherapy, DefaultConfig(), 0)
	cells := patternCells(core.Revealed)
	cells[10].Visibility = core.Hidden
	cells[11].Visibility = core.Hidden
	install(t, c, cells)

	if c.Tap(3) {
		t.Error("tap on revealed cell accepted")
	}
	if c.Tap(99) {
		t.Error("tap out of range accepted")
	}
	if !c.Tap(10) {
		t.Fatal("tap on hidden cell rejected")
	}
	if c.Tap(11) {
		t.Error("second tap accepted while breath active")
	}

	v := c.View()
	if v.Breath.Phase != core.BreathInhale || v.Breath.Target != "c10" || v.Breath.TargetIndex != 10 {
		t.Errorf("breath view = %+v", v.Breath)
	}
	if v.Instruction != parameter.MsgInhale {
		t.Errorf("instruction = %q, want inhale prompt", v.Instruction)
	}
	if v.Breath.SecondsLeft != 3 {
		t.Errorf("seconds left = %v, want 3", v.Breath.SecondsLeft)
	}

	evs := q.Consume()
	if count(evs, event.EventBreathPhase) != 1 {
		t.Errorf("breath phase events = %d, want 1", count(evs, event.EventBreathPhase))
	}
}

func TestBreath_CompletionRevealsBlast(t *testing.T) {
	c, q := newTestController(t, core.ModeTherapy, DefaultConfig(), 50)
	cells := patternCells(core.Hidden)
	cells[23].Visibility = core.Revealed
	install(t, c, cells)

	if !c.Tap(24) {
		t.Fatal("tap rejected")
	}

	frames := 0
	for c.View().Breath.Phase == core.BreathInhale && frames < 1000 {
		c.Advance(frame)
		frames++
	}
	if frames < 179 || frames > 181 {
		t.Errorf("inhale took %d frames, want 180±1", frames)
	}
	if c.View().Instruction != parameter.MsgExhale {
		t.Errorf("instruction = %q, want exhale prompt", c.View().Instruction)
	}

	frames = 0
	for c.View().Breath.Phase == core.BreathExhale && frames < 1000 {
		c.Advance(frame)
		frames++
	}
	if frames < 179 || frames > 181 {
		t.Errorf("exhale took %d frames, want 180±1", frames)
	}

	g := c.Grid()
	if got := g.Count(core.Revealed); got != 25 {
		t.Errorf("revealed = %d, want 25", got)
	}
	for _, i := range g.BlastArea(24, 3) {
		if g.Get(i).Visibility != core.Revealed {
			t.Errorf("cell %d in blast not revealed", i)
		}
	}
	if g.Get(0).Visibility != core.Hidden {
		t.Error("corner outside blast revealed")
	}

	v := c.View()
	if !v.Shaking() || v.ShakeRemaining > 500*time.Millisecond {
		t.Errorf("shake remaining = %v, want active <=500ms", v.ShakeRemaining)
	}
	if v.Instruction != parameter.MsgSwap || v.Tutorial != TutorialSwapping {
		t.Errorf("tutorial = %v %q after first breath", v.Tutorial, v.Instruction)
	}
	if v.Score != 0 {
		t.Errorf("breath reveal should not score, got %d", v.Score)
	}

	evs := q.Consume()
	if count(evs, event.EventScreenShake) != 1 || count(evs, event.EventPopSound) != 1 || count(evs, event.EventRecovery) != 1 {
		t.Errorf("completion events: shake=%d pop=%d recovery=%d", count(evs, event.EventScreenShake), count(evs, event.EventPopSound), count(evs, event.EventRecovery))
	}

	advanceFor(c, 600*time.Millisecond)
	if c.View().Shaking() {
		t.Error("shake outlived its duration")
	}
}

func TestBreath_SilenceHoldsExhale(t *testing.T) {
	c, _ := newTestController(t, core.ModeTherapy, DefaultConfig(), 0)
	if !c.Tap(24) {
		t.Fatal("tap rejected")
	}
	advanceFor(c, 10*time.Second)

	v := c.View()
	if v.Breath.Phase != core.BreathExhale || v.Breath.Exhale != 0 {
		t.Errorf("breath = %+v, want exhale held at 0", v.Breath)
	}
	if c.Grid().Count(core.Revealed) != 0 {
		t.Error("cells revealed without exhale")
	}
}

func TestBreath_RelaxProfileSlowsCycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profile = parameter.ProfileRelax
	c, _ := newTestController(t, core.ModeInfinite, cfg, 50)
	c.Tap(24)

	frames := 0
	for c.View().Breath.Phase == core.BreathInhale && frames < 1000 {
		c.Advance(frame)
		frames++
	}
	if frames < 269 || frames > 271 {
		t.Errorf("relax inhale took %d frames, want 270±1", frames)
	}
}

func TestTherapy_LevelCompleteOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = []core.LevelConfig{
		{ID: 1, BreathDurationSecond: 3, ScoreGoal: 30},
		{ID: 2, BreathDurationSecond: 3, ScoreGoal: 60},
	}
	cfg.LevelCompleteDelay = 5 * time.Second
	c, q := newTestController(t, core.ModeTherapy, cfg, 0)
	install(t, c, matchCells())

	c.Swap(9, 2)
	c.Advance(300 * time.Millisecond)
	if c.Score() != 30 {
		t.Fatalf("score = %d, want 30", c.Score())
	}
	c.Advance(400 * time.Millisecond)

	// Further scoring past the goal must not schedule another completion
	if !c.Swap(37, 44) {
		t.Fatal("second swap rejected")
	}
	c.Advance(300 * time.Millisecond)
	if c.Score() != 60 {
		t.Fatalf("score = %d, want 60", c.Score())
	}
	if c.Phase() != core.PhasePlaying {
		t.Fatal("level completed before its delay")
	}

	advanceFor(c, 5*time.Second)
	if c.Phase() != core.PhaseLevelComplete {
		t.Fatalf("phase = %v, want LevelComplete", c.Phase())
	}
	evs := q.Consume()
	if n := phaseChangesTo(evs, core.PhaseLevelComplete); n != 1 {
		t.Errorf("LevelComplete transitions = %d, want 1", n)
	}
	if n := count(evs, event.EventWinSound); n != 1 {
		t.Errorf("win sounds = %d, want 1", n)
	}

	// Ended sessions ignore input and time
	c.Advance(10 * time.Second)
	if c.Tap(0) || c.Swap(0, 1) {
		t.Error("input accepted after level complete")
	}
	if c.Phase() != core.PhaseLevelComplete {
		t.Error("phase moved on without NextLevel")
	}

	if !c.NextLevel() {
		t.Fatal("NextLevel rejected")
	}
	v := c.View()
	if v.Phase != core.PhasePlaying || v.Level != 2 || v.Score != 0 || v.ScoreGoal != 60 {
		t.Errorf("after NextLevel: phase=%v level=%d score=%d goal=%d", v.Phase, v.Level, v.Score, v.ScoreGoal)
	}
}

func TestTherapy_RetryRestartsFirstLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = []core.LevelConfig{
		{ID: 1, BreathDurationSecond: 3, ScoreGoal: 30},
		{ID: 2, BreathDurationSecond: 3, ScoreGoal: 30},
		{ID: 3, BreathDurationSecond: 3, ScoreGoal: 30},
	}
	c, _ := newTestController(t, core.ModeTherapy, cfg, 0)

	for level := 1; level <= 2; level++ {
		install(t, c, matchCells())
		c.Swap(9, 2)
		advanceFor(c, 2*time.Second)
		if c.Phase() != core.PhaseLevelComplete || c.Level() != level {
			t.Fatalf("phase=%v level=%d, want LevelComplete on level %d", c.Phase(), c.Level(), level)
		}
		if level == 1 && !c.NextLevel() {
			t.Fatal("NextLevel rejected")
		}
	}

	if !c.Retry() {
		t.Fatal("retry rejected")
	}
	v := c.View()
	if v.Phase != core.PhasePlaying || v.Level != 1 || v.Score != 0 {
		t.Errorf("retry from level 2: phase=%v level=%d score=%d, want playing level 1", v.Phase, v.Level, v.Score)
	}
	if v.Tutorial != TutorialStart || v.Instruction != parameter.MsgWelcome {
		t.Errorf("retry kept tutorial %v %q", v.Tutorial, v.Instruction)
	}
}

func TestTherapy_LastLevelVictory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = []core.LevelConfig{{ID: 1, BreathDurationSecond: 3, ScoreGoal: 30}}
	c, _ := newTestController(t, core.ModeTherapy, cfg, 0)
	install(t, c, matchCells())

	if c.NextLevel() {
		t.Error("NextLevel accepted while playing")
	}
	c.Swap(9, 2)
	advanceFor(c, 2*time.Second)
	if c.Phase() != core.PhaseLevelComplete {
		t.Fatalf("phase = %v, want LevelComplete", c.Phase())
	}
	if !c.NextLevel() || c.Phase() != core.PhaseVictory {
		t.Errorf("phase = %v, want Victory after last level", c.Phase())
	}

	if !c.Retry() {
		t.Fatal("retry rejected")
	}
	if c.Phase() != core.PhasePlaying || c.Level() != 1 {
		t.Errorf("retry after victory: phase=%v level=%d", c.Phase(), c.Level())
	}
}

func TestInfinite_ThreeInvalidSwapsGameOver(t *testing.T) {
	c, q := newTestController(t, core.ModeInfinite, DefaultConfig(), 0)
	install(t, c, matchCells())

	if c.Lives() != 3 {
		t.Fatalf("lives = %d, want 3", c.Lives())
	}
	for want := 2; want >= 0; want-- {
		if !c.Swap(0, 7) {
			t.Fatalf("swap rejected with %d lives", c.Lives())
		}
		c.Advance(300 * time.Millisecond)
		if c.Lives() != want {
			t.Fatalf("lives = %d, want %d", c.Lives(), want)
		}
	}
	if c.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, want GameOver", c.Phase())
	}

	evs := q.Consume()
	if n := count(evs, event.EventLifeLost); n != 3 {
		t.Errorf("life lost events = %d, want 3", n)
	}
	if n := phaseChangesTo(evs, core.PhaseGameOver); n != 1 {
		t.Errorf("GameOver transitions = %d, want 1", n)
	}

	if !c.Retry() {
		t.Fatal("retry rejected")
	}
	if c.Lives() != 3 || c.Phase() != core.PhasePlaying || c.Score() != 0 {
		t.Errorf("retry: lives=%d phase=%v score=%d", c.Lives(), c.Phase(), c.Score())
	}
}

func TestInfinite_MatchKeepsLives(t *testing.T) {
	c, _ := newTestController(t, core.ModeInfinite, DefaultConfig(), 0)
	install(t, c, matchCells())

	c.Swap(9, 2)
	advanceFor(c, time.Second)
	if c.Lives() != 3 || c.Score() != 30 {
		t.Errorf("lives=%d score=%d, want 3 and 30", c.Lives(), c.Score())
	}
}

func TestTimeTrial_CountdownVictory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeTrialDuration = 3 * time.Second
	c, q := newTestController(t, core.ModeTimeTrial, cfg, 0)

	c.Advance(500 * time.Millisecond)
	if c.TimeRemaining() != 3*time.Second {
		t.Errorf("remaining = %v, want 3s before the first full second", c.TimeRemaining())
	}
	c.Advance(500 * time.Millisecond)
	if c.TimeRemaining() != 2*time.Second {
		t.Errorf("remaining = %v, want 2s", c.TimeRemaining())
	}

	c.Advance(2 * time.Second)
	if c.TimeRemaining() != 0 {
		t.Errorf("remaining = %v, want 0", c.TimeRemaining())
	}
	if c.Phase() != core.PhaseVictory {
		t.Fatalf("phase = %v, want Victory regardless of score", c.Phase())
	}
	if n := phaseChangesTo(q.Consume(), core.PhaseVictory); n != 1 {
		t.Errorf("Victory transitions = %d, want 1", n)
	}
}

func TestTimeTrial_DefaultLength(t *testing.T) {
	c, _ := newTestController(t, core.ModeTimeTrial, DefaultConfig(), 0)
	if c.TimeRemaining() != 120*time.Second {
		t.Errorf("remaining = %v, want 2m", c.TimeRemaining())
	}
	advanceFor(c, 119*time.Second)
	if c.Phase() != core.PhasePlaying {
		t.Fatalf("ended early at %v", c.TimeRemaining())
	}
	advanceFor(c, 2*time.Second)
	if c.Phase() != core.PhaseVictory {
		t.Errorf("phase = %v, want Victory", c.Phase())
	}
}

func TestExit_DropsPendingWork(t *testing.T) {
	c, _ := newTestController(t, core.ModeTherapy, DefaultConfig(), 50)
	install(t, c, matchCells())

	c.Swap(9, 2)
	c.Exit()
	if c.Phase() != core.PhaseModeSelect {
		t.Fatalf("phase = %v, want ModeSelect", c.Phase())
	}
	c.mu.Lock()
	pending := c.sched.Pending()
	c.mu.Unlock()
	if pending != 0 {
		t.Errorf("pending tasks = %d after exit", pending)
	}

	// A new session starts clean
	if err := c.SelectMode(core.ModeInfinite); err != nil {
		t.Fatal(err)
	}
	c.Advance(time.Second)
	v := c.View()
	if v.Score != 0 || v.Busy || v.Breath.Phase != core.BreathIdle {
		t.Errorf("new session inherited state: %+v", v)
	}
}

func TestTutorial_Progression(t *testing.T) {
	c, _ := newTestController(t, core.ModeTherapy, DefaultConfig(), 50)
	if got := c.View().Instruction; got != parameter.MsgWelcome {
		t.Fatalf("instruction = %q, want welcome", got)
	}

	cells := matchCells()
	cells[48].Visibility = core.Hidden
	install(t, c, cells)

	c.Tap(48)
	advanceFor(c, 7*time.Second)
	if c.View().Tutorial != TutorialSwapping {
		t.Fatalf("tutorial = %v, want swapping", c.View().Tutorial)
	}

	c.Swap(0, 7)
	c.Advance(300 * time.Millisecond)
	if got := c.View().Instruction; got != parameter.MsgSwapHint {
		t.Errorf("instruction = %q, want swap hint", got)
	}

	c.Swap(9, 2)
	c.Advance(300 * time.Millisecond)
	v := c.View()
	if v.Tutorial != TutorialDone || v.Instruction != parameter.MsgTutorialDone {
		t.Errorf("tutorial = %v %q, want done", v.Tutorial, v.Instruction)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c, _ := newTestController(t, core.ModeInfinite, DefaultConfig(), 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			c.Tap(i % 49)
			c.Swap(i%49, (i+1)%49)
			_ = c.View()
		}
	}()
	for i := 0; i < 500; i++ {
		c.Advance(frame)
	}
	<-done
	assertValid(t, c)
}
