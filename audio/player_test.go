package audio

import (
	"testing"

	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/status"
)

// TestPlayerGracefulDegradation verifies playback doesn't panic when not initialized
func TestPlayerGracefulDegradation(t *testing.T) {
	p := NewPlayer(nil, nil, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	p.PlayPop()
	p.PlayWin()
	p.PlayLifeLost()
	p.Cleanup()

	if p.Played(SoundPop) != 1 || p.Played(SoundWin) != 1 || p.Played(SoundLifeLost) != 1 {
		t.Errorf("silent player should still accept requests")
	}
}

// TestPlayerInitialization may fail without an audio device; the game runs silent then
func TestPlayerInitialization(t *testing.T) {
	reg := status.NewRegistry()
	p := NewPlayer(nil, reg, nil)

	if err := p.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		if got := reg.Strings.Get(status.KeyAudio).Load(); got != StateSilent {
			t.Errorf("audio state = %q, want %q", got, StateSilent)
		}
		return
	}

	if got := reg.Strings.Get(status.KeyAudio).Load(); got != StateReady {
		t.Errorf("audio state = %q, want %q", got, StateReady)
	}
	if err := p.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	p.PlayPop()
	p.Cleanup()
}

func TestPlayerMuted(t *testing.T) {
	reg := status.NewRegistry()
	cfg := DefaultConfig()
	cfg.Enabled = false
	p := NewPlayer(cfg, reg, nil)

	if !p.Muted() {
		t.Fatal("disabled config should start muted")
	}
	if got := reg.Strings.Get(status.KeyAudio).Load(); got != StateMuted {
		t.Errorf("audio state = %q, want %q", got, StateMuted)
	}

	p.PlayPop()
	if p.Played(SoundPop) != 0 {
		t.Error("muted player should drop requests")
	}

	p.SetMuted(false)
	p.PlayPop()
	if p.Played(SoundPop) != 1 {
		t.Error("unmuted player should accept requests")
	}
	if got := reg.Strings.Get(status.KeyAudio).Load(); got != StateUninitialized {
		t.Errorf("audio state = %q, want %q", got, StateUninitialized)
	}
}

func TestPlayerHandlesEvents(t *testing.T) {
	p := NewPlayer(nil, nil, nil)
	q := event.NewEventQueue()
	router := event.NewRouter(q)
	router.Register(p)

	q.Emit(event.EventPopSound, nil, 1)
	q.Emit(event.EventPopSound, nil, 2)
	q.Emit(event.EventWinSound, nil, 3)
	q.Emit(event.EventLifeLost, &event.LifeLostPayload{Remaining: 2}, 4)
	q.Emit(event.EventScore, &event.ScorePayload{Delta: 30}, 5)
	router.DispatchAll()

	if got := p.Played(SoundPop); got != 2 {
		t.Errorf("pop played %d times, want 2", got)
	}
	if got := p.Played(SoundWin); got != 1 {
		t.Errorf("win played %d times, want 1", got)
	}
	if got := p.Played(SoundLifeLost); got != 1 {
		t.Errorf("life lost played %d times, want 1", got)
	}
	if got := p.Played(soundTypeCount); got != 0 {
		t.Errorf("out of range sound = %d, want 0", got)
	}
}
