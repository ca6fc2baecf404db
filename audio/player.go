// Package audio synthesizes the game tones on the system speaker
package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/status"
)

// Player mixes one-shot tones into a single speaker stream
// Every method is safe before Initialize and after Cleanup; without a device the game runs silent
type Player struct {
	mu          sync.Mutex
	config      *Config
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
	played      [soundTypeCount]atomic.Int64

	logger    *slog.Logger
	statState *status.AtomicString
}

// NewPlayer creates a player; reg and logger may be nil
func NewPlayer(cfg *Config, reg *status.Registry, logger *slog.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	p := &Player{
		config:    cfg,
		mixer:     &beep.Mixer{},
		logger:    logger.With("component", "audio"),
		statState: reg.Strings.Get(status.KeyAudio),
	}
	p.muted.Store(!cfg.Enabled)
	p.publishState()
	return p
}

// Initialize opens the speaker; failure leaves the player in silent mode
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Duration(p.config.BufferMs)*time.Millisecond)); err != nil {
		p.statState.Store(StateSilent)
		p.logger.Warn("speaker unavailable, running silent", "error", err)
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.publishStateLocked()
	p.logger.Debug("speaker ready", "sample_rate", p.config.SampleRate)
	return nil
}

// Cleanup silences all pending tones
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	// beep has no speaker Close; clearing the mixer leaves nothing audible
	p.initialized = false
	p.publishStateLocked()
}

// SetMuted toggles output without tearing down the speaker
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
	p.publishState()
}

func (p *Player) Muted() bool { return p.muted.Load() }

// Played returns how many times a sound was accepted for playback
func (p *Player) Played(s SoundType) int64 {
	if s < 0 || s >= soundTypeCount {
		return 0
	}
	return p.played[s].Load()
}

func (p *Player) PlayPop() { p.Play(SoundPop) }
func (p *Player) PlayWin() { p.Play(SoundWin) }
func (p *Player) PlayLifeLost() { p.Play(SoundLifeLost) }

// Play queues a tone; muted players drop the request
func (p *Player) Play(s SoundType) {
	if p.muted.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	streamer, err := CreateSound(s, p.config)
	if err != nil {
		p.logger.Warn("tone synthesis failed", "sound", s, "error", err)
		return
	}
	p.played[s].Add(1)

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// HandleEvent maps game events to tones
func (p *Player) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventPopSound:
		p.PlayPop()
	case event.EventWinSound:
		p.PlayWin()
	case event.EventLifeLost:
		p.PlayLifeLost()
	}
}

func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{event.EventPopSound, event.EventWinSound, event.EventLifeLost}
}

func (p *Player) publishState() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishStateLocked()
}

func (p *Player) publishStateLocked() {
	switch {
	case p.muted.Load():
		p.statState.Store(StateMuted)
	case p.initialized:
		p.statState.Store(StateReady)
	default:
		p.statState.Store(StateUninitialized)
	}
}
