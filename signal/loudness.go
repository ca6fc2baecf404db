package signal

import (
	"sync"
	"time"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/status"
)

// LoudnessSource supplies the exhale loudness on a roughly 0-100 scale, polled every tick
type LoudnessSource interface {
	Level() float64
}

// Fixed is a constant loudness
type Fixed float64

func (f Fixed) Level() float64 { return float64(f) }

// Script replays levels one per poll, then holds the last value
type Script struct {
	mu     sync.Mutex
	levels []float64
	pos    int
}

func NewScript(levels ...float64) *Script {
	return &Script{levels: levels}
}

func (s *Script) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.levels) == 0 {
		return 0
	}
	if s.pos >= len(s.levels) {
		return s.levels[len(s.levels)-1]
	}
	v := s.levels[s.pos]
	s.pos++
	return v
}

// BreathKey turns key presses into a synthetic exhale
// Each Blow jumps to peak, the level falls linearly between presses; holding the key
// relies on terminal auto-repeat to keep it above threshold
type BreathKey struct {
	level *status.AtomicFloat
	peak  float64
	decay float64 // per second
}

// NewBreathKey stores its level in reg under KeyLoudness when reg is non-nil
func NewBreathKey(reg *status.Registry) *BreathKey {
	level := &status.AtomicFloat{}
	if reg != nil {
		level = reg.Floats.Get(status.KeyLoudness)
	}
	return &BreathKey{
		level: level,
		peak:  constant.BreathKeyPeak,
		decay: constant.BreathKeyDecayPerSecond,
	}
}

// Blow raises the level to peak
func (b *BreathKey) Blow() {
	b.level.Set(b.peak)
}

// Decay lowers the level by dt worth of fall-off, flooring at zero
func (b *BreathKey) Decay(dt time.Duration) {
	drop := b.decay * dt.Seconds()
	b.level.Update(func(v float64) float64 {
		v -= drop
		if v < 0 {
			return 0
		}
		return v
	})
}

func (b *BreathKey) Level() float64 { return b.level.Get() }
