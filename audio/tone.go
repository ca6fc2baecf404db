package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Tone shapes
const (
	popStartHz   = 400.0
	popEndHz     = 800.0
	popDuration  = 100 * time.Millisecond
	popGainStart = 0.1

	winNoteDuration = time.Second
	winNoteStagger  = 200 * time.Millisecond
	winAttack       = 10 * time.Millisecond
	winRelease      = 900 * time.Millisecond
	winGain         = 0.1

	lifeLostStartHz  = 220.0
	lifeLostEndHz    = 110.0
	lifeLostDuration = 250 * time.Millisecond
	lifeLostGain     = 0.15
)

// winChord is C5, E5, G5
var winChord = [...]float64{523.25, 659.25, 783.99}

// sweep is a sine whose pitch moves exponentially from start to end while gain falls linearly
type sweep struct {
	rate      beep.SampleRate
	startHz   float64
	endHz     float64
	gainStart float64
	gainEnd   float64
	total     int
	pos       int
	phase     float64
}

// NewSweep creates a one-shot pitch sweep
func NewSweep(rate beep.SampleRate, startHz, endHz float64, d time.Duration, gainStart, gainEnd float64) beep.Streamer {
	return &sweep{
		rate:      rate,
		startHz:   startHz,
		endHz:     endHz,
		gainStart: gainStart,
		gainEnd:   gainEnd,
		total:     rate.N(d),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.startHz * math.Pow(s.endHz/s.startHz, progress)
		gain := s.gainStart + (s.gainEnd-s.gainStart)*progress

		val := gain * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies linear attack and release to a finite stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		rel = max(total-att, 0)
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; zero volume is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreatePopSound is a short upward chirp
func CreatePopSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	chirp := NewSweep(rate, popStartHz, popEndHz, popDuration, popGainStart, 0)
	return newVolume(chirp, cfg.volume(SoundPop))
}

// CreateWinSound is a staggered major arpeggio
func CreateWinSound(cfg *Config) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)

	voices := make([]beep.Streamer, 0, len(winChord))
	for i, freq := range winChord {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, fmt.Errorf("win note %.2fHz: %w", freq, err)
		}
		note := NewEnvelope(beep.Take(rate.N(winNoteDuration), tone), winNoteDuration, winAttack, winRelease, rate)
		if i > 0 {
			note = beep.Seq(beep.Silence(rate.N(time.Duration(i)*winNoteStagger)), note)
		}
		voices = append(voices, note)
	}

	return newVolume(beep.Mix(voices...), winGain*cfg.volume(SoundWin)), nil
}

// CreateLifeLostSound is a falling tone
func CreateLifeLostSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	fall := NewSweep(rate, lifeLostStartHz, lifeLostEndHz, lifeLostDuration, lifeLostGain, 0)
	return newVolume(fall, cfg.volume(SoundLifeLost))
}

// CreateSound returns the streamer for a sound type
func CreateSound(s SoundType, cfg *Config) (beep.Streamer, error) {
	switch s {
	case SoundPop:
		return CreatePopSound(cfg), nil
	case SoundWin:
		return CreateWinSound(cfg)
	case SoundLifeLost:
		return CreateLifeLostSound(cfg), nil
	default:
		return nil, fmt.Errorf("unknown sound type %d", s)
	}
}
