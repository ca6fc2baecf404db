// Package signal provides the synthetic wearable and loudness inputs of the game
package signal

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/neurobreath/constant"
	"github.com/lixenwraith/neurobreath/core"
	"github.com/lixenwraith/neurobreath/event"
	"github.com/lixenwraith/neurobreath/status"
)

// Simulation bounds
const (
	heartRateMin = 55
	heartRateMax = 110
	hrvMin       = 20
	hrvMax       = 100

	recoveryHeartRateDrop  = 2
	recoveryHeartRateFloor = 60
	recoveryHRVGain        = 4
	recoveryHRVCap         = 90
)

// InitialReading is the first sample, slightly elevated to show improvement
var InitialReading = core.BiometricReading{
	HeartRate: 78,
	HRV:       40,
	Oxygen:    97,
	Stress:    core.StressMedium,
}

// StressFromHRV buckets HRV: below 35 High, below 55 Medium, otherwise Low
func StressFromHRV(hrv int) core.StressLevel {
	switch {
	case hrv < 35:
		return core.StressHigh
	case hrv < 55:
		return core.StressMedium
	default:
		return core.StressLow
	}
}

// SimulatorOptions configures a BiometricSimulator; zero values pick defaults
type SimulatorOptions struct {
	Rand     *rand.Rand
	Interval time.Duration
	Registry *status.Registry
	Logger   *slog.Logger
}

// BiometricSimulator emulates a wearable: a periodic random walk of heart rate and HRV,
// nudged toward calm by recovery events
type BiometricSimulator struct {
	mu        sync.Mutex
	current   core.BiometricReading
	rng       *rand.Rand
	listeners map[int]func(core.BiometricReading)
	nextID    int

	interval time.Duration
	logger   *slog.Logger
	running  atomic.Bool
	cancel   context.CancelFunc
	done     chan struct{}

	// Cached metric pointers
	statHR       *atomic.Int64
	statHRV      *atomic.Int64
	statOxygen   *atomic.Int64
	statStress   *status.AtomicString
	statRecovery *atomic.Int64
}

func NewBiometricSimulator(opts SimulatorOptions) *BiometricSimulator {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Interval <= 0 {
		opts.Interval = constant.BiometricInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}

	s := &BiometricSimulator{
		current:      InitialReading,
		rng:          opts.Rand,
		listeners:    make(map[int]func(core.BiometricReading)),
		interval:     opts.Interval,
		logger:       opts.Logger.With("component", "biometric"),
		statHR:       opts.Registry.Ints.Get(status.KeyHeartRate),
		statHRV:      opts.Registry.Ints.Get(status.KeyHRV),
		statOxygen:   opts.Registry.Ints.Get(status.KeyOxygen),
		statStress:   opts.Registry.Strings.Get(status.KeyStress),
		statRecovery: opts.Registry.Ints.Get(status.KeyRecovery),
	}
	s.publish(s.current)
	return s
}

// Start launches the sampling loop; a second Start while running is a no-op
func (s *BiometricSimulator) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	s.logger.Debug("simulation started", "interval", s.interval)
	core.Go(func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Step()
			}
		}
	})
}

// Stop halts the sampling loop and waits for it to exit
func (s *BiometricSimulator) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Debug("simulation stopped")
}

// Running reports whether the sampling loop is active
func (s *BiometricSimulator) Running() bool {
	return s.running.Load()
}

// Step applies one natural-fluctuation sample: HR and HRV each drift by -1..+1
func (s *BiometricSimulator) Step() core.BiometricReading {
	s.mu.Lock()
	next := s.current
	next.HeartRate = clamp(next.HeartRate+s.rng.Intn(3)-1, heartRateMin, heartRateMax)
	next.HRV = clamp(next.HRV+s.rng.Intn(3)-1, hrvMin, hrvMax)
	next.Stress = StressFromHRV(next.HRV)
	s.current = next
	s.mu.Unlock()

	s.publish(next)
	s.notify(next)
	return next
}

// TriggerRecovery applies the immediate effect of a completed therapeutic action
func (s *BiometricSimulator) TriggerRecovery() core.BiometricReading {
	s.mu.Lock()
	next := s.current
	next.HeartRate = max(next.HeartRate-recoveryHeartRateDrop, recoveryHeartRateFloor)
	next.HRV = min(next.HRV+recoveryHRVGain, recoveryHRVCap)
	next.Oxygen = min(98+s.rng.Intn(2), 100)
	next.Stress = StressFromHRV(next.HRV)
	s.current = next
	s.mu.Unlock()

	s.statRecovery.Add(1)
	s.publish(next)
	s.notify(next)
	s.logger.Debug("recovery applied", "hr", next.HeartRate, "hrv", next.HRV, "stress", next.Stress)
	return next
}

// Current returns the latest reading
func (s *BiometricSimulator) Current() core.BiometricReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn for every new reading and immediately delivers the current one
// The returned function unsubscribes
func (s *BiometricSimulator) Subscribe(fn func(core.BiometricReading)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// HandleEvent routes recovery events from the game into the simulator
func (s *BiometricSimulator) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventRecovery {
		s.TriggerRecovery()
	}
}

func (s *BiometricSimulator) EventTypes() []event.EventType {
	return []event.EventType{event.EventRecovery}
}

func (s *BiometricSimulator) notify(r core.BiometricReading) {
	s.mu.Lock()
	fns := make([]func(core.BiometricReading), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(r)
	}
}

func (s *BiometricSimulator) publish(r core.BiometricReading) {
	s.statHR.Store(int64(r.HeartRate))
	s.statHRV.Store(int64(r.HRV))
	s.statOxygen.Store(int64(r.Oxygen))
	s.statStress.Store(r.Stress.String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
