// Package status is the cross-goroutine telemetry board: signal sources write, the renderer reads
package status

import (
	"fmt"
	"sync/atomic"
)

// Well-known keys
const (
	KeyLoudness  = "signal.loudness"
	KeyHeartRate = "bio.heart_rate"
	KeyHRV       = "bio.hrv"
	KeyOxygen    = "bio.oxygen"
	KeyStress    = "bio.stress"
	KeyFrames    = "engine.frames"
	KeyRecovery  = "bio.recoveries"
	KeyAudio     = "audio.state"
)

// Registry is the central metrics facade
// Components cache pointers during init; update loops write directly to atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot flattens every metric to text, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = fmt.Sprintf("%d", v.Load()) })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = fmt.Sprintf("%.2f", v.Get()) })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
