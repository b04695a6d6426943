// Package config defines the Configuration Record: per-axis
// travel/velocity/following-error limits plus the small set of global
// scalars the dispatcher mutates. The record carries its own torn-read
// bracket (shm.Bracket) since the supervisor reads it directly alongside
// status and debug.
package config

import (
	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/shm"
	"github.com/nasa-jpl/motioncore/util"
)

// AxisConfig is the per-axis slice of the Configuration Record. Travel is a
// util.Limiter so soft-limit checks and clamping share the same Check/Clamp
// methods used elsewhere for scalar bounds.
type AxisConfig struct {
	Travel       util.Limiter
	MaxVelocity  float64
	HomingVel    float64
	MaxFerror    float64
	MinFerror    float64
	HomeOffset   float64
	AxisVelLimit float64
}

// Range returns Travel.Max - Travel.Min, the axis's total travel range.
func (a AxisConfig) Range() float64 {
	return a.Travel.Max - a.Travel.Min
}

// Record is the Configuration Record.
type Record struct {
	shm.Bracket

	Axes [axis.MaxAxis]AxisConfig

	// LimitVel is the global absolute velocity ceiling applied to the
	// coordinated queue.
	LimitVel float64

	// Acceleration is the configured global acceleration. SET_ACC does not
	// write it; that command updates the status record and the queues.
	Acceleration float64

	// NumAxes is the configured joint count, 1..=axis.MaxAxis.
	NumAxes int

	// Debug is the debug verbosity level set by SET_DEBUG.
	Debug int

	// Changed latches true whenever a mutation occurs this cycle, so the
	// cyclic executor can pick up new limits on its next iteration. It is
	// idempotent within a cycle: repeated mutations during the same dispatch
	// do not need to be deduplicated by callers, setting it more than once
	// has no additional effect.
	Changed bool
}

// MarkChanged idempotently raises the config-changed signal.
func (r *Record) MarkChanged() {
	r.Changed = true
}

// ConsumeChanged reports whether the config changed since the last call and
// clears the flag, mirroring how the (external) cyclic executor would drain
// the signal once per of its own cycles.
func (r *Record) ConsumeChanged() bool {
	changed := r.Changed
	r.Changed = false
	return changed
}
