// Package axis defines the per-joint flag and numeric state carried for
// every axis/joint of the machine.
package axis

// MaxAxis is the compile-time maximum number of joints/axes the controller
// supports. It mirrors EMCMOT_MAX_AXIS from a typical LinuxCNC-style motion
// controller.
const MaxAxis = 8

// Flags holds the independent per-joint booleans. A typed struct of booleans
// replaces the bitfield macros (GET_AXIS_*_FLAG/SET_AXIS_*_FLAG) of a typical
// C motion-controller record.
type Flags struct {
	Active bool
	Homed  bool
	Homing bool
	Error  bool

	// PosSoftLimit / NegSoftLimit are workspace bounds derived from config.
	PosSoftLimit bool
	NegSoftLimit bool

	// PosHardLimit / NegHardLimit are physical limit switches.
	PosHardLimit bool
	NegHardLimit bool
}

// AnyLimitTripped reports whether any of the four limit flags are set.
func (f Flags) AnyLimitTripped() bool {
	return f.PosSoftLimit || f.NegSoftLimit || f.PosHardLimit || f.NegHardLimit
}

// State is the full per-axis runtime state: flags plus the numeric
// quantities the dispatcher and cyclic executor exchange.
type State struct {
	Flags

	// CommandedPos is the most recently commanded joint position.
	CommandedPos float64

	// PrevPos is the joint position as of the previous cycle, used to
	// compute instantaneous velocity for logging/debug purposes.
	PrevPos float64

	// RawOutput is the raw (pre-calibration) output value sent toward the
	// amplifier/servo for this joint.
	RawOutput float64

	// FollowingError is the commanded-vs-measured position error.
	FollowingError float64
}

// Set is a fixed-size array of per-axis state, indexed 0..MaxAxis-1.
type Set [MaxAxis]State

// Valid reports whether idx is a valid index into a Set (0 <= idx < MaxAxis).
// This is the index-semantics range check used by almost every per-axis
// command arm; a "set count" command uses a different, counting-number range
// (1..MaxAxis, checked inline in the controller's SetNumAxes arm).
func Valid(idx int) bool {
	return idx >= 0 && idx < MaxAxis
}
