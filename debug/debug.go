// Package debug defines the Debug Record: the scratch/diagnostic counters
// and cross-cycle latches that do not belong on the public status record but
// still need a torn-read-safe home between the dispatcher and the
// supervisor.
package debug

import (
	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/pose"
	"github.com/nasa-jpl/motioncore/shm"
)

// Record is the Debug Record.
type Record struct {
	shm.Bracket

	// SplitCount counts torn reads observed on the command record.
	SplitCount uint64

	// HomingPhase tracks each joint's homing sequence step; 0 means idle.
	HomingPhase [axis.MaxAxis]int

	// QueueState is an opaque echo of planner queue occupancy, refreshed by
	// the (external) cyclic executor; the dispatcher only reads it.
	QueueState [axis.MaxAxis + 1]int

	// TeleopVel is the most recently commanded teleop velocity 6-vector.
	TeleopVel pose.Pose

	// RawOutputs mirrors axis.State.RawOutput for diagnostic sampling.
	RawOutputs [axis.MaxAxis]float64

	// PrevJointPos mirrors axis.State.PrevPos for diagnostic sampling.
	PrevJointPos [axis.MaxAxis]float64

	// StepResumeID latches the coordinated queue id in effect when STEP
	// armed single-step execution.
	StepResumeID int

	// WatchdogEnable and WatchdogWait hold the watchdog latch and its
	// (non-negative) timeout.
	WatchdogEnable bool
	WatchdogWait   float64

	// AllHomedCache mirrors whether every active joint is currently homed;
	// cleared whenever clear_homes runs so the next evaluation recomputes it.
	AllHomedCache bool

	// Coordinating and Teleoperating are the deferred mode-entry latches set
	// by the COORD/TELEOP commands; the actual mode switch is applied by the
	// (external) cyclic executor on its next cycle, which is stood in for by
	// Controller.Tick.
	Coordinating  bool
	Teleoperating bool

	// Enabling and Disabling are the deferred latches for the ENABLE/DISABLE
	// commands, applied to status.Enabled by Controller.Tick the same way
	// Coordinating/Teleoperating are applied to status.Mode.
	Enabling  bool
	Disabling bool

	// BigVel mirrors SET_AXIS_VEL_LIMIT's configured cap times ten, used
	// elsewhere as a gross overrun threshold distinct from the cap itself.
	BigVel [axis.MaxAxis]float64

	// RehomeAll latches true whenever a coordinated, teleop, or probe motion
	// has been enqueued since the last home; clear_homes consults it to
	// decide whether to clear every joint's HOMED flag or only the one that
	// moved.
	RehomeAll bool

	// WorldHome is the Cartesian pose SET_WORLD_HOME records; distinct from
	// JointHome, which SET_JOINT_HOME writes per axis. The two are kept
	// separate even though their meanings overlap.
	WorldHome pose.Pose
	JointHome [axis.MaxAxis]float64
}
