// Package status defines the Status Record: the live mode,
// enable, and motion-health flags plus the runtime measurements and the
// command echo/result the supervisor polls every cycle.
package status

import (
	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/planner"
	"github.com/nasa-jpl/motioncore/shm"
)

// Mode is the machine's motion mode, exactly one of Free, Coord, or Teleop.
type Mode int

const (
	// Free is independent per-joint jogging.
	Free Mode = iota
	// Coord is coordinated Cartesian motion through the shared coord queue.
	Coord
	// Teleop is continuous Cartesian velocity command.
	Teleop
)

// Result is the outcome taxonomy for a dispatched command.
type Result int

const (
	// OK indicates the command completed without error.
	OK Result = iota
	// InvalidCommand indicates a mode/enable precondition failed.
	InvalidCommand
	// InvalidParams indicates a value was out of range or limits were
	// tripped.
	InvalidParams
	// BadExec indicates a downstream planner refused a well-formed request.
	BadExec
	// UnknownCommand indicates the command kind was not recognized.
	UnknownCommand
)

func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case InvalidCommand:
		return "INVALID_COMMAND"
	case InvalidParams:
		return "INVALID_PARAMS"
	case BadExec:
		return "BAD_EXEC"
	case UnknownCommand:
		return "UNKNOWN_COMMAND"
	default:
		return "UNKNOWN_RESULT"
	}
}

// Record is the Status Record.
type Record struct {
	shm.Bracket

	// Mode and Enabled are the currently-applied mode and enable state (the
	// latches that gate COORD/TELEOP/ENABLE entry live on the debug record
	// and are applied here once per cycle by Controller.Tick, standing in
	// for the external cyclic executor).
	Mode    Mode
	Enabled bool

	InPosition  bool
	MotionError bool

	ProbeTripped bool
	Probing      bool

	OverrideLimits bool

	Paused   bool
	Stepping bool

	Vel          float64
	Acc          float64
	QueueVscale  float64
	AxisVscale   [axis.MaxAxis]float64
	AxisLimitVel [axis.MaxAxis]float64

	// CommandEcho/CommandNumEcho mirror the most recently dispatched
	// command's kind and sequence number.
	CommandEcho    int
	CommandNumEcho uint64

	// CommandStatus is the result of the most recently dispatched command.
	CommandStatus Result

	Id int

	// FerrorCurrent is the live following error per axis, written by the
	// (external) cyclic executor. The dispatcher does not read it:
	// delta-trigger log snapshots sample axis.State.FollowingError instead.
	FerrorCurrent [axis.MaxAxis]float64

	// Logging mirror fields, readable by the supervisor.
	LogOpen             bool
	LogStarted          bool
	LogSize             int
	LogSkip             int
	LogType             int
	LogTriggerType      int
	LogTriggerVariable  int
	LogTriggerThreshold float64
	LogStartVal         float64
	LogPoints           int
}

// TermCond is re-exported for convenience so callers needn't import planner
// solely to spell out a termination condition.
type TermCond = planner.TermCond
