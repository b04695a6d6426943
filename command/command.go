// Package command defines the command record the supervisor writes and the
// dispatcher reads: a single tagged request plus its torn-read bracket.
package command

import (
	"github.com/nasa-jpl/motioncore/logsvc"
	"github.com/nasa-jpl/motioncore/planner"
	"github.com/nasa-jpl/motioncore/pose"
	"github.com/nasa-jpl/motioncore/shm"
)

// Kind enumerates every command the dispatcher recognizes.
type Kind int

const (
	Abort Kind = iota
	Free
	Coord
	Teleop
	SetNumAxes
	SetWorldHome
	SetJointHome
	SetHomeOffset
	SetPositionLimits
	SetMaxFerror
	SetMinFerror
	OverrideLimits
	JogCont
	JogIncr
	JogAbs
	SetLine
	SetCircle
	Probe
	SetVel
	SetVelLimit
	SetAxisVelLimit
	SetHomingVel
	SetAcc
	Pause
	Resume
	Step
	Scale
	Enable
	Disable
	ActivateAxis
	DeactivateAxis
	EnableAmplifier
	DisableAmplifier
	OpenLog
	StartLog
	StopLog
	CloseLog
	Home
	EnableWatchdog
	DisableWatchdog
	ClearProbeFlags
	SetTeleopVector
	SetDebug
	SetTermCond
)

// Record is the Command Record: one request, plus everything every arm
// might need from it. Unused fields for a given Kind are simply ignored by
// the dispatcher.
type Record struct {
	shm.Bracket

	Kind Kind
	Seq  uint64
	Axis int

	// Count carries the requested joint count for SetNumAxes.
	Count int

	Target pose.Pose
	Center pose.Vec3
	Normal pose.Vec3
	Turns  int

	ID int

	Vel   float64
	Acc   float64
	Scale float64

	MinLimit float64
	MaxLimit float64

	MaxFerror float64
	MinFerror float64

	Offset float64

	TermCond planner.TermCond

	LogType            logsvc.Type
	LogSize            int
	LogSkip            int
	LogTriggerType     logsvc.TriggerType
	LogTriggerVariable logsvc.TriggerVariable
	LogTriggerThresh   float64

	WatchdogWait float64

	DebugLevel int
}
