// Package controller implements the per-cycle command dispatcher: the
// routine that reads one pending command, validates it against current
// machine state, mutates the configuration/status/debug records and the
// trajectory planner queues, and acknowledges with a result code.
package controller

import (
	"math"

	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/command"
	"github.com/nasa-jpl/motioncore/config"
	"github.com/nasa-jpl/motioncore/debug"
	"github.com/nasa-jpl/motioncore/errs"
	"github.com/nasa-jpl/motioncore/kinematics"
	"github.com/nasa-jpl/motioncore/logsvc"
	"github.com/nasa-jpl/motioncore/planner"
	"github.com/nasa-jpl/motioncore/pose"
	"github.com/nasa-jpl/motioncore/status"
)

// Controller is the aggregate the dispatcher operates on: the three shared
// records, the per-axis state, the kinematics strategy, the N+1 planner
// queues, the command-echo log, and a diagnostic sink. It replaces the set
// of global mutables (worldHome, logSkip, rehome_all, num_axes, and so on)
// with fields on a single owned value.
type Controller struct {
	Config *config.Record
	Status *status.Record
	Debug  *debug.Record

	Axes axis.Set
	Kin  kinematics.Kinematics

	Free  [axis.MaxAxis]*planner.Queue
	Coord *planner.Queue

	CmdLog   *logsvc.Log
	Reporter *errs.Reporter
}

// New returns a Controller wired with fresh records, a full set of planner
// queues, and the given kinematics strategy. NumAxes defaults to
// axis.MaxAxis; callers activate the axes they use via ACTIVATE_AXIS.
func New(kin kinematics.Kinematics) *Controller {
	c := &Controller{
		Config:   &config.Record{NumAxes: axis.MaxAxis},
		Status:   &status.Record{QueueVscale: 1},
		Debug:    &debug.Record{},
		Kin:      kin,
		Coord:    planner.NewQueue(),
		CmdLog:   &logsvc.Log{},
		Reporter: errs.NewReporter(),
	}
	for i := range c.Free {
		c.Free[i] = planner.NewQueue()
		c.Status.AxisVscale[i] = 1
	}
	return c
}

// Dispatch runs the seven-step per-cycle algorithm against cmd. It returns
// true if the command record was observed mid-write (a torn read), in which
// case the cycle is abandoned and the split counter is incremented.
func (c *Controller) Dispatch(cmd *command.Record, now float64) (torn bool) {
	if cmd.InFlight() {
		c.Debug.SplitCount++
		return true
	}
	if cmd.Seq == c.Status.CommandNumEcho {
		return false
	}

	c.Status.Begin()
	c.Debug.Begin()

	c.Status.CommandEcho = int(cmd.Kind)
	c.Status.CommandNumEcho = cmd.Seq
	c.Status.CommandStatus = status.OK

	if c.CmdLog.IsOpen() && c.CmdLog.Type() == logsvc.TypeCmd && c.CmdLog.Started() {
		c.CmdLog.Add(logsvc.Entry{Time: now, Type: logsvc.TypeCmd, Command: int(cmd.Kind), CommandNum: cmd.Seq})
	}

	c.dispatchKind(cmd, now)

	c.Status.Publish()
	c.Config.Publish()
	c.Debug.Publish()
	return false
}

// Tick applies the deferred mode/enable latches the dispatcher sets, the way
// the (external) cyclic executor would pick them up on its next pass. It
// stands in for that executor only far enough to make the latched
// transitions observable and testable; it performs no kinematics, stepping,
// or servo output.
func (c *Controller) Tick() {
	if c.Debug.Enabling {
		c.Status.Enabled = true
		c.Debug.Enabling = false
	}
	if c.Debug.Disabling {
		c.Status.Enabled = false
		c.Debug.Disabling = false
	}
	if c.Debug.Coordinating {
		c.Status.Mode = status.Coord
		c.Debug.Coordinating = false
	} else if c.Debug.Teleoperating {
		c.Status.Mode = status.Teleop
		c.Debug.Teleoperating = false
	}
}

func (c *Controller) fail(r status.Result) {
	c.Status.CommandStatus = r
}

// limitsClear reports whether no active joint has any limit flag set. Used
// to gate any new coordinated segment.
func (c *Controller) limitsClear() bool {
	for i := 0; i < axis.MaxAxis; i++ {
		if c.Axes[i].Active && c.Axes[i].AnyLimitTripped() {
			return false
		}
	}
	return true
}

// jogPermitted reports whether a jog of axisIdx at the given signed velocity
// is allowed. The override-limits flag bypasses every check.
func (c *Controller) jogPermitted(axisIdx int, vel float64) bool {
	if c.Status.OverrideLimits {
		return true
	}
	if !axis.Valid(axisIdx) {
		return false
	}
	a := c.Axes[axisIdx]
	if vel > 0 && (a.PosSoftLimit || a.PosHardLimit) {
		return false
	}
	if vel < 0 && (a.NegSoftLimit || a.NegHardLimit) {
		return false
	}
	return true
}

// poseInRange runs inverse kinematics on p and checks every active joint's
// target against its configured travel limits. Inactive joints are ignored.
func (c *Controller) poseInRange(p pose.Pose) bool {
	var joints [axis.MaxAxis]float64
	if err := c.Kin.Inverse(p, &joints); err != nil {
		return false
	}
	for i := 0; i < axis.MaxAxis; i++ {
		if !c.Axes[i].Active {
			continue
		}
		if !c.Config.Axes[i].Travel.Check(joints[i]) {
			return false
		}
	}
	return true
}

// allHomed reports whether every active joint is homed.
func (c *Controller) allHomed() bool {
	for i := 0; i < axis.MaxAxis; i++ {
		if c.Axes[i].Active && !c.Axes[i].Homed {
			return false
		}
	}
	return true
}

// clearHomes invalidates HOMED state after free-mode motion of axisIdx, but
// only when the kinematics cannot reconstruct Cartesian position from joint
// positions. If rehomeAll has latched since the last home, every joint's
// HOMED flag clears; otherwise only axisIdx's does.
func (c *Controller) clearHomes(axisIdx int) {
	if c.Kin.Type() != kinematics.InverseOnly {
		return
	}
	if c.Debug.RehomeAll {
		for i := range c.Axes {
			c.Axes[i].Homed = false
		}
	} else if axis.Valid(axisIdx) {
		c.Axes[axisIdx].Homed = false
	}
	c.Debug.AllHomedCache = false
}

// validateCoordEntry runs the shared precondition and in-range checks for
// SET_LINE, SET_CIRCLE, and PROBE. On failure it aborts the coordinated
// queue and raises MOTION_ERROR for an in-range failure (but not for a bare
// mode/enable failure, which never touched the queue).
func (c *Controller) validateCoordEntry(target pose.Pose) bool {
	if c.Status.Mode != status.Coord || !c.Status.Enabled {
		c.fail(status.InvalidCommand)
		return false
	}
	if !c.poseInRange(target) || !c.limitsClear() {
		c.Coord.Abort()
		c.Status.MotionError = true
		c.fail(status.InvalidParams)
		return false
	}
	return true
}

func (c *Controller) syncLogStatus() {
	c.Status.LogOpen = c.CmdLog.IsOpen()
	c.Status.LogStarted = c.CmdLog.Started()
	c.Status.LogType = int(c.CmdLog.Type())
	c.Status.LogStartVal = c.CmdLog.StartVal()
	c.Status.LogPoints = c.CmdLog.Howmany()
}

func (c *Controller) sampleLogVar(v logsvc.TriggerVariable, axisIdx int) float64 {
	if !axis.Valid(axisIdx) {
		return 0
	}
	switch v {
	case logsvc.TriggerOnFerror:
		return c.Axes[axisIdx].FollowingError
	case logsvc.TriggerOnVolt:
		return c.Axes[axisIdx].RawOutput
	case logsvc.TriggerOnPos:
		return c.Axes[axisIdx].CommandedPos
	default:
		return 0
	}
}

func (c *Controller) dispatchKind(cmd *command.Record, now float64) {
	switch cmd.Kind {
	case command.Abort:
		c.abort(cmd)
	case command.Free:
		c.Debug.Coordinating = false
		c.Debug.Teleoperating = false
		c.Status.Mode = status.Free
	case command.Coord:
		c.enterMode(func() { c.Debug.Coordinating = true; c.Debug.Teleoperating = false })
	case command.Teleop:
		c.enterMode(func() { c.Debug.Teleoperating = true; c.Debug.Coordinating = false })
	case command.SetNumAxes:
		if cmd.Count >= 1 && cmd.Count <= axis.MaxAxis {
			c.Config.NumAxes = cmd.Count
			c.Config.MarkChanged()
		}
	case command.SetWorldHome:
		c.Debug.WorldHome = cmd.Target
	case command.SetJointHome:
		if axis.Valid(cmd.Axis) {
			c.Debug.JointHome[cmd.Axis] = cmd.Offset
		}
	case command.SetHomeOffset:
		if axis.Valid(cmd.Axis) {
			c.Config.Axes[cmd.Axis].HomeOffset = cmd.Offset
			c.Config.MarkChanged()
		}
	case command.SetPositionLimits:
		if axis.Valid(cmd.Axis) && cmd.MinLimit <= cmd.MaxLimit {
			c.Config.Axes[cmd.Axis].Travel.Min = cmd.MinLimit
			c.Config.Axes[cmd.Axis].Travel.Max = cmd.MaxLimit
			c.Config.MarkChanged()
		}
	case command.SetMaxFerror:
		if axis.Valid(cmd.Axis) && cmd.MaxFerror >= 0 {
			c.Config.Axes[cmd.Axis].MaxFerror = cmd.MaxFerror
			c.Config.MarkChanged()
		}
	case command.SetMinFerror:
		if axis.Valid(cmd.Axis) && cmd.MinFerror >= 0 {
			c.Config.Axes[cmd.Axis].MinFerror = cmd.MinFerror
			c.Config.MarkChanged()
		}
	case command.OverrideLimits:
		c.Status.OverrideLimits = cmd.Axis >= 0
		for i := range c.Axes {
			c.Axes[i].Error = false
		}
	case command.JogCont, command.JogIncr, command.JogAbs:
		c.jog(cmd)
	case command.SetLine:
		c.setLine(cmd)
	case command.SetCircle:
		c.setCircle(cmd)
	case command.Probe:
		c.probe(cmd)
	case command.SetVel:
		c.Status.Vel = cmd.Vel
		for i := range c.Free {
			c.Free[i].SetVmax(cmd.Vel)
		}
		c.Coord.SetVmax(cmd.Vel)
	case command.SetVelLimit:
		c.Config.LimitVel = cmd.Vel
		c.Coord.SetVlimit(cmd.Vel)
		c.Config.MarkChanged()
	case command.SetAxisVelLimit:
		if axis.Valid(cmd.Axis) {
			c.Config.Axes[cmd.Axis].AxisVelLimit = cmd.Vel
			c.Status.AxisLimitVel[cmd.Axis] = cmd.Vel
			c.Debug.BigVel[cmd.Axis] = cmd.Vel * 10
			c.Config.MarkChanged()
		}
	case command.SetHomingVel:
		if axis.Valid(cmd.Axis) {
			c.Config.Axes[cmd.Axis].HomingVel = cmd.Vel
			c.Config.MarkChanged()
		}
	case command.SetAcc:
		c.Status.Acc = cmd.Acc
		for i := range c.Free {
			c.Free[i].SetAmax(cmd.Acc)
		}
		c.Coord.SetAmax(cmd.Acc)
	case command.Pause:
		for i := range c.Free {
			c.Free[i].Pause()
		}
		c.Coord.Pause()
		c.Status.Paused = true
	case command.Resume:
		for i := range c.Free {
			c.Free[i].Resume()
		}
		c.Coord.Resume()
		c.Status.Paused = false
	case command.Step:
		c.Debug.StepResumeID = c.Coord.ID()
		for i := range c.Free {
			c.Free[i].Resume()
		}
		c.Coord.Resume()
		c.Status.Paused = false
		c.Status.Stepping = true
	case command.Scale:
		s := cmd.Scale
		if s < 0 {
			s = 0
		}
		c.Status.QueueVscale = s
		c.Coord.SetVscale(s)
		for i := range c.Free {
			c.Free[i].SetVscale(s)
			c.Status.AxisVscale[i] = s
		}
	case command.Enable:
		c.Debug.Enabling = true
		c.Debug.Disabling = false
	case command.Disable:
		c.Debug.Disabling = true
		c.Debug.Enabling = false
		if c.Kin.Type() == kinematics.InverseOnly {
			c.Debug.Coordinating = false
			c.Debug.Teleoperating = false
		}
	case command.ActivateAxis:
		if axis.Valid(cmd.Axis) {
			c.Axes[cmd.Axis].Active = true
		}
	case command.DeactivateAxis:
		if axis.Valid(cmd.Axis) {
			c.Axes[cmd.Axis].Active = false
		}
	case command.EnableAmplifier, command.DisableAmplifier:
		// reserved for the hardware interface; no state on this side of it.
	case command.OpenLog:
		if !c.CmdLog.Open(cmd.LogType, cmd.LogSize, cmd.Axis, cmd.LogSkip, cmd.LogTriggerType, cmd.LogTriggerVariable, cmd.LogTriggerThresh, c.sampleLogVar) {
			c.fail(status.InvalidParams)
		}
		c.syncLogStatus()
		c.Status.LogSize = cmd.LogSize
		c.Status.LogSkip = cmd.LogSkip
		c.Status.LogTriggerType = int(cmd.LogTriggerType)
		c.Status.LogTriggerVariable = int(cmd.LogTriggerVariable)
		c.Status.LogTriggerThreshold = cmd.LogTriggerThresh
	case command.StartLog:
		c.CmdLog.Start(now)
		c.syncLogStatus()
	case command.StopLog:
		c.CmdLog.Stop()
		c.syncLogStatus()
	case command.CloseLog:
		c.CmdLog.Close()
		c.syncLogStatus()
	case command.Home:
		c.home(cmd)
	case command.EnableWatchdog:
		wait := cmd.WatchdogWait
		if wait < 0 {
			wait = 0
		}
		c.Debug.WatchdogEnable = true
		c.Debug.WatchdogWait = wait
	case command.DisableWatchdog:
		c.Debug.WatchdogEnable = false
	case command.ClearProbeFlags:
		c.Status.ProbeTripped = false
		c.Status.Probing = true
	case command.SetTeleopVector:
		c.setTeleopVector(cmd)
	case command.SetDebug:
		c.Config.Debug = cmd.DebugLevel
		c.Config.MarkChanged()
	case command.SetTermCond:
		c.Coord.SetTermCond(cmd.TermCond)
	default:
		c.Reporter.Report(now, errs.Info, errs.ErrUnknownCommand{Kind: int(cmd.Kind)})
		c.fail(status.UnknownCommand)
	}
}

func (c *Controller) enterMode(latch func()) {
	if c.Kin.Type() != kinematics.Identity && !c.allHomed() {
		c.fail(status.InvalidCommand)
		return
	}
	latch()
}

func (c *Controller) abort(cmd *command.Record) {
	switch c.Status.Mode {
	case status.Teleop:
		c.Debug.TeleopVel = pose.Zero
	case status.Coord:
		c.Coord.Abort()
		c.Status.MotionError = true
	default:
		if axis.Valid(cmd.Axis) {
			c.Free[cmd.Axis].Abort()
			c.Axes[cmd.Axis].Homing = false
			c.Axes[cmd.Axis].Error = false
		}
	}
}

func (c *Controller) jog(cmd *command.Record) {
	if c.Status.Mode != status.Free || !c.Status.Enabled || !c.Status.InPosition {
		c.fail(status.InvalidCommand)
		return
	}
	if !axis.Valid(cmd.Axis) {
		return
	}
	if !c.jogPermitted(cmd.Axis, cmd.Vel) {
		c.Axes[cmd.Axis].Error = true
		c.fail(status.InvalidParams)
		return
	}

	cfg := c.Config.Axes[cmd.Axis]
	axRange := cfg.Range()
	cur := c.Axes[cmd.Axis].CommandedPos
	homed := c.Axes[cmd.Axis].Homed

	var target float64
	switch cmd.Kind {
	case command.JogCont:
		switch {
		case cmd.Vel > 0 && homed:
			target = cfg.Travel.Max
		case cmd.Vel > 0:
			target = cur + axRange
		case homed:
			target = cfg.Travel.Min
		default:
			target = cur - axRange
		}
	case command.JogIncr:
		target = cur + cmd.Offset
		if homed {
			target = cfg.Travel.Clamp(target)
		}
	case command.JogAbs:
		target = cmd.Offset
		if homed {
			target = cfg.Travel.Clamp(target)
		}
	}

	q := c.Free[cmd.Axis]
	q.SetVmax(math.Abs(cmd.Vel))
	if err := q.AddLine(pose.Pose{X: target}); err != nil {
		c.fail(status.BadExec)
		return
	}
	c.Axes[cmd.Axis].Error = false
	c.clearHomes(cmd.Axis)
}

func (c *Controller) home(cmd *command.Record) {
	if c.Status.Mode != status.Free || !c.Status.Enabled {
		c.fail(status.InvalidCommand)
		return
	}
	if !axis.Valid(cmd.Axis) {
		return
	}
	cfg := c.Config.Axes[cmd.Axis]
	hv := cfg.HomingVel
	axRange := cfg.Range()

	var target float64
	if hv >= 0 {
		target = 2 * axRange
	} else {
		target = -2 * axRange
	}

	q := c.Free[cmd.Axis]
	q.SetVmax(math.Abs(hv))
	if err := q.AddLine(pose.Pose{X: target}); err != nil {
		c.fail(status.BadExec)
		return
	}
	c.Debug.HomingPhase[cmd.Axis] = 1
	c.Axes[cmd.Axis].Homing = true
	c.Axes[cmd.Axis].Homed = false
}

func (c *Controller) setLine(cmd *command.Record) {
	if !c.validateCoordEntry(cmd.Target) {
		return
	}
	c.Coord.SetID(cmd.ID)
	if err := c.Coord.AddLine(cmd.Target); err != nil {
		c.Coord.Abort()
		c.Status.MotionError = true
		c.fail(status.BadExec)
		return
	}
	c.Status.MotionError = false
	c.Debug.RehomeAll = true
}

func (c *Controller) setCircle(cmd *command.Record) {
	if !c.validateCoordEntry(cmd.Target) {
		return
	}
	c.Coord.SetID(cmd.ID)
	if err := c.Coord.AddCircle(cmd.Target, cmd.Center, cmd.Normal, cmd.Turns); err != nil {
		c.Coord.Abort()
		c.Status.MotionError = true
		c.fail(status.BadExec)
		return
	}
	c.Status.MotionError = false
	c.Debug.RehomeAll = true
}

func (c *Controller) probe(cmd *command.Record) {
	if !c.validateCoordEntry(cmd.Target) {
		return
	}
	c.Coord.SetID(cmd.ID)
	if err := c.Coord.AddLine(cmd.Target); err != nil {
		c.Coord.Abort()
		c.Status.MotionError = true
		c.fail(status.BadExec)
		return
	}
	c.Status.MotionError = false
	c.Debug.RehomeAll = true
	c.Status.ProbeTripped = false
	c.Status.Probing = true
}

func (c *Controller) setTeleopVector(cmd *command.Record) {
	if c.Status.Mode != status.Teleop || !c.Status.Enabled {
		c.fail(status.InvalidCommand)
		return
	}
	vec := cmd.Target
	mag := vec.TeleopMagnitude()
	if limit := c.Config.LimitVel; limit > 0 && mag > limit {
		vec = vec.Scale(limit / mag)
	}
	c.Debug.TeleopVel = vec
	c.Debug.RehomeAll = true
}
