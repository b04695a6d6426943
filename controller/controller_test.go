package controller_test

import (
	"testing"

	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/command"
	"github.com/nasa-jpl/motioncore/controller"
	"github.com/nasa-jpl/motioncore/kinematics"
	"github.com/nasa-jpl/motioncore/pose"
	"github.com/nasa-jpl/motioncore/status"
	"github.com/nasa-jpl/motioncore/util"
)

// newRigged returns a Controller with all MAX_AXIS=8 axes active and travel
// limits [-10, 10], matching the concrete scenarios' fixture.
func newRigged(kin kinematics.Kinematics) *controller.Controller {
	c := controller.New(kin)
	for i := 0; i < axis.MaxAxis; i++ {
		c.Axes[i].Active = true
		c.Config.Axes[i].Travel = util.Limiter{Min: -10, Max: 10}
	}
	return c
}

var seq uint64

func next() uint64 {
	seq++
	return seq
}

func TestScenario1_JogContUnhomedTarget(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)
	c.Status.InPosition = true

	c.Dispatch(&command.Record{Kind: command.JogCont, Seq: next(), Axis: 0, Vel: 1}, 0)
	if c.Status.CommandStatus != status.OK {
		t.Fatalf("expected OK, got %v", c.Status.CommandStatus)
	}
	target, ok := c.Free[0].Peek()
	if !ok || target.X != 20 {
		t.Fatalf("expected jointPos[0]+20=20, got %+v (ok=%v)", target, ok)
	}
}

func TestScenario2_JogContHomedTargetIsMaxLimit(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)
	c.Status.InPosition = true
	c.Axes[0].Homed = true

	c.Dispatch(&command.Record{Kind: command.JogCont, Seq: next(), Axis: 0, Vel: 1}, 0)
	target, ok := c.Free[0].Peek()
	if !ok || target.X != 10 {
		t.Fatalf("expected max_limit=10, got %+v (ok=%v)", target, ok)
	}
}

func TestScenario3_SetLineIdentityWithinLimits(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Dispatch(&command.Record{Kind: command.Coord, Seq: next()}, 0)
	c.Tick()

	c.Dispatch(&command.Record{Kind: command.SetLine, Seq: next(), Target: pose.Pose{X: 5}}, 0)
	if c.Status.CommandStatus != status.OK {
		t.Fatalf("expected OK, got %v", c.Status.CommandStatus)
	}
	if !c.Debug.RehomeAll {
		t.Fatal("expected rehome_all to be set on a successful SET_LINE")
	}
	target, ok := c.Coord.Peek()
	if !ok || target.X != 5 {
		t.Fatalf("expected queued target x=5, got %+v (ok=%v)", target, ok)
	}
}

func TestScenario4_SetLineOutOfRangeAbortsCoord(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Dispatch(&command.Record{Kind: command.Coord, Seq: next()}, 0)
	c.Tick()

	c.Dispatch(&command.Record{Kind: command.SetLine, Seq: next(), Target: pose.Pose{X: 15}}, 0)
	if c.Status.CommandStatus != status.InvalidParams {
		t.Fatalf("expected INVALID_PARAMS, got %v", c.Status.CommandStatus)
	}
	if !c.Coord.Empty() {
		t.Fatal("expected coord queue to be aborted/empty")
	}
	if !c.Status.MotionError {
		t.Fatal("expected MOTION_ERROR to be set")
	}
}

func TestScenario5_SetMaxFerrorNegativeIsNoop(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.SetMaxFerror, Seq: next(), Axis: 2, MaxFerror: -0.1}, 0)
	if c.Status.CommandStatus != status.OK {
		t.Fatalf("expected OK (silent no-op), got %v", c.Status.CommandStatus)
	}
	if c.Config.Axes[2].MaxFerror != 0 {
		t.Fatalf("expected MaxFerror untouched, got %v", c.Config.Axes[2].MaxFerror)
	}
}

func TestScenario6_TeleopVectorScaledToLimit(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Dispatch(&command.Record{Kind: command.Teleop, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.SetVelLimit, Seq: next(), Vel: 2.5}, 0)

	c.Dispatch(&command.Record{Kind: command.SetTeleopVector, Seq: next(), Target: pose.Pose{X: 3, Y: 4}}, 0)
	got := c.Debug.TeleopVel
	if got.X != 1.5 || got.Y != 2 || got.Z != 0 {
		t.Fatalf("expected scaled vector (1.5,2,0), got %+v", got)
	}
}

func TestDuplicateCommandIsNoop(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	s := next()
	c.Dispatch(&command.Record{Kind: command.SetDebug, Seq: s, DebugLevel: 3}, 0)
	if c.Config.Debug != 3 {
		t.Fatal("expected first dispatch to apply")
	}
	echoBefore := c.Status.CommandNumEcho
	c.Dispatch(&command.Record{Kind: command.SetDebug, Seq: s, DebugLevel: 9}, 0)
	if c.Config.Debug != 3 {
		t.Fatal("expected duplicate sequence number to be a no-op")
	}
	if c.Status.CommandNumEcho != echoBefore {
		t.Fatal("expected status to be unchanged across the duplicate")
	}
}

func TestTornReadIncrementsSplit(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	cmd := &command.Record{Kind: command.SetDebug, Seq: next(), DebugLevel: 1}
	cmd.Head = 5
	cmd.Tail = 4
	torn := c.Dispatch(cmd, 0)
	if !torn {
		t.Fatal("expected Dispatch to report a torn read")
	}
	if c.Debug.SplitCount != 1 {
		t.Fatalf("expected SplitCount=1, got %d", c.Debug.SplitCount)
	}
}

func TestBracketSettlesAfterDispatch(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.SetDebug, Seq: next(), DebugLevel: 1}, 0)
	if !c.Status.Settled() || !c.Config.Settled() || !c.Debug.Settled() {
		t.Fatal("expected all three records to settle (head==tail) after dispatch")
	}
}

func TestModeMonotonicity(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Coord, Seq: next()}, 0)
	c.Dispatch(&command.Record{Kind: command.Teleop, Seq: next()}, 0)
	if c.Debug.Coordinating {
		t.Fatal("expected coordinating latch cleared once teleoperating is requested")
	}
	if !c.Debug.Teleoperating {
		t.Fatal("expected teleoperating latch set")
	}
}

func TestClearHomesInverseOnlyScopesToSingleAxis(t *testing.T) {
	c := newRigged(kinematics.LinearInverseOnly{})
	c.Axes[0].Homed = true
	c.Axes[1].Homed = true
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)
	c.Status.InPosition = true

	c.Dispatch(&command.Record{Kind: command.JogCont, Seq: next(), Axis: 0, Vel: 1}, 0)
	if c.Axes[0].Homed {
		t.Fatal("expected axis 0 HOMED cleared by its own jog")
	}
	if !c.Axes[1].Homed {
		t.Fatal("expected axis 1 HOMED to remain set when rehome_all was not latched")
	}
}

func TestClearHomesRehomeAllClearsEveryAxis(t *testing.T) {
	c := newRigged(kinematics.LinearInverseOnly{})
	// COORD entry on inverse-only kinematics needs every active axis homed.
	for i := range c.Axes {
		c.Axes[i].Homed = true
	}
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Dispatch(&command.Record{Kind: command.Coord, Seq: next()}, 0)
	c.Tick()
	// A successful coordinated move latches rehome_all.
	c.Dispatch(&command.Record{Kind: command.SetLine, Seq: next(), Target: pose.Pose{X: 5}}, 0)

	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)
	c.Status.InPosition = true
	c.Dispatch(&command.Record{Kind: command.JogCont, Seq: next(), Axis: 0, Vel: 1}, 0)
	if c.Axes[0].Homed || c.Axes[1].Homed {
		t.Fatal("expected rehome_all to clear HOMED on every axis")
	}
}

func TestJogPermittedDeniesTowardTrippedLimitAndSetsAxisError(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)
	c.Status.InPosition = true
	c.Axes[0].PosSoftLimit = true

	c.Dispatch(&command.Record{Kind: command.JogCont, Seq: next(), Axis: 0, Vel: 1}, 0)
	if c.Status.CommandStatus != status.InvalidParams {
		t.Fatalf("expected INVALID_PARAMS jogging into a tripped limit, got %v", c.Status.CommandStatus)
	}
	if !c.Axes[0].Error {
		t.Fatal("expected per-axis ERROR to be set")
	}
}

func TestJogAwayFromTrippedLimitIsPermitted(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)
	c.Status.InPosition = true
	c.Axes[0].PosSoftLimit = true

	c.Dispatch(&command.Record{Kind: command.JogCont, Seq: next(), Axis: 0, Vel: -1}, 0)
	if c.Status.CommandStatus != status.OK {
		t.Fatalf("expected OK jogging away from a tripped limit, got %v", c.Status.CommandStatus)
	}
}

func TestOverrideLimitsClearsAxisErrors(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Axes[3].Error = true
	c.Dispatch(&command.Record{Kind: command.OverrideLimits, Seq: next(), Axis: 0}, 0)
	if !c.Status.OverrideLimits {
		t.Fatal("expected override-limits flag set for non-negative axis field")
	}
	if c.Axes[3].Error {
		t.Fatal("expected OVERRIDE_LIMITS to clear every axis's error flag")
	}
}

func TestOverrideLimitsNegativeClears(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Status.OverrideLimits = true
	c.Dispatch(&command.Record{Kind: command.OverrideLimits, Seq: next(), Axis: -1}, 0)
	if c.Status.OverrideLimits {
		t.Fatal("expected negative axis field to clear override-limits")
	}
}

func TestUnknownCommandReportsResult(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Kind(9999), Seq: next()}, 0)
	if c.Status.CommandStatus != status.UnknownCommand {
		t.Fatalf("expected UNKNOWN_COMMAND, got %v", c.Status.CommandStatus)
	}
}

func TestHomeRequiresFreeAndEnabled(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Home, Seq: next(), Axis: 0}, 0)
	if c.Status.CommandStatus != status.InvalidCommand {
		t.Fatalf("expected INVALID_COMMAND without enable, got %v", c.Status.CommandStatus)
	}
}

func TestHomeRaisesHomingAndClearsHomed(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Axes[0].Homed = true
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.Free, Seq: next()}, 0)

	c.Dispatch(&command.Record{Kind: command.Home, Seq: next(), Axis: 0}, 0)
	if !c.Axes[0].Homing {
		t.Fatal("expected HOMING raised")
	}
	if c.Axes[0].Homed {
		t.Fatal("expected HOMED cleared")
	}
	if c.Debug.HomingPhase[0] != 1 {
		t.Fatal("expected homing phase set to 1")
	}
}

func TestAbortInCoordRaisesMotionError(t *testing.T) {
	c := newRigged(kinematics.IdentityKinematics{})
	c.Dispatch(&command.Record{Kind: command.Enable, Seq: next()}, 0)
	c.Dispatch(&command.Record{Kind: command.Coord, Seq: next()}, 0)
	c.Tick()
	c.Dispatch(&command.Record{Kind: command.SetLine, Seq: next(), Target: pose.Pose{X: 1}}, 0)

	c.Dispatch(&command.Record{Kind: command.Abort, Seq: next()}, 0)
	if !c.Status.MotionError {
		t.Fatal("expected MOTION_ERROR on coord abort")
	}
	if !c.Coord.Empty() {
		t.Fatal("expected coord queue emptied by ABORT")
	}
}

func TestCoordRefusesEntryWithoutHomingOnInverseOnly(t *testing.T) {
	c := newRigged(kinematics.LinearInverseOnly{})
	c.Dispatch(&command.Record{Kind: command.Coord, Seq: next()}, 0)
	if c.Status.CommandStatus != status.InvalidCommand {
		t.Fatalf("expected INVALID_COMMAND entering COORD unhomed on inverse-only kinematics, got %v", c.Status.CommandStatus)
	}
	if c.Debug.Coordinating {
		t.Fatal("expected coordinating latch not to be set on a refused entry")
	}
}
