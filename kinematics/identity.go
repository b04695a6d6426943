package kinematics

import (
	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/pose"
)

// IdentityKinematics maps Cartesian (X,Y,Z,A,B,C) directly onto the first
// six joints in order. It reports itself as Identity, so COORD and TELEOP
// never require homing.
type IdentityKinematics struct{}

// Inverse implements Kinematics.
func (IdentityKinematics) Inverse(p pose.Pose, joints *[axis.MaxAxis]float64) error {
	joints[0] = p.X
	joints[1] = p.Y
	joints[2] = p.Z
	joints[3] = p.A
	joints[4] = p.B
	joints[5] = p.C
	for i := 6; i < len(joints); i++ {
		joints[i] = 0
	}
	return nil
}

// Type implements Kinematics.
func (IdentityKinematics) Type() Type { return Identity }
