package kinematics

import (
	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/pose"
)

// LinearInverseOnly maps Cartesian (X,Y,Z,A,B,C) onto the first six joints,
// exactly like IdentityKinematics, but reports itself as InverseOnly. It
// models a machine whose inverse transform is trivial but whose forward
// transform is not implemented/available, which is the interesting case for
// home-state invalidation: this type is used by the
// controller tests that exercise clearHomes.
type LinearInverseOnly struct{}

// Inverse implements Kinematics.
func (LinearInverseOnly) Inverse(p pose.Pose, joints *[axis.MaxAxis]float64) error {
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
func (LinearInverseOnly) Type() Type { return InverseOnly }
