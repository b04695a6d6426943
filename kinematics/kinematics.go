// Package kinematics defines the opaque forward/inverse kinematics contract
// consumed by the controller. The actual kinematic math for any
// given machine geometry is out of scope; this package provides the
// interface plus a couple of concrete strategies that are simple enough to
// be trusted (identity and a diagonal/per-joint passthrough) so the
// controller's validation logic has something real to drive against in
// tests.
package kinematics

import (
	"github.com/nasa-jpl/motioncore/axis"
	"github.com/nasa-jpl/motioncore/pose"
)

// Type enumerates the kinematic capability of a machine, matching the
// KINEMATICS_TYPE taxonomy used by LinuxCNC-style motion controllers.
type Type int

const (
	// Identity machines have joint space == Cartesian space; COORD/TELEOP
	// never require homing first.
	Identity Type = iota
	// ForwardOnly machines can reconstruct Cartesian position from joint
	// positions but not the reverse.
	ForwardOnly
	// InverseOnly machines can compute joint targets from a Cartesian pose
	// but cannot reconstruct Cartesian position from joints. This is the
	// case that requires conservative home invalidation.
	InverseOnly
	// Both machines support forward and inverse transforms.
	Both
)

// Kinematics converts between Cartesian poses and per-joint targets.
type Kinematics interface {
	// Inverse fills joints[0:axis.MaxAxis] with the per-joint targets that
	// realize p. Joints beyond the active axis count are left at whatever
	// the implementation considers neutral (typically zero).
	Inverse(p pose.Pose, joints *[axis.MaxAxis]float64) error

	// Type reports the kinematic capability, used to gate COORD/TELEOP mode
	// entry and home invalidation.
	Type() Type
}
