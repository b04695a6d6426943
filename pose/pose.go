// Package pose provides the Cartesian pose type shared by the coordinated,
// teleop, and probe motion commands.
package pose

import "math"

// Pose is a 3D translation plus three orientation scalars.  It is used both
// as a Cartesian point (a commanded or measured position) and as a velocity
// 6-vector (teleop's desired velocity).
type Pose struct {
	X, Y, Z float64
	A, B, C float64
}

// Zero is the zero-valued Pose, provided for readability at call sites.
var Zero = Pose{}

// Vec3 is a plain 3-vector, used for circular move centers and normals,
// which carry no orientation component.
type Vec3 struct {
	X, Y, Z float64
}

// Scale multiplies every component of p by s and returns the result.
func (p Pose) Scale(s float64) Pose {
	return Pose{
		X: p.X * s,
		Y: p.Y * s,
		Z: p.Z * s,
		A: p.A * s,
		B: p.B * s,
		C: p.C * s,
	}
}

// TranMag returns the magnitude of the translation (X,Y,Z) sub-vector.
func (p Pose) TranMag() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// TeleopMagnitude returns max(|translation|, A, B, C), the specific (and
// intentionally not-a-full-6-norm) magnitude measure used to scale teleop
// velocity commands down to the global velocity limit. A, B, and C are not
// made absolute before comparison: only positive angular rates can dominate
// the scale factor.
func (p Pose) TeleopMagnitude() float64 {
	mag := p.TranMag()
	if p.A > mag {
		mag = p.A
	}
	if p.B > mag {
		mag = p.B
	}
	if p.C > mag {
		mag = p.C
	}
	return mag
}
