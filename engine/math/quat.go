package math

import gomath "math"

func NewQuatIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

// NewQuatFromAxisAngle builds a rotation of angle radians around axis.
func NewQuatFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := 0.5 * float64(angle)
	s := float32(gomath.Sin(halfAngle))
	c := float32(gomath.Cos(halfAngle))
	n := axis.Normalize()
	return Quaternion{X: s * n.X, Y: s * n.Y, Z: s * n.Z, W: c}
}

// Mul returns the Hamilton product q*o: the rotation o followed by q.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quaternion) Normal() float32 {
	return float32(gomath.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

func (q Quaternion) Normalize() Quaternion {
	n := q.Normal()
	if n == 0 {
		return NewQuatIdentity()
	}
	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Inverse of a unit quaternion is its conjugate.
func (q Quaternion) Inverse() Quaternion {
	return q.Normalize().Conjugate()
}

// ToMat4 converts a unit quaternion into a column-major rotation matrix.
func (q Quaternion) ToMat4() Mat4 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W

	out := NewMat4Identity()
	out.Data[0] = 1 - 2*y*y - 2*z*z
	out.Data[1] = 2*x*y + 2*z*w
	out.Data[2] = 2*x*z - 2*y*w

	out.Data[4] = 2*x*y - 2*z*w
	out.Data[5] = 1 - 2*x*x - 2*z*z
	out.Data[6] = 2*y*z + 2*x*w

	out.Data[8] = 2*x*z + 2*y*w
	out.Data[9] = 2*y*z - 2*x*w
	out.Data[10] = 1 - 2*x*x - 2*y*y
	return out
}
