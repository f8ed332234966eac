package math

import gomath "math"

func NewMat4Identity() Mat4 {
	m := Mat4{}
	m.Data[0] = 1
	m.Data[5] = 1
	m.Data[10] = 1
	m.Data[15] = 1
	return m
}

func NewMat4Translation(position Vec3) Mat4 {
	m := NewMat4Identity()
	m.Data[12] = position.X
	m.Data[13] = position.Y
	m.Data[14] = position.Z
	return m
}

func NewMat4Scale(scale Vec3) Mat4 {
	m := NewMat4Identity()
	m.Data[0] = scale.X
	m.Data[5] = scale.Y
	m.Data[10] = scale.Z
	return m
}

// Mul returns the matrix product m·o. With column vectors, applying the
// result transforms by o first, then by m.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.Data[k*4+r] * o.Data[c*4+k]
			}
			out.Data[c*4+r] = sum
		}
	}
	return out
}

func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out.Data[r*4+c] = m.Data[c*4+r]
		}
	}
	return out
}

// MulVec4 applies the matrix to a column vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.Data[0]*v.X + m.Data[4]*v.Y + m.Data[8]*v.Z + m.Data[12]*v.W,
		Y: m.Data[1]*v.X + m.Data[5]*v.Y + m.Data[9]*v.Z + m.Data[13]*v.W,
		Z: m.Data[2]*v.X + m.Data[6]*v.Y + m.Data[10]*v.Z + m.Data[14]*v.W,
		W: m.Data[3]*v.X + m.Data[7]*v.Y + m.Data[11]*v.Z + m.Data[15]*v.W,
	}
}

// Translation extracts the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m.Data[12], Y: m.Data[13], Z: m.Data[14]}
}

// NewMat4Perspective builds a right-handed perspective projection with a
// [0,1] depth range. fovRadians is the vertical field of view. Clip-space
// Y points up; the renderer's flipped viewport maps it onto the surface.
func NewMat4Perspective(fovRadians, aspect, near, far float32) Mat4 {
	f := float32(1.0 / gomath.Tan(float64(fovRadians)*0.5))
	var m Mat4
	m.Data[0] = f / aspect
	m.Data[5] = f
	m.Data[10] = far / (near - far)
	m.Data[11] = -1
	m.Data[14] = (near * far) / (near - far)
	return m
}

// NewMat4Orthographic builds a right-handed orthographic projection with a
// [0,1] depth range.
func NewMat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := NewMat4Identity()
	m.Data[0] = 2.0 / (right - left)
	m.Data[5] = 2.0 / (top - bottom)
	m.Data[10] = 1.0 / (near - far)
	m.Data[12] = -(right + left) / (right - left)
	m.Data[13] = -(top + bottom) / (top - bottom)
	m.Data[14] = near / (near - far)
	return m
}

// NewMat4Frustum builds an off-center perspective projection.
func NewMat4Frustum(left, right, bottom, top, near, far float32) Mat4 {
	var m Mat4
	m.Data[0] = 2.0 * near / (right - left)
	m.Data[5] = 2.0 * near / (top - bottom)
	m.Data[8] = (right + left) / (right - left)
	m.Data[9] = (top + bottom) / (top - bottom)
	m.Data[10] = far / (near - far)
	m.Data[11] = -1
	m.Data[14] = (near * far) / (near - far)
	return m
}

// NewMat4LookAt builds a right-handed view matrix.
func NewMat4LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := NewMat4Identity()
	m.Data[0] = s.X
	m.Data[4] = s.Y
	m.Data[8] = s.Z
	m.Data[1] = u.X
	m.Data[5] = u.Y
	m.Data[9] = u.Z
	m.Data[2] = -f.X
	m.Data[6] = -f.Y
	m.Data[10] = -f.Z
	m.Data[12] = -s.Dot(eye)
	m.Data[13] = -u.Dot(eye)
	m.Data[14] = f.Dot(eye)
	return m
}

// NewMat4TRS composes translation · rotation · scale.
func NewMat4TRS(position Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return NewMat4Translation(position).Mul(rotation.ToMat4()).Mul(NewMat4Scale(scale))
}

// NewMat4InverseTRS composes the inverse of a TRS transform directly as
// scale⁻¹ · rotationᵀ · translation⁻¹, cheaper and better conditioned than
// a general inverse.
func NewMat4InverseTRS(position Vec3, rotation Quaternion, scale Vec3) Mat4 {
	invScale := Vec3{X: safeInv(scale.X), Y: safeInv(scale.Y), Z: safeInv(scale.Z)}
	invRot := rotation.ToMat4().Transpose()
	return NewMat4Scale(invScale).Mul(invRot).Mul(NewMat4Translation(position.Scale(-1)))
}

func safeInv(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1.0 / v
}

func RadToDeg(radians float32) float32 {
	return radians * 180.0 / gomath.Pi
}

func DegToRad(degrees float32) float32 {
	return degrees * gomath.Pi / 180.0
}
