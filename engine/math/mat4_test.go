package math

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.0e-5

func assertVec3Near(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func assertMat4Near(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := range want.Data {
		assert.InDelta(t, want.Data[i], got.Data[i], tol, "element %d", i)
	}
}

func applyPoint(m Mat4, p Vec3) Vec3 {
	v := m.MulVec4(NewVec4(p.X, p.Y, p.Z, 1))
	return NewVec3(v.X, v.Y, v.Z)
}

func TestMat4IdentityLeavesVectorsAlone(t *testing.T) {
	p := NewVec3(1, -2, 3)
	assertVec3Near(t, p, applyPoint(NewMat4Identity(), p))
}

func TestMat4TranslationMovesPoints(t *testing.T) {
	m := NewMat4Translation(NewVec3(1, 2, 3))
	assertVec3Near(t, NewVec3(1, 2, 3), applyPoint(m, NewVec3Zero()))
	assertVec3Near(t, NewVec3(2, 4, 6), applyPoint(m, NewVec3(1, 2, 3)))
}

func TestMat4MulAppliesRightHandSideFirst(t *testing.T) {
	translate := NewMat4Translation(NewVec3(1, 0, 0))
	scale := NewMat4Scale(NewVec3(2, 2, 2))

	// scale first, then translate
	m := translate.Mul(scale)
	assertVec3Near(t, NewVec3(3, 0, 0), applyPoint(m, NewVec3(1, 0, 0)))

	// translate first, then scale
	m = scale.Mul(translate)
	assertVec3Near(t, NewVec3(4, 0, 0), applyPoint(m, NewVec3(1, 0, 0)))
}

func TestQuaternionRotatesAroundAxis(t *testing.T) {
	q := NewQuatFromAxisAngle(NewVec3(0, 1, 0), float32(gomath.Pi/2))
	m := q.ToMat4()
	// +X rotates to -Z around +Y.
	assertVec3Near(t, NewVec3(0, 0, -1), applyPoint(m, NewVec3(1, 0, 0)))
}

func TestMat4TRSComposesScaleRotateTranslate(t *testing.T) {
	position := NewVec3(5, 0, 0)
	rotation := NewQuatFromAxisAngle(NewVec3(0, 0, 1), float32(gomath.Pi/2))
	scale := NewVec3(2, 2, 2)

	m := NewMat4TRS(position, rotation, scale)
	// (1,0,0) -> scale (2,0,0) -> rotate (0,2,0) -> translate (5,2,0)
	assertVec3Near(t, NewVec3(5, 2, 0), applyPoint(m, NewVec3(1, 0, 0)))
}

func TestMat4InverseTRSUndoesTRS(t *testing.T) {
	position := NewVec3(1, -2, 3)
	rotation := NewQuatFromAxisAngle(NewVec3(0, 1, 0).Normalize(), 0.7)
	scale := NewVec3(2, 3, 4)

	m := NewMat4TRS(position, rotation, scale)
	inv := NewMat4InverseTRS(position, rotation, scale)

	assertMat4Near(t, NewMat4Identity(), inv.Mul(m))
	assertMat4Near(t, NewMat4Identity(), m.Mul(inv))
}

func TestMat4TransposeRoundTrips(t *testing.T) {
	m := NewMat4TRS(NewVec3(1, 2, 3), NewQuatFromAxisAngle(NewVec3(1, 0, 0), 0.3), NewVec3One())
	assertMat4Near(t, m, m.Transpose().Transpose())
}

func TestMat4LookAtMapsEyeToOrigin(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	view := NewMat4LookAt(eye, NewVec3Zero(), NewVec3(0, 1, 0))
	assertVec3Near(t, NewVec3Zero(), applyPoint(view, eye))
	// The target lands on the negative view-space Z axis.
	got := applyPoint(view, NewVec3Zero())
	assert.InDelta(t, float64(-5), float64(got.Z), tol)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := NewMat4Perspective(DegToRad(60), 16.0/9.0, 0.1, 100.0)

	near := proj.MulVec4(NewVec4(0, 0, -0.1, 1))
	far := proj.MulVec4(NewVec4(0, 0, -100.0, 1))
	require.NotZero(t, near.W)
	require.NotZero(t, far.W)
	assert.InDelta(t, 0.0, float64(near.Z/near.W), 1e-4)
	assert.InDelta(t, 1.0, float64(far.Z/far.W), 1e-4)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(3, 5, 10))
	assert.Equal(t, 10, Clamp(12, 5, 10))
	assert.Equal(t, 7, Clamp(7, 5, 10))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0.0, 1.0))
}

func TestDegRadRoundTrip(t *testing.T) {
	assert.InDelta(t, 90.0, float64(RadToDeg(DegToRad(90))), tol)
}
