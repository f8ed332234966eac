package scene

import (
	stdmath "math"
	"testing"

	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transformTol = 1e-4

func assertVec3Near(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, transformTol)
	assert.InDelta(t, want.Y, got.Y, transformTol)
	assert.InDelta(t, want.Z, got.Z, transformTol)
}

func assertMat4Near(t *testing.T, want, got math.Mat4) {
	t.Helper()
	for i := range want.Data {
		assert.InDelta(t, want.Data[i], got.Data[i], transformTol)
	}
}

func newTransformFixture(t *testing.T) (*Tree, *TransformTree) {
	t.Helper()
	tree := NewTree()
	tt := NewTransformTree(tree)
	return tree, tt
}

func TestTransformTreeTranslationChain(t *testing.T) {
	tree, tt := newTransformFixture(t)
	require.NoError(t, tree.Insert(1, RootIndex, "a"))
	require.NoError(t, tree.Insert(2, 1, "b"))
	tt.Register(1)
	tt.Register(2)

	tt.SetLocalPosition(1, math.NewVec3(1, 2, 3))
	tt.SetLocalPosition(2, math.NewVec3(10, 0, 0))
	tt.Update()

	assertVec3Near(t, math.NewVec3(11, 2, 3), tt.World(2).Position)
	assertVec3Near(t, math.NewVec3(11, 2, 3), applyPoint(tt.WorldMatrix(2), math.NewVec3Zero()))

	// The cached inverse maps the node's world position back to the origin.
	assertVec3Near(t, math.NewVec3Zero(), applyPoint(tt.InverseWorldMatrix(2), math.NewVec3(11, 2, 3)))
}

func TestTransformTreeRotationPropagates(t *testing.T) {
	tree, tt := newTransformFixture(t)
	require.NoError(t, tree.Insert(1, RootIndex, "pivot"))
	require.NoError(t, tree.Insert(2, 1, "arm"))
	tt.Register(1)
	tt.Register(2)

	// Quarter turn around +Y carries the child's +X offset onto -Z.
	tt.SetLocalRotation(1, math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), float32(stdmath.Pi/2)))
	tt.SetLocalPosition(2, math.NewVec3(1, 0, 0))
	tt.Update()

	assertVec3Near(t, math.NewVec3(0, 0, -1), tt.World(2).Position)
}

func TestTransformTreeScalePropagates(t *testing.T) {
	tree, tt := newTransformFixture(t)
	require.NoError(t, tree.Insert(1, RootIndex, "parent"))
	require.NoError(t, tree.Insert(2, 1, "child"))
	tt.Register(1)
	tt.Register(2)

	tt.SetLocalScale(1, math.NewVec3(2, 2, 2))
	tt.SetLocalPosition(2, math.NewVec3(1, 0, 0))
	tt.Update()

	assertVec3Near(t, math.NewVec3(2, 0, 0), tt.World(2).Position)
	assertVec3Near(t, math.NewVec3(2, 2, 2), tt.World(2).Scale)
}

func TestTransformTreeUpdateIsDeferred(t *testing.T) {
	tree, tt := newTransformFixture(t)
	require.NoError(t, tree.Insert(1, RootIndex, "a"))
	tt.Register(1)
	tt.Update()

	tt.SetLocalPosition(1, math.NewVec3(7, 0, 0))

	// Nothing moves until the next Update.
	assertVec3Near(t, math.NewVec3Zero(), tt.World(1).Position)
	tt.Update()
	assertVec3Near(t, math.NewVec3(7, 0, 0), tt.World(1).Position)
}

func TestTransformTreeParentEditDirtiesSubtree(t *testing.T) {
	tree, tt := newTransformFixture(t)
	require.NoError(t, tree.Insert(1, RootIndex, "a"))
	require.NoError(t, tree.Insert(2, 1, "b"))
	tt.Register(1)
	tt.Register(2)
	tt.SetLocalPosition(2, math.NewVec3(1, 0, 0))
	tt.Update()

	// Only the parent changes; the child must still follow.
	tt.SetLocalPosition(1, math.NewVec3(0, 5, 0))
	tt.Update()

	assertVec3Near(t, math.NewVec3(1, 5, 0), tt.World(2).Position)
}

func TestTransformTreeReparentPreservesWorld(t *testing.T) {
	tree, tt := newTransformFixture(t)
	require.NoError(t, tree.Insert(1, RootIndex, "anchor"))
	require.NoError(t, tree.Insert(2, RootIndex, "mover"))
	tt.Register(1)
	tt.Register(2)

	tt.SetLocal(1, Transform{
		Position: math.NewVec3(5, 0, 0),
		Rotation: math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), float32(stdmath.Pi/2)),
		Scale:    math.NewVec3(2, 2, 2),
	})
	tt.SetLocalPosition(2, math.NewVec3(1, 1, 1))
	tt.Update()

	before := tt.WorldMatrix(2)

	require.NoError(t, tree.Reparent(2, 1))
	tt.Reparent(2, 1)
	tt.Update()

	assertMat4Near(t, before, tt.WorldMatrix(2))
	assertVec3Near(t, math.NewVec3(1, 1, 1), tt.World(2).Position)
}
