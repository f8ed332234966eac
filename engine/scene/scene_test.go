package scene

import (
	"testing"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneCreateNode(t *testing.T) {
	s := New()

	a, err := s.CreateNode(s.Root(), "a")
	require.NoError(t, err)
	b, err := s.CreateNode(a, "b")
	require.NoError(t, err)

	assert.True(t, s.NodeExists(a))
	assert.True(t, s.NodeExists(b))
	assert.Equal(t, "a", s.NodeName(a))
	assert.Equal(t, "b", s.NodeName(b))
	assert.Len(t, s.Preorder(), 3)
}

func TestSceneCreateNodeRejectsStaleParent(t *testing.T) {
	s := New()
	a, err := s.CreateNode(s.Root(), "a")
	require.NoError(t, err)
	require.NoError(t, s.RemoveNode(a))

	_, err = s.CreateNode(a, "orphan")
	assert.Error(t, err)
}

func TestSceneRemoveNodeCascades(t *testing.T) {
	s := New()
	a, err := s.CreateNode(s.Root(), "a")
	require.NoError(t, err)
	b, err := s.CreateNode(a, "b")
	require.NoError(t, err)
	c, err := s.CreateNode(b, "c")
	require.NoError(t, err)

	require.NoError(t, s.RemoveNode(a))

	assert.False(t, s.NodeExists(a))
	assert.False(t, s.NodeExists(b))
	assert.False(t, s.NodeExists(c))
	assert.True(t, s.NodeExists(s.Root()))
	assert.Len(t, s.Preorder(), 1)

	// Slots get recycled with a bumped generation; the old ids stay dead.
	d, err := s.CreateNode(s.Root(), "d")
	require.NoError(t, err)
	assert.True(t, s.NodeExists(d))
	assert.False(t, s.NodeExists(a))
}

func TestSceneRemoveNodeRefusesRoot(t *testing.T) {
	s := New()
	assert.Error(t, s.RemoveNode(s.Root()))
	assert.True(t, s.NodeExists(s.Root()))
}

func TestSceneRenameNode(t *testing.T) {
	s := New()
	a, err := s.CreateNode(s.Root(), "a")
	require.NoError(t, err)

	require.NoError(t, s.RenameNode(a, "renamed"))
	assert.Equal(t, "renamed", s.NodeName(a))

	require.NoError(t, s.RemoveNode(a))
	assert.Error(t, s.RenameNode(a, "ghost"))
}

func TestSceneWorldMatrixComposesDownTheChain(t *testing.T) {
	s := New()
	a, err := s.CreateNode(s.Root(), "a")
	require.NoError(t, err)
	b, err := s.CreateNode(a, "b")
	require.NoError(t, err)

	ta := NewTransformIdentity()
	ta.Position = math.NewVec3(1, 2, 3)
	require.NoError(t, s.SetLocalTransform(a, ta))

	tb := NewTransformIdentity()
	tb.Position = math.NewVec3(10, 0, 0)
	require.NoError(t, s.SetLocalTransform(b, tb))

	s.Update()

	assertVec3Near(t, math.NewVec3(11, 2, 3), applyPoint(s.WorldMatrix(b), math.NewVec3Zero()))
}

func TestSceneReparentPreservesWorld(t *testing.T) {
	s := New()
	anchor, err := s.CreateNode(s.Root(), "anchor")
	require.NoError(t, err)
	mover, err := s.CreateNode(s.Root(), "mover")
	require.NoError(t, err)

	ta := NewTransformIdentity()
	ta.Position = math.NewVec3(5, 0, 0)
	require.NoError(t, s.SetLocalTransform(anchor, ta))

	tm := NewTransformIdentity()
	tm.Position = math.NewVec3(1, 1, 1)
	require.NoError(t, s.SetLocalTransform(mover, tm))
	s.Update()

	before := s.WorldMatrix(mover)
	require.NoError(t, s.Reparent(mover, anchor))
	s.Update()

	assertMat4Near(t, before, s.WorldMatrix(mover))
	assertVec3Near(t, math.NewVec3(-4, 1, 1), s.Transforms.Local(mover.Index()).Position)
}

func TestSceneReparentWithPendingLocalEdit(t *testing.T) {
	s := New()
	anchor, err := s.CreateNode(s.Root(), "anchor")
	require.NoError(t, err)
	mover, err := s.CreateNode(s.Root(), "mover")
	require.NoError(t, err)

	ta := NewTransformIdentity()
	ta.Position = math.NewVec3(100, 0, 0)
	require.NoError(t, s.SetLocalTransform(anchor, ta))
	s.Update()

	// The edit is still pending when the node moves under the anchor; it
	// must land under the old parent, not teleport to (100, 5, 0).
	tm := NewTransformIdentity()
	tm.Position = math.NewVec3(0, 5, 0)
	require.NoError(t, s.SetLocalTransform(mover, tm))
	require.NoError(t, s.Reparent(mover, anchor))
	s.Update()

	assertVec3Near(t, math.NewVec3(0, 5, 0), applyPoint(s.WorldMatrix(mover), math.NewVec3Zero()))
	assertVec3Near(t, math.NewVec3(-100, 5, 0), s.Transforms.Local(mover.Index()).Position)
}

func TestSceneReparentRefusesCycle(t *testing.T) {
	s := New()
	a, err := s.CreateNode(s.Root(), "a")
	require.NoError(t, err)
	b, err := s.CreateNode(a, "b")
	require.NoError(t, err)

	assert.Error(t, s.Reparent(a, b))
	assert.Error(t, s.Reparent(s.Root(), a))
}

func TestSceneMeshEntities(t *testing.T) {
	s := New()

	mesh := s.CreateMesh(MeshData{Name: "cube"})
	got, ok := s.Mesh(mesh)
	require.True(t, ok)
	assert.Equal(t, "cube", got.Name)

	node, err := s.CreateNode(s.Root(), "holder")
	require.NoError(t, err)
	require.NoError(t, s.AttachMesh(node, mesh))

	attached, ok := s.NodeMesh(node)
	require.True(t, ok)
	assert.Equal(t, mesh, attached)

	var visited []core.Identifier
	s.EachMeshNode(func(_ uint32, m core.Identifier) {
		visited = append(visited, m)
	})
	assert.Equal(t, []core.Identifier{mesh}, visited)

	// Removing the node detaches the component but leaves the entity
	// alive for other holders.
	require.NoError(t, s.RemoveNode(node))
	_, ok = s.Mesh(mesh)
	assert.True(t, ok)

	visited = visited[:0]
	s.EachMeshNode(func(_ uint32, m core.Identifier) {
		visited = append(visited, m)
	})
	assert.Empty(t, visited)

	require.NoError(t, s.RemoveMesh(mesh))
	_, ok = s.Mesh(mesh)
	assert.False(t, ok)
	assert.Error(t, s.RemoveMesh(mesh))
}

func TestSceneAttachMeshValidatesBothSides(t *testing.T) {
	s := New()
	node, err := s.CreateNode(s.Root(), "holder")
	require.NoError(t, err)

	mesh := s.CreateMesh(MeshData{Name: "cube"})
	require.NoError(t, s.RemoveMesh(mesh))

	assert.Error(t, s.AttachMesh(node, mesh))
}

func TestSceneCameraComponent(t *testing.T) {
	s := New()
	node, err := s.CreateNode(s.Root(), "eye")
	require.NoError(t, err)

	cam := NewPerspectiveCamera(math.DegToRad(60), 16.0/9.0, 0.1, 100)
	require.NoError(t, s.AttachCamera(node, cam))

	got, ok := s.NodeCamera(node)
	require.True(t, ok)
	assert.Equal(t, CameraProjectionPerspective, got.Projection)

	s.DetachCamera(node)
	_, ok = s.NodeCamera(node)
	assert.False(t, ok)
}

func TestSceneLightComponent(t *testing.T) {
	s := New()
	node, err := s.CreateNode(s.Root(), "sun")
	require.NoError(t, err)

	require.NoError(t, s.AttachLight(node, NewDirectionalLight(math.NewVec3(0, -1, 0), math.NewVec3(1, 1, 1), 1)))

	count := 0
	s.EachLight(func(_ uint32, light Light) {
		count++
		assert.Equal(t, LightKindDirectional, light.Kind)
	})
	assert.Equal(t, 1, count)

	s.DetachLight(node)
	count = 0
	s.EachLight(func(_ uint32, _ Light) { count++ })
	assert.Zero(t, count)
}
