package scene

import (
	"github.com/spaghettifunk/aurora/engine/math"
)

// Transform is a TRS record. Composition order is scale, then rotation,
// then translation.
type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransformIdentity() Transform {
	return Transform{
		Position: math.NewVec3Zero(),
		Rotation: math.NewQuatIdentity(),
		Scale:    math.NewVec3One(),
	}
}

func (t Transform) Matrix() math.Mat4 {
	return math.NewMat4TRS(t.Position, t.Rotation, t.Scale)
}

func (t Transform) InverseMatrix() math.Mat4 {
	return math.NewMat4InverseTRS(t.Position, t.Rotation, t.Scale)
}

// TransformTree mirrors the flat hierarchy with per-node local and world
// TRS records plus cached world and inverse-world matrices. Local edits
// land in a pending set; Update propagates them down the hierarchy in a
// single preorder walk.
type TransformTree struct {
	tree *Tree

	locals        []Transform
	worlds        []Transform
	worldMatrices []math.Mat4
	inverseWorld  []math.Mat4
	pending       map[uint32]struct{}

	dirtyScratch []bool
}

func NewTransformTree(tree *Tree) *TransformTree {
	tt := &TransformTree{
		tree:    tree,
		pending: make(map[uint32]struct{}),
	}
	tt.ensure(RootIndex)
	return tt
}

func (tt *TransformTree) ensure(index uint32) {
	for uint32(len(tt.locals)) <= index {
		tt.locals = append(tt.locals, NewTransformIdentity())
		tt.worlds = append(tt.worlds, NewTransformIdentity())
		tt.worldMatrices = append(tt.worldMatrices, math.NewMat4Identity())
		tt.inverseWorld = append(tt.inverseWorld, math.NewMat4Identity())
	}
}

// Register resets the slot for a freshly inserted node.
func (tt *TransformTree) Register(index uint32) {
	tt.ensure(index)
	tt.locals[index] = NewTransformIdentity()
	tt.worlds[index] = NewTransformIdentity()
	tt.worldMatrices[index] = math.NewMat4Identity()
	tt.inverseWorld[index] = math.NewMat4Identity()
	tt.pending[index] = struct{}{}
}

func (tt *TransformTree) Unregister(index uint32) {
	delete(tt.pending, index)
}

func (tt *TransformTree) Local(index uint32) Transform {
	if index >= uint32(len(tt.locals)) {
		return NewTransformIdentity()
	}
	return tt.locals[index]
}

// SetLocal stores a new local transform and defers recomputation to the
// next Update.
func (tt *TransformTree) SetLocal(index uint32, transform Transform) {
	tt.ensure(index)
	tt.locals[index] = transform
	tt.pending[index] = struct{}{}
}

func (tt *TransformTree) SetLocalPosition(index uint32, position math.Vec3) {
	tt.ensure(index)
	tt.locals[index].Position = position
	tt.pending[index] = struct{}{}
}

func (tt *TransformTree) SetLocalRotation(index uint32, rotation math.Quaternion) {
	tt.ensure(index)
	tt.locals[index].Rotation = rotation
	tt.pending[index] = struct{}{}
}

func (tt *TransformTree) SetLocalScale(index uint32, scale math.Vec3) {
	tt.ensure(index)
	tt.locals[index].Scale = scale
	tt.pending[index] = struct{}{}
}

func (tt *TransformTree) World(index uint32) Transform {
	if index >= uint32(len(tt.worlds)) {
		return NewTransformIdentity()
	}
	return tt.worlds[index]
}

func (tt *TransformTree) WorldMatrix(index uint32) math.Mat4 {
	if index >= uint32(len(tt.worldMatrices)) {
		return math.NewMat4Identity()
	}
	return tt.worldMatrices[index]
}

func (tt *TransformTree) InverseWorldMatrix(index uint32) math.Mat4 {
	if index >= uint32(len(tt.inverseWorld)) {
		return math.NewMat4Identity()
	}
	return tt.inverseWorld[index]
}

// Update recomputes world data for every node whose local transform
// changed, or that sits below one that did. A node's world matrix is
// parent-world times local; the inverse is assembled from the local
// inverse times the parent's inverse so no matrix inversion is needed.
func (tt *TransformTree) Update() {
	if len(tt.pending) == 0 {
		return
	}

	order := tt.tree.Preorder()
	for _, index := range order {
		tt.ensure(index)
	}
	if cap(tt.dirtyScratch) < len(tt.locals) {
		tt.dirtyScratch = make([]bool, len(tt.locals))
	}
	dirty := tt.dirtyScratch[:len(tt.locals)]
	for i := range dirty {
		dirty[i] = false
	}

	for _, index := range order {
		_, isPending := tt.pending[index]
		parent, hasParent := tt.tree.Parent(index)
		if hasParent && dirty[parent] {
			isPending = true
		}
		if !isPending {
			continue
		}
		dirty[index] = true

		local := tt.locals[index]
		if !hasParent {
			tt.worlds[index] = local
			tt.worldMatrices[index] = local.Matrix()
			tt.inverseWorld[index] = local.InverseMatrix()
			continue
		}

		parentWorld := tt.worlds[parent]
		tt.worlds[index] = Transform{
			Position: applyPoint(tt.worldMatrices[parent], local.Position),
			Rotation: parentWorld.Rotation.Mul(local.Rotation),
			Scale:    parentWorld.Scale.Mul(local.Scale),
		}
		tt.worldMatrices[index] = tt.worldMatrices[parent].Mul(local.Matrix())
		tt.inverseWorld[index] = local.InverseMatrix().Mul(tt.inverseWorld[parent])
	}

	for index := range tt.pending {
		delete(tt.pending, index)
	}
}

// Reparent recomputes the node's local transform against the new parent
// so its world transform is unchanged. The caller flushes pending edits
// with Update before relinking through Tree.Reparent; worlds cached after
// the relink would already reflect the new parent.
func (tt *TransformTree) Reparent(index, newParent uint32) {
	tt.ensure(index)
	tt.ensure(newParent)

	world := tt.worlds[index]
	parentWorld := tt.worlds[newParent]

	tt.locals[index] = Transform{
		Position: applyPoint(tt.inverseWorld[newParent], world.Position),
		Rotation: parentWorld.Rotation.Inverse().Mul(world.Rotation),
		Scale: math.NewVec3(
			safeDiv(world.Scale.X, parentWorld.Scale.X),
			safeDiv(world.Scale.Y, parentWorld.Scale.Y),
			safeDiv(world.Scale.Z, parentWorld.Scale.Z),
		),
	}
	tt.pending[index] = struct{}{}
}

func applyPoint(m math.Mat4, p math.Vec3) math.Vec3 {
	v := m.MulVec4(math.NewVec4(p.X, p.Y, p.Z, 1))
	return math.NewVec3(v.X, v.Y, v.Z)
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
