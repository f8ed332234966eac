package scene

import (
	"fmt"

	"github.com/spaghettifunk/aurora/engine/containers"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
)

// Scene owns the node hierarchy, the transform tree and the entity pools
// for meshes, mesh primitives and materials, each paired with a sparse
// set holding its GPU-side data. Single-owner, driven from the primary
// thread.
type Scene struct {
	nodePool   *core.IDPool
	tree       *Tree
	Transforms *TransformTree

	root core.Identifier

	meshPool      *core.IDPool
	primitivePool *core.IDPool
	materialPool  *core.IDPool

	meshData      *containers.SparseSet[MeshData]
	primitiveData *containers.SparseSet[PrimitiveData]
	materialData  *containers.SparseSet[MaterialData]

	// Components attached to node indices.
	nodeMeshes  *containers.SparseSet[core.Identifier]
	nodeCameras *containers.SparseSet[Camera]
	nodeLights  *containers.SparseSet[Light]
}

func New() *Scene {
	s := &Scene{
		nodePool:      core.NewIDPool(),
		tree:          NewTree(),
		meshPool:      core.NewIDPool(),
		primitivePool: core.NewIDPool(),
		materialPool:  core.NewIDPool(),
		meshData:      containers.NewSparseSet[MeshData](),
		primitiveData: containers.NewSparseSet[PrimitiveData](),
		materialData:  containers.NewSparseSet[MaterialData](),
		nodeMeshes:    containers.NewSparseSet[core.Identifier](),
		nodeCameras:   containers.NewSparseSet[Camera](),
		nodeLights:    containers.NewSparseSet[Light](),
	}
	s.Transforms = NewTransformTree(s.tree)
	// The root occupies the pool's first slot so node ids and tree
	// indices stay aligned.
	s.root = s.nodePool.Acquire()
	return s
}

// Root returns the id of the implicit root node.
func (s *Scene) Root() core.Identifier {
	return s.root
}

func (s *Scene) NodeExists(id core.Identifier) bool {
	return s.nodePool.Exists(id) && s.tree.Alive(id.Index())
}

// CreateNode inserts a named node under parent and returns its id.
func (s *Scene) CreateNode(parent core.Identifier, name string) (core.Identifier, error) {
	if !s.NodeExists(parent) {
		err := fmt.Errorf("func CreateNode - parent %s does not exist", parent)
		core.LogError(err.Error())
		return 0, err
	}
	id := s.nodePool.Acquire()
	if err := s.tree.Insert(id.Index(), parent.Index(), name); err != nil {
		s.nodePool.Release(id)
		return 0, err
	}
	s.Transforms.Register(id.Index())
	return id, nil
}

// RemoveNode removes a node and its entire subtree. Components attached
// to removed nodes are detached; mesh, primitive and material entities
// stay alive since other nodes may still reference them.
func (s *Scene) RemoveNode(id core.Identifier) error {
	if id == s.root {
		err := fmt.Errorf("func RemoveNode - the root node cannot be removed")
		core.LogError(err.Error())
		return err
	}
	if !s.NodeExists(id) {
		err := fmt.Errorf("func RemoveNode - node %s does not exist", id)
		core.LogError(err.Error())
		return err
	}

	subtree := s.tree.Subtree(id.Index(), nil)
	// Leaves first so Remove always unlinks a subtree head whose
	// descendants are already gone.
	for i := len(subtree) - 1; i >= 0; i-- {
		index := subtree[i]
		s.nodeMeshes.Remove(index)
		s.nodeCameras.Remove(index)
		s.nodeLights.Remove(index)
		s.Transforms.Unregister(index)
		if err := s.tree.Remove(index); err != nil {
			return err
		}
		if nodeID, ok := s.nodePool.IDAt(index); ok {
			if err := s.nodePool.Release(nodeID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scene) RenameNode(id core.Identifier, name string) error {
	if !s.NodeExists(id) {
		err := fmt.Errorf("func RenameNode - node %s does not exist", id)
		core.LogError(err.Error())
		return err
	}
	s.tree.SetName(id.Index(), name)
	return nil
}

func (s *Scene) NodeName(id core.Identifier) string {
	if !s.NodeExists(id) {
		return ""
	}
	return s.tree.Name(id.Index())
}

// Reparent moves a node under a new parent while preserving its world
// transform.
func (s *Scene) Reparent(id, newParent core.Identifier) error {
	if !s.NodeExists(id) || !s.NodeExists(newParent) {
		err := fmt.Errorf("func Reparent - node %s or parent %s does not exist", id, newParent)
		core.LogError(err.Error())
		return err
	}
	// Pending local edits must land under the old parent first, or the
	// preserved "current world" would already be the relinked one.
	s.Transforms.Update()
	if err := s.tree.Reparent(id.Index(), newParent.Index()); err != nil {
		return err
	}
	s.Transforms.Reparent(id.Index(), newParent.Index())
	return nil
}

func (s *Scene) SetLocalTransform(id core.Identifier, transform Transform) error {
	if !s.NodeExists(id) {
		err := fmt.Errorf("func SetLocalTransform - node %s does not exist", id)
		core.LogError(err.Error())
		return err
	}
	s.Transforms.SetLocal(id.Index(), transform)
	return nil
}

func (s *Scene) WorldMatrix(id core.Identifier) math.Mat4 {
	if !s.NodeExists(id) {
		return math.NewMat4Identity()
	}
	return s.Transforms.WorldMatrix(id.Index())
}

// Update flushes pending transform edits through the hierarchy.
func (s *Scene) Update() {
	s.Transforms.Update()
}

// Preorder exposes the cached depth-first node order for rendering.
func (s *Scene) Preorder() []uint32 {
	return s.tree.Preorder()
}

// BFS exposes the cached breadth-first node order.
func (s *Scene) BFS() []uint32 {
	return s.tree.BFS()
}

// CreateMesh registers mesh data and returns its composed id.
func (s *Scene) CreateMesh(data MeshData) core.Identifier {
	id := s.meshPool.Acquire()
	s.meshData.Insert(id.Index(), data)
	return id
}

func (s *Scene) Mesh(id core.Identifier) (MeshData, bool) {
	if !s.meshPool.Exists(id) {
		return MeshData{}, false
	}
	return s.meshData.Get(id.Index())
}

func (s *Scene) RemoveMesh(id core.Identifier) error {
	if !s.meshPool.Exists(id) {
		err := fmt.Errorf("func RemoveMesh - mesh %s does not exist", id)
		core.LogError(err.Error())
		return err
	}
	s.meshData.Remove(id.Index())
	return s.meshPool.Release(id)
}

func (s *Scene) CreatePrimitive(data PrimitiveData) core.Identifier {
	id := s.primitivePool.Acquire()
	s.primitiveData.Insert(id.Index(), data)
	return id
}

func (s *Scene) Primitive(id core.Identifier) (PrimitiveData, bool) {
	if !s.primitivePool.Exists(id) {
		return PrimitiveData{}, false
	}
	return s.primitiveData.Get(id.Index())
}

func (s *Scene) RemovePrimitive(id core.Identifier) error {
	if !s.primitivePool.Exists(id) {
		err := fmt.Errorf("func RemovePrimitive - primitive %s does not exist", id)
		core.LogError(err.Error())
		return err
	}
	s.primitiveData.Remove(id.Index())
	return s.primitivePool.Release(id)
}

func (s *Scene) CreateMaterial(data MaterialData) core.Identifier {
	id := s.materialPool.Acquire()
	s.materialData.Insert(id.Index(), data)
	return id
}

func (s *Scene) Material(id core.Identifier) (MaterialData, bool) {
	if !s.materialPool.Exists(id) {
		return MaterialData{}, false
	}
	return s.materialData.Get(id.Index())
}

func (s *Scene) RemoveMaterial(id core.Identifier) error {
	if !s.materialPool.Exists(id) {
		err := fmt.Errorf("func RemoveMaterial - material %s does not exist", id)
		core.LogError(err.Error())
		return err
	}
	s.materialData.Remove(id.Index())
	return s.materialPool.Release(id)
}

// AttachMesh binds a mesh entity to a node.
func (s *Scene) AttachMesh(node, mesh core.Identifier) error {
	if !s.NodeExists(node) || !s.meshPool.Exists(mesh) {
		err := fmt.Errorf("func AttachMesh - node %s or mesh %s does not exist", node, mesh)
		core.LogError(err.Error())
		return err
	}
	s.nodeMeshes.Insert(node.Index(), mesh)
	return nil
}

func (s *Scene) DetachMesh(node core.Identifier) {
	if s.NodeExists(node) {
		s.nodeMeshes.Remove(node.Index())
	}
}

func (s *Scene) NodeMesh(node core.Identifier) (core.Identifier, bool) {
	if !s.NodeExists(node) {
		return 0, false
	}
	return s.nodeMeshes.Get(node.Index())
}

func (s *Scene) AttachCamera(node core.Identifier, camera Camera) error {
	if !s.NodeExists(node) {
		err := fmt.Errorf("func AttachCamera - node %s does not exist", node)
		core.LogError(err.Error())
		return err
	}
	s.nodeCameras.Insert(node.Index(), camera)
	return nil
}

func (s *Scene) DetachCamera(node core.Identifier) {
	if s.NodeExists(node) {
		s.nodeCameras.Remove(node.Index())
	}
}

func (s *Scene) NodeCamera(node core.Identifier) (Camera, bool) {
	if !s.NodeExists(node) {
		return Camera{}, false
	}
	return s.nodeCameras.Get(node.Index())
}

func (s *Scene) AttachLight(node core.Identifier, light Light) error {
	if !s.NodeExists(node) {
		err := fmt.Errorf("func AttachLight - node %s does not exist", node)
		core.LogError(err.Error())
		return err
	}
	s.nodeLights.Insert(node.Index(), light)
	return nil
}

func (s *Scene) DetachLight(node core.Identifier) {
	if s.NodeExists(node) {
		s.nodeLights.Remove(node.Index())
	}
}

func (s *Scene) NodeLight(node core.Identifier) (Light, bool) {
	if !s.NodeExists(node) {
		return Light{}, false
	}
	return s.nodeLights.Get(node.Index())
}

// EachMeshNode iterates nodes with an attached mesh, independent of tree
// order.
func (s *Scene) EachMeshNode(fn func(nodeIndex uint32, mesh core.Identifier)) {
	s.nodeMeshes.Each(fn)
}

// EachLight iterates attached lights, independent of tree order.
func (s *Scene) EachLight(fn func(nodeIndex uint32, light Light)) {
	s.nodeLights.Each(fn)
}
