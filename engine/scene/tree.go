package scene

import (
	"fmt"

	"github.com/spaghettifunk/aurora/engine/core"
)

const noNode = int32(-1)

// treeNode is one slot of the flat hierarchy. Children are a doubly
// linked sibling chain anchored at the parent's rightmost child, which
// makes insertion and unlinking O(1).
type treeNode struct {
	parent         int32
	rightmostChild int32
	leftSibling    int32
	rightSibling   int32
	depth          uint32
	name           string
	alive          bool
}

// Tree is the flat scene hierarchy. Index 0 is the implicit root; it is
// always alive and can neither be deleted nor reparented. Traversal
// orders are cached and rebuilt lazily behind a single dirty flag.
type Tree struct {
	nodes []treeNode

	preorderCache []uint32
	bfsCache      []uint32
	cacheDirty    bool
}

// RootIndex is the slot of the implicit root node.
const RootIndex = uint32(0)

func NewTree() *Tree {
	t := &Tree{
		nodes:      make([]treeNode, 1, 64),
		cacheDirty: true,
	}
	t.nodes[RootIndex] = treeNode{
		parent:         noNode,
		rightmostChild: noNode,
		leftSibling:    noNode,
		rightSibling:   noNode,
		name:           "root",
		alive:          true,
	}
	return t
}

func (t *Tree) ensure(index uint32) {
	for uint32(len(t.nodes)) <= index {
		t.nodes = append(t.nodes, treeNode{
			parent:         noNode,
			rightmostChild: noNode,
			leftSibling:    noNode,
			rightSibling:   noNode,
		})
	}
}

// Insert places index under parent at the front of the child list.
func (t *Tree) Insert(index, parent uint32, name string) error {
	if !t.Alive(parent) {
		err := fmt.Errorf("func Insert - parent node %d does not exist", parent)
		core.LogError(err.Error())
		return err
	}
	t.ensure(index)
	if t.nodes[index].alive {
		err := fmt.Errorf("func Insert - node slot %d is already occupied", index)
		core.LogError(err.Error())
		return err
	}

	p := &t.nodes[parent]
	n := &t.nodes[index]
	*n = treeNode{
		parent:         int32(parent),
		rightmostChild: noNode,
		leftSibling:    p.rightmostChild,
		rightSibling:   noNode,
		depth:          p.depth + 1,
		name:           name,
		alive:          true,
	}
	if p.rightmostChild != noNode {
		t.nodes[p.rightmostChild].rightSibling = int32(index)
	}
	p.rightmostChild = int32(index)

	t.cacheDirty = true
	return nil
}

// Remove unlinks a leaf or subtree head from its parent. The caller is
// responsible for removing descendants first when cascading.
func (t *Tree) Remove(index uint32) error {
	if index == RootIndex {
		err := fmt.Errorf("func Remove - the root node cannot be removed")
		core.LogError(err.Error())
		return err
	}
	if !t.Alive(index) {
		err := fmt.Errorf("func Remove - node %d does not exist", index)
		core.LogError(err.Error())
		return err
	}
	t.unlink(index)
	t.nodes[index].alive = false
	t.cacheDirty = true
	return nil
}

func (t *Tree) unlink(index uint32) {
	n := &t.nodes[index]
	if n.leftSibling != noNode {
		t.nodes[n.leftSibling].rightSibling = n.rightSibling
	}
	if n.rightSibling != noNode {
		t.nodes[n.rightSibling].leftSibling = n.leftSibling
	}
	if n.parent != noNode && t.nodes[n.parent].rightmostChild == int32(index) {
		t.nodes[n.parent].rightmostChild = n.leftSibling
	}
	n.parent = noNode
	n.leftSibling = noNode
	n.rightSibling = noNode
}

// Reparent moves index (with its subtree) under newParent. Transform
// bookkeeping is handled by the transform tree, not here.
func (t *Tree) Reparent(index, newParent uint32) error {
	if index == RootIndex {
		err := fmt.Errorf("func Reparent - the root node cannot be reparented")
		core.LogError(err.Error())
		return err
	}
	if !t.Alive(index) || !t.Alive(newParent) {
		err := fmt.Errorf("func Reparent - node %d or parent %d does not exist", index, newParent)
		core.LogError(err.Error())
		return err
	}
	// Refuse a cycle: newParent must not be inside index's subtree.
	for p := int32(newParent); p != noNode; p = t.nodes[p].parent {
		if uint32(p) == index {
			err := fmt.Errorf("func Reparent - node %d is a descendant of %d", newParent, index)
			core.LogError(err.Error())
			return err
		}
	}

	t.unlink(index)
	p := &t.nodes[newParent]
	n := &t.nodes[index]
	n.parent = int32(newParent)
	n.leftSibling = p.rightmostChild
	if p.rightmostChild != noNode {
		t.nodes[p.rightmostChild].rightSibling = int32(index)
	}
	p.rightmostChild = int32(index)

	t.refreshDepth(index, p.depth+1)
	t.cacheDirty = true
	return nil
}

func (t *Tree) refreshDepth(index, depth uint32) {
	t.nodes[index].depth = depth
	for c := t.nodes[index].rightmostChild; c != noNode; c = t.nodes[c].leftSibling {
		t.refreshDepth(uint32(c), depth+1)
	}
}

func (t *Tree) Alive(index uint32) bool {
	return index < uint32(len(t.nodes)) && t.nodes[index].alive
}

func (t *Tree) Parent(index uint32) (uint32, bool) {
	if !t.Alive(index) || t.nodes[index].parent == noNode {
		return 0, false
	}
	return uint32(t.nodes[index].parent), true
}

func (t *Tree) Depth(index uint32) uint32 {
	if !t.Alive(index) {
		return 0
	}
	return t.nodes[index].depth
}

func (t *Tree) Name(index uint32) string {
	if !t.Alive(index) {
		return ""
	}
	return t.nodes[index].name
}

func (t *Tree) SetName(index uint32, name string) {
	if t.Alive(index) {
		t.nodes[index].name = name
	}
}

// Children appends the live children of index, newest first.
func (t *Tree) Children(index uint32, out []uint32) []uint32 {
	if !t.Alive(index) {
		return out
	}
	for c := t.nodes[index].rightmostChild; c != noNode; c = t.nodes[c].leftSibling {
		out = append(out, uint32(c))
	}
	return out
}

// Subtree appends index and every descendant in preorder.
func (t *Tree) Subtree(index uint32, out []uint32) []uint32 {
	if !t.Alive(index) {
		return out
	}
	out = append(out, index)
	for c := t.nodes[index].rightmostChild; c != noNode; c = t.nodes[c].leftSibling {
		out = t.Subtree(uint32(c), out)
	}
	return out
}

// Preorder returns the cached depth-first preorder walk from the root.
// The slice is owned by the tree and valid until the next mutation.
func (t *Tree) Preorder() []uint32 {
	if t.cacheDirty {
		t.rebuildCaches()
	}
	return t.preorderCache
}

// BFS returns the cached breadth-first walk from the root.
func (t *Tree) BFS() []uint32 {
	if t.cacheDirty {
		t.rebuildCaches()
	}
	return t.bfsCache
}

func (t *Tree) rebuildCaches() {
	t.preorderCache = t.Subtree(RootIndex, t.preorderCache[:0])

	t.bfsCache = t.bfsCache[:0]
	queue := []uint32{RootIndex}
	for len(queue) > 0 {
		index := queue[0]
		queue = queue[1:]
		t.bfsCache = append(t.bfsCache, index)
		for c := t.nodes[index].rightmostChild; c != noNode; c = t.nodes[c].leftSibling {
			queue = append(queue, uint32(c))
		}
	}
	t.cacheDirty = false
}
