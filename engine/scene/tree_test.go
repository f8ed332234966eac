package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestTree returns root -> {A(1), B(2)}, A -> C(3), B -> D(4).
func buildTestTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree()
	require.NoError(t, tree.Insert(1, RootIndex, "A"))
	require.NoError(t, tree.Insert(2, RootIndex, "B"))
	require.NoError(t, tree.Insert(3, 1, "C"))
	require.NoError(t, tree.Insert(4, 2, "D"))
	return tree
}

func TestTreeInsert(t *testing.T) {
	tree := buildTestTree(t)

	assert.True(t, tree.Alive(1))
	assert.Equal(t, "A", tree.Name(1))
	assert.Equal(t, uint32(1), tree.Depth(1))
	assert.Equal(t, uint32(2), tree.Depth(3))

	parent, ok := tree.Parent(3)
	require.True(t, ok)
	assert.Equal(t, uint32(1), parent)

	_, ok = tree.Parent(RootIndex)
	assert.False(t, ok)

	// Children come back newest first.
	assert.Equal(t, []uint32{2, 1}, tree.Children(RootIndex, nil))
}

func TestTreeInsertRejectsOccupiedSlot(t *testing.T) {
	tree := buildTestTree(t)
	assert.Error(t, tree.Insert(1, RootIndex, "again"))
}

func TestTreeInsertRejectsDeadParent(t *testing.T) {
	tree := NewTree()
	assert.Error(t, tree.Insert(1, 7, "orphan"))
}

func TestTreeTraversalOrders(t *testing.T) {
	tree := buildTestTree(t)

	assert.Equal(t, []uint32{0, 2, 4, 1, 3}, tree.Preorder())
	assert.Equal(t, []uint32{0, 2, 1, 4, 3}, tree.BFS())
}

func TestTreeTraversalCachesRebuildAfterMutation(t *testing.T) {
	tree := buildTestTree(t)
	_ = tree.Preorder()

	require.NoError(t, tree.Remove(3))
	require.NoError(t, tree.Remove(1))

	assert.Equal(t, []uint32{0, 2, 4}, tree.Preorder())
	assert.Equal(t, []uint32{0, 2, 4}, tree.BFS())
}

func TestTreeRemove(t *testing.T) {
	tree := buildTestTree(t)

	require.NoError(t, tree.Remove(4))
	assert.False(t, tree.Alive(4))
	assert.Empty(t, tree.Children(2, nil))

	assert.Error(t, tree.Remove(4), "removing twice fails")
}

func TestTreeRemoveRootRefused(t *testing.T) {
	tree := NewTree()
	assert.Error(t, tree.Remove(RootIndex))
	assert.True(t, tree.Alive(RootIndex))
}

func TestTreeRemoveKeepsSiblingChainIntact(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(1, RootIndex, "a"))
	require.NoError(t, tree.Insert(2, RootIndex, "b"))
	require.NoError(t, tree.Insert(3, RootIndex, "c"))

	// Drop the middle sibling; the chain must skip over it.
	require.NoError(t, tree.Remove(2))
	assert.Equal(t, []uint32{3, 1}, tree.Children(RootIndex, nil))
}

func TestTreeReparent(t *testing.T) {
	tree := buildTestTree(t)

	// Move C from under A to under B.
	require.NoError(t, tree.Reparent(3, 2))

	parent, ok := tree.Parent(3)
	require.True(t, ok)
	assert.Equal(t, uint32(2), parent)
	assert.Empty(t, tree.Children(1, nil))
	assert.Equal(t, []uint32{3, 4}, tree.Children(2, nil))
	assert.Equal(t, uint32(2), tree.Depth(3))
}

func TestTreeReparentRefreshesSubtreeDepth(t *testing.T) {
	tree := buildTestTree(t)

	// Move A (with C below it) under D.
	require.NoError(t, tree.Reparent(1, 4))
	assert.Equal(t, uint32(3), tree.Depth(1))
	assert.Equal(t, uint32(4), tree.Depth(3))
}

func TestTreeReparentRefusesRoot(t *testing.T) {
	tree := buildTestTree(t)
	assert.Error(t, tree.Reparent(RootIndex, 1))
}

func TestTreeReparentRefusesCycle(t *testing.T) {
	tree := buildTestTree(t)

	// C is a descendant of A; A cannot move below it.
	assert.Error(t, tree.Reparent(1, 3))
	assert.Error(t, tree.Reparent(1, 1))

	parent, _ := tree.Parent(1)
	assert.Equal(t, RootIndex, parent)
}

func TestTreeSubtree(t *testing.T) {
	tree := buildTestTree(t)
	assert.Equal(t, []uint32{1, 3}, tree.Subtree(1, nil))
	assert.Equal(t, []uint32{0, 2, 4, 1, 3}, tree.Subtree(RootIndex, nil))
}

func TestTreeSetName(t *testing.T) {
	tree := buildTestTree(t)
	tree.SetName(1, "renamed")
	assert.Equal(t, "renamed", tree.Name(1))
	assert.Equal(t, "", tree.Name(42))
}
