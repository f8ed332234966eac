package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSetInsertGet(t *testing.T) {
	s := NewSparseSet[string]()

	s.Insert(5, "five")
	s.Insert(100, "hundred")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))

	v, ok := s.Get(100)
	require.True(t, ok)
	assert.Equal(t, "hundred", v)
}

func TestSparseSetInsertOverwrites(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(3, 1)
	s.Insert(3, 2)

	assert.Equal(t, 1, s.Len())
	v, _ := s.Get(3)
	assert.Equal(t, 2, v)
}

func TestSparseSetRemoveSwapsLast(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(1, 10)
	s.Insert(2, 20)
	s.Insert(3, 30)

	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(2))

	// Survivors stay reachable after the swap-remove.
	v, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, v)
	v, ok = s.Get(3)
	require.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestSparseSetGetPtrMutates(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(4, 40)

	p, ok := s.GetPtr(4)
	require.True(t, ok)
	*p = 44

	v, _ := s.Get(4)
	assert.Equal(t, 44, v)
}

func TestSparseSetEachVisitsAll(t *testing.T) {
	s := NewSparseSet[int]()
	s.Insert(1, 10)
	s.Insert(9, 90)

	seen := map[uint32]int{}
	s.Each(func(key uint32, value int) {
		seen[key] = value
	})
	assert.Equal(t, map[uint32]int{1: 10, 9: 90}, seen)
}
