package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeIDRoundTrip(t *testing.T) {
	id := ComposeID(42, 7)
	assert.Equal(t, uint32(42), id.Index())
	assert.Equal(t, uint32(7), id.Generation())
}

func TestIDPoolAcquireRelease(t *testing.T) {
	pool := NewIDPool()

	a := pool.Acquire()
	b := pool.Acquire()
	assert.Equal(t, uint32(0), a.Index())
	assert.Equal(t, uint32(1), b.Index())
	assert.True(t, pool.Exists(a))
	assert.True(t, pool.Exists(b))
	assert.Equal(t, 2, pool.AliveCount())

	require.NoError(t, pool.Release(a))
	assert.False(t, pool.Exists(a))
	assert.Equal(t, 1, pool.AliveCount())
}

func TestIDPoolReusesLastFreedIndex(t *testing.T) {
	pool := NewIDPool()
	a := pool.Acquire()
	b := pool.Acquire()

	require.NoError(t, pool.Release(a))
	require.NoError(t, pool.Release(b))

	// Free list is a stack: b's index comes back first, with a bumped
	// generation.
	c := pool.Acquire()
	assert.Equal(t, b.Index(), c.Index())
	assert.Equal(t, b.Generation()+1, c.Generation())

	d := pool.Acquire()
	assert.Equal(t, a.Index(), d.Index())
}

func TestIDPoolStaleIDNeverResolves(t *testing.T) {
	pool := NewIDPool()
	a := pool.Acquire()
	require.NoError(t, pool.Release(a))

	reused := pool.Acquire()
	assert.Equal(t, a.Index(), reused.Index())
	assert.False(t, pool.Exists(a))
	assert.True(t, pool.Exists(reused))
}

func TestIDPoolDoubleReleaseFails(t *testing.T) {
	pool := NewIDPool()
	a := pool.Acquire()
	require.NoError(t, pool.Release(a))
	assert.Error(t, pool.Release(a))
}

func TestIDPoolIDAt(t *testing.T) {
	pool := NewIDPool()
	a := pool.Acquire()

	got, ok := pool.IDAt(a.Index())
	require.True(t, ok)
	assert.Equal(t, a, got)

	require.NoError(t, pool.Release(a))
	_, ok = pool.IDAt(a.Index())
	assert.False(t, ok)
}
