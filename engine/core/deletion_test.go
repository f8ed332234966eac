package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeletionQueueFlushesInReverseOrder(t *testing.T) {
	dq := NewDeletionQueue()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		dq.PushDeletor(func() { order = append(order, i) })
	}
	assert.Equal(t, 3, dq.Len())

	dq.Flush()
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Equal(t, 0, dq.Len())
}

func TestDeletionQueueFlushRunsDeletorsOnce(t *testing.T) {
	dq := NewDeletionQueue()

	calls := 0
	dq.PushDeletor(func() { calls++ })

	dq.Flush()
	dq.Flush()
	assert.Equal(t, 1, calls)
}

func TestDeletionQueueAcceptsPushAfterFlush(t *testing.T) {
	dq := NewDeletionQueue()
	dq.PushDeletor(func() {})
	dq.Flush()

	calls := 0
	dq.PushDeletor(func() { calls++ })
	dq.Flush()
	assert.Equal(t, 1, calls)
}
