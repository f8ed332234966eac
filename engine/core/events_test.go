package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEventCode SystemEventCode = 0x100

func setupEvents(t *testing.T) {
	t.Helper()
	EventSystemInitialize()
	t.Cleanup(func() {
		require.NoError(t, EventSystemShutdown())
	})
}

func TestEventFireReachesListener(t *testing.T) {
	setupEvents(t)

	var got EventContext
	listener := &struct{}{}
	require.True(t, EventRegister(testEventCode, listener,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			got = data
			return true
		}))

	context := EventContext{}
	context.Data.U16[0] = 99
	assert.True(t, EventFire(testEventCode, nil, context))
	assert.Equal(t, uint16(99), got.Data.U16[0])
}

func TestEventCallbacksFireInLIFOOrder(t *testing.T) {
	setupEvents(t)

	var order []string
	first := &struct{ name string }{"first"}
	second := &struct{ name string }{"second"}

	EventRegister(testEventCode, first,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			order = append(order, "first")
			return false
		})
	EventRegister(testEventCode, second,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			order = append(order, "second")
			return false
		})

	EventFire(testEventCode, nil, EventContext{})
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestEventHandledStopsPropagation(t *testing.T) {
	setupEvents(t)

	var reachedFirst bool
	first := &struct{ name string }{"first"}
	second := &struct{ name string }{"second"}

	require.True(t, EventRegister(testEventCode, first,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			reachedFirst = true
			return false
		}))
	// Registered later, fires earlier, and swallows the event.
	require.True(t, EventRegister(testEventCode, second,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			return true
		}))

	assert.True(t, EventFire(testEventCode, nil, EventContext{}))
	assert.False(t, reachedFirst)
}

func TestEventUnregister(t *testing.T) {
	setupEvents(t)

	listener := &struct{}{}
	called := false
	EventRegister(testEventCode, listener,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			called = true
			return true
		})
	require.True(t, EventUnregister(testEventCode, listener))

	EventFire(testEventCode, nil, EventContext{})
	assert.False(t, called)
	assert.False(t, EventUnregister(testEventCode, listener))
}

func TestQueuedEventsDrainInFIFOOrder(t *testing.T) {
	setupEvents(t)

	var seen []uint16
	listener := &struct{}{}
	EventRegister(testEventCode, listener,
		func(code SystemEventCode, sender, listenerInst interface{}, data EventContext) bool {
			seen = append(seen, data.Data.U16[0])
			return true
		})

	for i := uint16(1); i <= 3; i++ {
		context := EventContext{}
		context.Data.U16[0] = i
		EventPost(testEventCode, nil, context)
	}
	assert.Empty(t, seen)

	ProcessQueuedEvents()
	assert.Equal(t, []uint16{1, 2, 3}, seen)

	// A second drain finds nothing.
	ProcessQueuedEvents()
	assert.Len(t, seen, 3)
}
