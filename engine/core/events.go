package core

import (
	"sync"

	"github.com/spaghettifunk/aurora/engine/containers"
)

type EventContext struct {
	// 128 bytes
	Data struct {
		I64 [2]int64
		U64 [2]uint64
		F64 [2]float64

		I32 [4]int32
		U32 [4]uint32
		F32 [4]float32

		I16 [8]int16
		U16 [8]uint16

		I8 [16]int8
		U8 [16]uint8

		C [16]string
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * u16 key_code = data.data.u16[0];
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * u16 key_code = data.data.u16[0];
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * u16 button = data.data.u16[0];
	 */
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04

	// Mouse button released.
	/* Context usage:
	 * u16 button = data.data.u16[0];
	 */
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05

	// Mouse moved.
	/* Context usage:
	 * u16 x = data.data.u16[0];
	 * u16 y = data.data.u16[1];
	 */
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06

	// Mouse wheel scrolled.
	/* Context usage:
	 * f32 x_delta = data.data.f32[0];
	 * f32 y_delta = data.data.f32[1];
	 */
	EVENT_CODE_MOUSE_SCROLLED SystemEventCode = 0x07

	// Mouse entered the window surface.
	EVENT_CODE_MOUSE_ENTERED SystemEventCode = 0x08

	// Mouse left the window surface.
	EVENT_CODE_MOUSE_LEFT SystemEventCode = 0x09

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * u16 width = data.data.u16[0];
	 * u16 height = data.data.u16[1];
	 */
	EVENT_CODE_WINDOW_RESIZED SystemEventCode = 0x0A

	// The window has been asked to close.
	EVENT_CODE_WINDOW_CLOSED SystemEventCode = 0x0B

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

// Capacity of the deferred event queue drained once per loop iteration.
const maxQueuedEvents = 512

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

type queuedEvent struct {
	code    SystemEventCode
	sender  interface{}
	context EventContext
}

// State structure.
type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry

	// Events posted from dispatcher threads (windowing callbacks), drained
	// in FIFO order by the primary thread.
	queueMu sync.Mutex
	queue   *containers.RingQueue[queuedEvent]
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

func EventSystemInitialize() bool {
	if isInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			queue: containers.NewRingQueue[queuedEvent](maxQueuedEvents),
		}
	})
	isInitialized = true
	return true
}

func EventSystemShutdown() error {
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		if len(eventState.registered[i].events) != 0 {
			eventState.registered[i].events = nil
		}
	}
	return nil
}

// EventRegister listens for events sent with the provided code. Duplicate
// listener/callback combos are not registered again and cause a false
// return. Callbacks fire in LIFO order of registration.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	event := &registeredEvent{
		listener: listener,
		callback: onEvent,
	}
	eventState.registered[code].events = append(eventState.registered[code].events, event)
	return true
}

// EventUnregister stops listening for events with the provided code. If no
// matching registration is found, this function returns false.
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	if !isInitialized {
		return false
	}
	events := eventState.registered[code].events
	if len(events) == 0 {
		return false
	}
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire invokes listeners of the given code immediately, most recently
// registered first. A callback returning true marks the event handled and
// stops propagation.
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	events := eventState.registered[code].events
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// EventPost enqueues an event for later dispatch on the primary thread.
// Safe to call from windowing dispatcher threads. Events overflowing the
// queue are dropped with a warning.
func EventPost(code SystemEventCode, sender interface{}, context EventContext) {
	if !isInitialized {
		return
	}
	eventState.queueMu.Lock()
	defer eventState.queueMu.Unlock()
	if err := eventState.queue.Enqueue(queuedEvent{code: code, sender: sender, context: context}); err != nil {
		LogWarn("event queue full, dropping event code %d", code)
	}
}

// ProcessQueuedEvents drains the deferred queue in FIFO order, firing each
// event. Called by the primary thread at the top of each loop iteration.
func ProcessQueuedEvents() {
	if !isInitialized {
		return
	}
	for {
		eventState.queueMu.Lock()
		ev, err := eventState.queue.Dequeue()
		eventState.queueMu.Unlock()
		if err != nil {
			return
		}
		EventFire(ev.code, ev.sender, ev.context)
	}
}
