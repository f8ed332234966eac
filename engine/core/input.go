package core

import (
	"fmt"
	"sync"
)

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_TAB       KeyCode = 0x09
	KEY_SHIFT     KeyCode = 0x10
	KEY_CONTROL   KeyCode = 0x11
	KEY_ALT       KeyCode = 0x12
	KEY_PAUSE     KeyCode = 0x13
	KEY_CAPITAL   KeyCode = 0x14
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_PAGEUP    KeyCode = 0x21
	KEY_PAGEDOWN  KeyCode = 0x22
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_SNAPSHOT  KeyCode = 0x2C
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_5         KeyCode = 0x35
	KEY_6         KeyCode = 0x36
	KEY_7         KeyCode = 0x37
	KEY_8         KeyCode = 0x38
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_NUMPAD0   KeyCode = 0x60
	KEY_NUMPAD1   KeyCode = 0x61
	KEY_NUMPAD2   KeyCode = 0x62
	KEY_NUMPAD3   KeyCode = 0x63
	KEY_NUMPAD4   KeyCode = 0x64
	KEY_NUMPAD5   KeyCode = 0x65
	KEY_NUMPAD6   KeyCode = 0x66
	KEY_NUMPAD7   KeyCode = 0x67
	KEY_NUMPAD8   KeyCode = 0x68
	KEY_NUMPAD9   KeyCode = 0x69
	KEY_MULTIPLY  KeyCode = 0x6A
	KEY_ADD       KeyCode = 0x6B
	KEY_SUBTRACT  KeyCode = 0x6D
	KEY_DECIMAL   KeyCode = 0x6E
	KEY_DIVIDE    KeyCode = 0x6F
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_F5        KeyCode = 0x74
	KEY_F6        KeyCode = 0x75
	KEY_F7        KeyCode = 0x76
	KEY_F8        KeyCode = 0x77
	KEY_F9        KeyCode = 0x78
	KEY_F10       KeyCode = 0x79
	KEY_F11       KeyCode = 0x7A
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEY_LALT      KeyCode = 0xA4
	KEY_RALT      KeyCode = 0xA5
	KEY_SEMICOLON KeyCode = 0xBA
	KEY_PLUS      KeyCode = 0xBB
	KEY_COMMA     KeyCode = 0xBC
	KEY_MINUS     KeyCode = 0xBD
	KEY_PERIOD    KeyCode = 0xBE
	KEY_SLASH     KeyCode = 0xBF
	KEY_GRAVE     KeyCode = 0xC0
	KEY_MAX_KEYS  KeyCode = 0x100
	KEY_UNKNOWN   KeyCode = 0xFFFF
)

// Key codes are round-tripped through string names for debugging. The
// table is validated on initialization so every named key resolves back.
var keyNames = map[KeyCode]string{
	KEY_BACKSPACE: "backspace", KEY_ENTER: "enter", KEY_TAB: "tab",
	KEY_SHIFT: "shift", KEY_CONTROL: "control", KEY_ALT: "alt",
	KEY_PAUSE: "pause", KEY_CAPITAL: "capital", KEY_ESCAPE: "escape",
	KEY_SPACE: "space", KEY_PAGEUP: "pageup", KEY_PAGEDOWN: "pagedown",
	KEY_END: "end", KEY_HOME: "home", KEY_LEFT: "left", KEY_UP: "up",
	KEY_RIGHT: "right", KEY_DOWN: "down", KEY_SNAPSHOT: "snapshot",
	KEY_INSERT: "insert", KEY_DELETE: "delete",
	KEY_0: "0", KEY_1: "1", KEY_2: "2", KEY_3: "3", KEY_4: "4",
	KEY_5: "5", KEY_6: "6", KEY_7: "7", KEY_8: "8", KEY_9: "9",
	KEY_A: "a", KEY_B: "b", KEY_C: "c", KEY_D: "d", KEY_E: "e",
	KEY_F: "f", KEY_G: "g", KEY_H: "h", KEY_I: "i", KEY_J: "j",
	KEY_K: "k", KEY_L: "l", KEY_M: "m", KEY_N: "n", KEY_O: "o",
	KEY_P: "p", KEY_Q: "q", KEY_R: "r", KEY_S: "s", KEY_T: "t",
	KEY_U: "u", KEY_V: "v", KEY_W: "w", KEY_X: "x", KEY_Y: "y",
	KEY_Z:       "z",
	KEY_NUMPAD0: "numpad0", KEY_NUMPAD1: "numpad1", KEY_NUMPAD2: "numpad2",
	KEY_NUMPAD3: "numpad3", KEY_NUMPAD4: "numpad4", KEY_NUMPAD5: "numpad5",
	KEY_NUMPAD6: "numpad6", KEY_NUMPAD7: "numpad7", KEY_NUMPAD8: "numpad8",
	KEY_NUMPAD9:  "numpad9",
	KEY_MULTIPLY: "multiply", KEY_ADD: "add", KEY_SUBTRACT: "subtract",
	KEY_DECIMAL: "decimal", KEY_DIVIDE: "divide",
	KEY_F1: "f1", KEY_F2: "f2", KEY_F3: "f3", KEY_F4: "f4", KEY_F5: "f5",
	KEY_F6: "f6", KEY_F7: "f7", KEY_F8: "f8", KEY_F9: "f9", KEY_F10: "f10",
	KEY_F11: "f11", KEY_F12: "f12",
	KEY_LSHIFT: "lshift", KEY_RSHIFT: "rshift", KEY_LCONTROL: "lcontrol",
	KEY_RCONTROL: "rcontrol", KEY_LALT: "lalt", KEY_RALT: "ralt",
	KEY_SEMICOLON: "semicolon", KEY_PLUS: "plus", KEY_COMMA: "comma",
	KEY_MINUS: "minus", KEY_PERIOD: "period", KEY_SLASH: "slash",
	KEY_GRAVE: "grave",
}

var buttonNames = map[Button]string{
	BUTTON_LEFT:   "left",
	BUTTON_RIGHT:  "right",
	BUTTON_MIDDLE: "middle",
}

var keyFromName map[string]KeyCode
var buttonFromName map[string]Button

// KeyName returns the debug name of a key code.
func KeyName(key KeyCode) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	return "unknown"
}

// KeyFromName resolves a debug name back to its key code.
func KeyFromName(name string) (KeyCode, bool) {
	k, ok := keyFromName[name]
	return k, ok
}

// ButtonName returns the debug name of a mouse button.
func ButtonName(button Button) string {
	if name, ok := buttonNames[button]; ok {
		return name
	}
	return "unknown"
}

// ButtonFromName resolves a debug name back to its button code.
func ButtonFromName(name string) (Button, bool) {
	b, ok := buttonFromName[name]
	return b, ok
}

func buildNameTables() error {
	keyFromName = make(map[string]KeyCode, len(keyNames))
	for code, name := range keyNames {
		if _, dup := keyFromName[name]; dup {
			return fmt.Errorf("duplicate key name %q", name)
		}
		keyFromName[name] = code
	}
	buttonFromName = make(map[string]Button, len(buttonNames))
	for b := BUTTON_LEFT; b < BUTTON_MAX_BUTTONS; b++ {
		name, ok := buttonNames[b]
		if !ok {
			return fmt.Errorf("button %d has no name", b)
		}
		buttonFromName[name] = b
	}
	return nil
}

type keyboardState struct {
	keys [KEY_MAX_KEYS]bool
}

type mouseState struct {
	x, y    int16
	buttons [BUTTON_MAX_BUTTONS]bool
}

type inputState struct {
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState
}

var onceInput sync.Once
var inputInitialized bool = false
var inpState *inputState = nil

func InputInitialize() error {
	if err := buildNameTables(); err != nil {
		return err
	}
	onceInput.Do(func() {
		inpState = &inputState{}
	})
	inputInitialized = true
	LogInfo("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputInitialized = false
	return nil
}

// InputUpdate copies current states to previous. As a safety, call after
// all input for this frame has been recorded.
func InputUpdate(deltaTime float64) {
	if !inputInitialized {
		return
	}
	inpState.keyboardPrevious = inpState.keyboardCurrent
	inpState.mousePrevious = inpState.mouseCurrent
}

// InputProcessKey updates the key state and posts the corresponding event
// into the deferred queue.
func InputProcessKey(key KeyCode, pressed bool) {
	if !inputInitialized || key >= KEY_MAX_KEYS {
		return
	}
	if inpState.keyboardCurrent.keys[key] == pressed {
		return
	}
	inpState.keyboardCurrent.keys[key] = pressed

	context := EventContext{}
	context.Data.U16[0] = uint16(key)
	code := EVENT_CODE_KEY_PRESSED
	if !pressed {
		code = EVENT_CODE_KEY_RELEASED
	}
	EventPost(code, nil, context)
}

// InputProcessButton updates a mouse button state and posts the event.
func InputProcessButton(button Button, pressed bool) {
	if !inputInitialized || button >= BUTTON_MAX_BUTTONS {
		return
	}
	if inpState.mouseCurrent.buttons[button] == pressed {
		return
	}
	inpState.mouseCurrent.buttons[button] = pressed

	context := EventContext{}
	context.Data.U16[0] = uint16(button)
	code := EVENT_CODE_BUTTON_PRESSED
	if !pressed {
		code = EVENT_CODE_BUTTON_RELEASED
	}
	EventPost(code, nil, context)
}

// InputProcessMouseMove updates the cursor position and posts the event.
func InputProcessMouseMove(x, y int16) {
	if !inputInitialized {
		return
	}
	if inpState.mouseCurrent.x == x && inpState.mouseCurrent.y == y {
		return
	}
	inpState.mouseCurrent.x = x
	inpState.mouseCurrent.y = y

	context := EventContext{}
	context.Data.U16[0] = uint16(x)
	context.Data.U16[1] = uint16(y)
	EventPost(EVENT_CODE_MOUSE_MOVED, nil, context)
}

// InputProcessMouseWheel posts a scroll event.
func InputProcessMouseWheel(xDelta, yDelta float32) {
	if !inputInitialized {
		return
	}
	context := EventContext{}
	context.Data.F32[0] = xDelta
	context.Data.F32[1] = yDelta
	EventPost(EVENT_CODE_MOUSE_SCROLLED, nil, context)
}

// InputProcessMouseEnter posts enter/leave events for the window surface.
func InputProcessMouseEnter(entered bool) {
	if !inputInitialized {
		return
	}
	code := EVENT_CODE_MOUSE_ENTERED
	if !entered {
		code = EVENT_CODE_MOUSE_LEFT
	}
	EventPost(code, nil, EventContext{})
}

// InputIsKeyDown reports the key state of the current frame.
func InputIsKeyDown(key KeyCode) bool {
	if !inputInitialized || key >= KEY_MAX_KEYS {
		return false
	}
	return inpState.keyboardCurrent.keys[key]
}

// InputWasKeyDown reports the key state of the previous frame.
func InputWasKeyDown(key KeyCode) bool {
	if !inputInitialized || key >= KEY_MAX_KEYS {
		return false
	}
	return inpState.keyboardPrevious.keys[key]
}

// InputIsButtonDown reports the button state of the current frame.
func InputIsButtonDown(button Button) bool {
	if !inputInitialized || button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return inpState.mouseCurrent.buttons[button]
}

// InputMousePosition returns the current cursor position.
func InputMousePosition() (int16, int16) {
	if !inputInitialized {
		return 0, 0
	}
	return inpState.mouseCurrent.x, inpState.mouseCurrent.y
}
