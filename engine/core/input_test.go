package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInput(t *testing.T) {
	t.Helper()
	require.NoError(t, InputInitialize())
	EventSystemInitialize()
	t.Cleanup(func() {
		require.NoError(t, InputShutdown())
		require.NoError(t, EventSystemShutdown())
	})
}

func TestKeyNameRoundTrip(t *testing.T) {
	setupInput(t)
	for _, key := range []KeyCode{KEY_ESCAPE, KEY_SPACE, KEY_A, KEY_F1} {
		name := KeyName(key)
		require.NotEqual(t, "unknown", name)
		got, ok := KeyFromName(name)
		require.True(t, ok, "key %q", name)
		assert.Equal(t, key, got)
	}
}

func TestButtonNameRoundTrip(t *testing.T) {
	setupInput(t)
	for b := BUTTON_LEFT; b < BUTTON_MAX_BUTTONS; b++ {
		name := ButtonName(b)
		got, ok := ButtonFromName(name)
		require.True(t, ok, "button %q", name)
		assert.Equal(t, b, got)
	}
}

func TestInputKeyStateTransitions(t *testing.T) {
	setupInput(t)

	assert.False(t, InputIsKeyDown(KEY_SPACE))

	InputProcessKey(KEY_SPACE, true)
	assert.True(t, InputIsKeyDown(KEY_SPACE))
	assert.False(t, InputWasKeyDown(KEY_SPACE))

	// Frame boundary copies current state into previous.
	InputUpdate(1.0 / 60.0)
	assert.True(t, InputIsKeyDown(KEY_SPACE))
	assert.True(t, InputWasKeyDown(KEY_SPACE))

	InputProcessKey(KEY_SPACE, false)
	assert.False(t, InputIsKeyDown(KEY_SPACE))
	assert.True(t, InputWasKeyDown(KEY_SPACE))
}

func TestInputMouseTracking(t *testing.T) {
	setupInput(t)

	InputProcessMouseMove(120, 45)
	x, y := InputMousePosition()
	assert.Equal(t, int16(120), x)
	assert.Equal(t, int16(45), y)

	InputProcessButton(BUTTON_RIGHT, true)
	assert.True(t, InputIsButtonDown(BUTTON_RIGHT))
	InputProcessButton(BUTTON_RIGHT, false)
	assert.False(t, InputIsButtonDown(BUTTON_RIGHT))
}
