package engine

import (
	"github.com/spaghettifunk/aurora/engine/renderer/vulkan"
)

// Game is the user callback record driving an application. All callbacks
// are optional except FnInitialize and FnRender.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}

	FnInitialize   Initialize
	FnFixedUpdate  FixedUpdate
	FnPrepare      Prepare
	FnRender       Render
	FnGUI          GUI
	FnOnResize     OnResize
	FnShutdown     Shutdown
	FnFileSelected FileSelected
}

// Initialize runs once after every subsystem is up.
type Initialize func(e *Engine) error

// FixedUpdate advances the simulation by one fixed tick.
type FixedUpdate func(tickTime float64) error

// Prepare runs once per rendered frame before recording; uniform edits
// belong here.
type Prepare func(deltaTime float64) error

// Render records draw commands into the frame's command buffer.
type Render func(cmd *vulkan.VulkanCommandBuffer, deltaTime float64) error

// GUI builds the overlay widgets for the current frame.
type GUI func()

// OnResize reacts to a new framebuffer size.
type OnResize func(width, height uint32) error

// Shutdown releases game-owned resources before the engine tears down.
type Shutdown func() error

// FileSelected receives the path chosen in a native file dialog.
type FileSelected func(path string)
