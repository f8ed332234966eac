package engine

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/platform"
	"github.com/spaghettifunk/aurora/engine/renderer/gui"
	"github.com/spaghettifunk/aurora/engine/renderer/vulkan"
)

type Stage uint8

const (
	EngineStageUninitialized Stage = iota
	EngineStageInitializing
	EngineStageInitialized
	EngineStageRunning
	EngineStageShuttingDown
)

// Engine owns the subsystems and drives the main loop from the primary
// thread. Windowing callbacks land in the deferred event queue and are
// drained at the top of every iteration.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool

	platform     *platform.Platform
	assetManager *assets.AssetManager
	renderer     *vulkan.VulkanRenderer
	overlay      *gui.GUI
	fileDialog   *platform.FileDialog

	width  uint32
	height uint32

	clock    *core.Clock
	lastTime float64
	// Accumulated wall time owed to the fixed-step simulation.
	accumulator float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("func New - a game with an application config is required")
	}
	if g.FnInitialize == nil || g.FnRender == nil {
		return nil, fmt.Errorf("func New - FnInitialize and FnRender are required")
	}

	p := platform.New()

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     p,
		assetManager: am,
		renderer:     vulkan.New(p),
		fileDialog:   platform.NewFileDialog(),
		isRunning:    true,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_WINDOW_CLOSED, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_WINDOW_RESIZED, e, e.onResized)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY,
		config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	if err := e.assetManager.Initialize(config.AssetsDir); err != nil {
		return err
	}

	if err := e.renderer.Initialize(config.Name, e.width, e.height); err != nil {
		return err
	}

	if err := e.createOverlay(config); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(e); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) createOverlay(config *ApplicationConfig) error {
	vert, err := e.assetManager.LoadAsset(filepath.Join(config.AssetsDir, config.GUIVertexShader), nil)
	if err != nil {
		return err
	}
	frag, err := e.assetManager.LoadAsset(filepath.Join(config.AssetsDir, config.GUIFragmentShader), nil)
	if err != nil {
		return err
	}

	overlay, err := gui.New(e.renderer.Context(), gui.Config{
		Driver:         gui.DriverVulkan,
		VertexShader:   vert.Data.([]byte),
		FragmentShader: frag.Data.([]byte),
	})
	if err != nil {
		return err
	}
	e.overlay = overlay
	return nil
}

// Run drives the main loop until the window closes or a quit event
// fires, then returns so the caller can invoke Shutdown.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	tickSeconds := 1.0 / float64(e.gameInstance.ApplicationConfig.TicksPerSecond)

	for e.isRunning {
		e.platform.PollEvents()
		if e.platform.ShouldClose() {
			e.isRunning = false
		}
		// Windowing callbacks were queued by the dispatcher; handle them
		// on this thread before anything reads input or sizes.
		core.ProcessQueuedEvents()

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		e.pollFileDialog()

		if e.isSuspended {
			e.lastTime = currentTime
			e.platform.Sleep(50)
			continue
		}

		// Fixed-step simulation: the renderer runs as fast as it can,
		// the simulation at a constant rate.
		e.accumulator += delta
		for e.accumulator >= tickSeconds {
			if e.gameInstance.FnFixedUpdate != nil {
				if err := e.gameInstance.FnFixedUpdate(tickSeconds); err != nil {
					core.LogError("game update failed, shutting down: %s", err)
					e.isRunning = false
					break
				}
			}
			core.MetricsTicked()
			e.accumulator -= tickSeconds
		}
		if !e.isRunning {
			break
		}

		if e.gameInstance.FnPrepare != nil {
			if err := e.gameInstance.FnPrepare(delta); err != nil {
				core.LogError("game prepare failed, shutting down: %s", err)
				e.isRunning = false
				break
			}
		}

		if err := e.drawFrame(delta); err != nil {
			core.LogError("frame failed, shutting down: %s", err)
			e.isRunning = false
			break
		}

		core.MetricsUpdate(platform.GetAbsoluteTime() - frameStartTime)

		// Input state copying happens after everything that reads input
		// this frame.
		core.InputUpdate(delta)
		e.lastTime = currentTime
	}

	e.isRunning = false
	return nil
}

func (e *Engine) drawFrame(delta float64) error {
	ok, err := e.renderer.BeginFrame(delta)
	if err != nil {
		return err
	}
	if !ok {
		// Swapchain rebuild or minimized window; nothing recorded.
		return nil
	}

	cmd := e.renderer.CurrentCommandBuffer()
	if err := e.gameInstance.FnRender(cmd, delta); err != nil {
		return err
	}

	e.overlay.NewFrame(e.width, e.height, delta)
	if e.gameInstance.FnGUI != nil {
		e.gameInstance.FnGUI()
	}
	if e.overlay.GenerateDrawData() {
		if err := e.overlay.RenderDrawData(cmd, e.renderer.CurrentFrame()); err != nil {
			return err
		}
	}

	if err := e.renderer.EndFrame(delta); err != nil {
		return err
	}
	core.MetricsFrameRendered()
	return nil
}

func (e *Engine) pollFileDialog() {
	path, chosen, done := e.fileDialog.Poll()
	if done && chosen && e.gameInstance.FnFileSelected != nil {
		e.gameInstance.FnFileSelected(path)
	}
}

// OpenFileDialog shows a native dialog on a background worker. The
// result is delivered through Game.FnFileSelected.
func (e *Engine) OpenFileDialog(fn platform.DialogFunc) bool {
	return e.fileDialog.Open(fn)
}

func (e *Engine) Renderer() *vulkan.VulkanRenderer {
	return e.renderer
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

// FramebufferSize returns the current width and height, in this order.
func (e *Engine) FramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	if e.fileDialog.Running() {
		// The dialog API has no cancellation; leave the worker behind.
		e.fileDialog.Detach()
	}

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown: %s", err)
		}
	}

	// The overlay owns GPU resources, so it goes down before the
	// renderer flushes the deletion queue.
	if e.overlay != nil {
		e.overlay.Shutdown()
	}
	if err := e.renderer.Shutdown(); err != nil {
		core.LogError("renderer shutdown: %s", err)
	}

	e.assetManager.Shutdown()

	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

func (e *Engine) onEvent(code core.SystemEventCode, sender, listenerInst interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT, core.EVENT_CODE_WINDOW_CLOSED:
		core.LogInfo("quit requested, shutting down")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender, listenerInst interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_KEY_PRESSED {
		keyCode := core.KeyCode(data.Data.U16[0])
		if keyCode == core.KEY_ESCAPE {
			core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
			return true
		}
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender, listenerInst interface{}, data core.EventContext) bool {
	width := uint32(data.Data.U16[0])
	height := uint32(data.Data.U16[1])
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("window resized to %dx%d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending")
		e.isSuspended = true
		return true
	}
	e.isSuspended = false

	e.renderer.Resized(width, height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("game resize handler: %s", err)
		}
	}
	return true
}
