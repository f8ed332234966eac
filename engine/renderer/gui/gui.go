package gui

import (
	"os"
	"path/filepath"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/vulkan"
)

// Driver selects which rendering backend the GUI records through.
type Driver int

const (
	DriverVulkan Driver = iota
	DriverOpenGL
)

// Config carries the SPIR-V for the GUI pipeline; the shaders are loaded
// through the asset layer by the application.
type Config struct {
	Driver         Driver
	VertexShader   []byte
	FragmentShader []byte
}

// GUI owns the immediate-mode context and its renderer. INI settings live
// next to the executable and are loaded at startup, saved at shutdown.
type GUI struct {
	context  *imgui.Context
	io       imgui.IO
	renderer *vulkanRenderer
	iniPath  string
}

func New(vkContext *vulkan.VulkanContext, config Config) (*GUI, error) {
	if config.Driver != DriverVulkan {
		// The unified frame scheduler records through Vulkan only.
		core.LogError("GUI driver %d is not supported by this build", config.Driver)
		return nil, core.ErrRenderingAPINotSupported
	}

	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	// INI handling is manual so the file sits next to the executable.
	io.SetIniFilename("")

	g := &GUI{
		context: context,
		io:      io,
		iniPath: iniPath(),
	}
	if _, err := os.Stat(g.iniPath); err == nil {
		imgui.LoadIniSettingsFromDisk(g.iniPath)
	}

	renderer, err := newVulkanRenderer(vkContext, io, config.VertexShader, config.FragmentShader)
	if err != nil {
		context.Destroy()
		return nil, err
	}
	g.renderer = renderer
	return g, nil
}

// NewFrame feeds display size, timing and input state, then opens a new
// immediate-mode frame.
func (g *GUI) NewFrame(width, height uint32, deltaTime float64) {
	g.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})
	if deltaTime > 0 {
		g.io.SetDeltaTime(float32(deltaTime))
	}

	x, y := core.InputMousePosition()
	g.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	g.io.SetMouseButtonDown(0, core.InputIsButtonDown(core.BUTTON_LEFT))
	g.io.SetMouseButtonDown(1, core.InputIsButtonDown(core.BUTTON_RIGHT))
	g.io.SetMouseButtonDown(2, core.InputIsButtonDown(core.BUTTON_MIDDLE))

	imgui.NewFrame()
}

// GenerateDrawData finalizes the frame and returns whether there is
// anything to render.
func (g *GUI) GenerateDrawData() bool {
	imgui.Render()
	return len(imgui.RenderedDrawData().CommandLists()) > 0
}

// RenderDrawData records the generated geometry into the frame's command
// buffer. Call between the user record callback and submission.
func (g *GUI) RenderDrawData(cmd *vulkan.VulkanCommandBuffer, frame uint32) error {
	return g.renderer.render(cmd, frame, imgui.RenderedDrawData())
}

func (g *GUI) Shutdown() {
	imgui.SaveIniSettingsToDisk(g.iniPath)
	g.renderer.destroy()
	g.context.Destroy()
}

func iniPath() string {
	exe, err := os.Executable()
	if err != nil {
		core.LogWarn("cannot resolve executable path, storing imgui.ini in the working directory")
		return "imgui.ini"
	}
	return filepath.Join(filepath.Dir(exe), "imgui.ini")
}
