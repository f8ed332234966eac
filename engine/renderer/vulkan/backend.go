package vulkan

import (
	stdmath "math"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/platform"
)

// GlobalUniform is the per-frame global shader state.
type GlobalUniform struct {
	Projection math.Mat4
	View       math.Mat4
}

// VulkanRenderer is the backend half of the frame scheduler: it owns the
// whole GPU object chain and sequences acquire, record, submit and
// present under frames-in-flight.
type VulkanRenderer struct {
	platform                *platform.Platform
	FrameNumber             uint64
	context                 *VulkanContext
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32

	// Per-frame persistently-mapped global uniform buffers and their
	// dirty flags, indexed by frame-in-flight slot.
	globalUniformBuffers []*VulkanBuffer
	globalUniformDirty   []bool
	globalUniform        GlobalUniform

	debug bool
}

func New(p *platform.Platform) *VulkanRenderer {
	return &VulkanRenderer{
		platform: p,
		context: &VulkanContext{
			DeletionQueue: &core.DeletionQueue{},
		},
		debug: true,
	}
}

// Context exposes the shared Vulkan state to the resource and GUI layers.
func (vr *VulkanRenderer) Context() *VulkanContext {
	return vr.context
}

func (vr *VulkanRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		core.LogError("GetInstanceProcAddress is nil")
		return core.ErrBackendInit
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		core.LogError("failed to initialize vulkan: %s", err)
		return core.ErrBackendInit
	}

	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	if err := vr.createInstance(appName); err != nil {
		return err
	}
	if vr.debug {
		if err := vr.createDebugger(); err != nil {
			return err
		}
	}

	core.LogDebug("Creating Vulkan surface...")
	surface, err := vr.platform.CreateSurface(vr.context.Instance)
	if err != nil {
		return err
	}
	vr.context.Surface = surface
	core.LogDebug("Vulkan surface created.")

	vr.context.Device = &VulkanDevice{
		GraphicsQueueIndex: -1,
		PresentQueueIndex:  -1,
		TransferQueueIndex: -1,
	}
	if err := DeviceCreate(vr.context); err != nil {
		return err
	}

	vr.context.Allocations = NewAllocationManager(vr.context)
	vr.context.Descriptors = NewDescriptorAllocator(vr.context, 128, []PoolSizeRatio{
		{Type: vk.DescriptorTypeUniformBuffer, Ratio: 3.0},
		{Type: vk.DescriptorTypeStorageImage, Ratio: 1.0},
		{Type: vk.DescriptorTypeCombinedImageSampler, Ratio: 2.0},
	})

	fence, err := NewFence(vr.context, false)
	if err != nil {
		return err
	}
	vr.context.ImmediateFence = fence

	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc

	rp, err := RenderpassCreate(
		vr.context,
		math.NewVec4(0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight)),
		math.NewVec4(0.0, 0.0, 0.2, 1.0),
		1.0, 0)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}

	if err := vr.createCommandBuffers(); err != nil {
		return err
	}
	if err := vr.createSyncObjects(); err != nil {
		return err
	}
	if err := vr.createGlobalUniformBuffers(); err != nil {
		return err
	}

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *VulkanRenderer) createInstance(appName string) error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Aurora Engine"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := []string{vk.KhrSurfaceExtensionName}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		createInfo.Flags |= 1
	}
	if vr.debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
		core.LogDebug("Required extensions: %v", requiredExtensions)
	}
	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	var validationLayers []string
	if vr.debug {
		validationLayers = []string{"VK_LAYER_KHRONOS_validation"}
		if err := verifyValidationLayers(validationLayers); err != nil {
			return err
		}
	}
	createInfo.EnabledLayerCount = uint32(len(validationLayers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(validationLayers)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return vkError("vkCreateInstance", res)
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		core.LogError(err.Error())
		return core.ErrBackendInit
	}
	core.LogInfo("Vulkan instance created.")
	return nil
}

func verifyValidationLayers(required []string) error {
	var availableCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&availableCount, nil); res != vk.Success {
		return vkError("vkEnumerateInstanceLayerProperties", res)
	}
	available := make([]vk.LayerProperties, availableCount)
	if res := vk.EnumerateInstanceLayerProperties(&availableCount, available); res != vk.Success {
		return vkError("vkEnumerateInstanceLayerProperties", res)
	}

	for _, name := range required {
		found := false
		for j := range available {
			available[j].Deref()
			layerName := string(available[j].LayerName[:FindFirstZeroInByteArray(available[j].LayerName[:])])
			if name == layerName {
				found = true
				break
			}
		}
		if !found {
			core.LogError("Required validation layer is missing: %s", name)
			return &core.ExtensionNotSupportedError{Name: name}
		}
	}
	core.LogInfo("All required validation layers are present.")
	return nil
}

func (vr *VulkanRenderer) createDebugger() error {
	debugCreateInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
		PfnCallback: dbgCallbackFunc,
	}
	var dbg vk.DebugReportCallback
	if res := vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg); res != vk.Success {
		return vkError("vkCreateDebugReportCallbackEXT", res)
	}
	vr.context.debugMessenger = dbg
	core.LogDebug("Vulkan debugger created.")
	return nil
}

func (vr *VulkanRenderer) createSyncObjects() error {
	framesInFlight := int(vr.context.Swapchain.MaxFramesInFlight)
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.context.InFlightFences = make([]*VulkanFence, framesInFlight)

	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	for i := 0; i < framesInFlight; i++ {
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			return vkError("vkCreateSemaphore", res)
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			return vkError("vkCreateSemaphore", res)
		}

		// The fence starts signaled so the first frame does not wait on a
		// submission that never happened.
		fence, err := NewFence(vr.context, true)
		if err != nil {
			return err
		}
		vr.context.InFlightFences[i] = fence
	}

	// Actual fences are not owned by this list; entries point at in-flight
	// fences while their image is busy.
	vr.context.ImagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)
	return nil
}

func (vr *VulkanRenderer) createGlobalUniformBuffers() error {
	framesInFlight := int(vr.context.Swapchain.MaxFramesInFlight)
	vr.globalUniformBuffers = make([]*VulkanBuffer, framesInFlight)
	vr.globalUniformDirty = make([]bool, framesInFlight)
	for i := 0; i < framesInFlight; i++ {
		buffer, err := NewMappedUniformBuffer(vr.context, vk.DeviceSize(unsafe.Sizeof(GlobalUniform{})))
		if err != nil {
			return err
		}
		vr.globalUniformBuffers[i] = buffer
		vr.globalUniformDirty[i] = true
	}
	return nil
}

// SetGlobalUniform stores the new global state and marks every frame slot
// dirty; each slot is rewritten when its fence has signaled.
func (vr *VulkanRenderer) SetGlobalUniform(uniform GlobalUniform) {
	vr.globalUniform = uniform
	for i := range vr.globalUniformDirty {
		vr.globalUniformDirty[i] = true
	}
}

// GlobalUniformBuffer returns the uniform buffer backing the given frame
// slot, for descriptor writes.
func (vr *VulkanRenderer) GlobalUniformBuffer(frame uint32) *VulkanBuffer {
	return vr.globalUniformBuffers[frame]
}

func (vr *VulkanRenderer) Shutdown() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Destroy in the opposite order of creation.
	for _, buffer := range vr.globalUniformBuffers {
		vr.context.Allocations.DeleteBuffer(buffer.Allocation)
	}
	vr.globalUniformBuffers = nil

	// Deferred GPU-resource destruction happens exactly once, here.
	vr.context.DeletionQueue.Flush()

	for i := 0; i < int(vr.context.Swapchain.MaxFramesInFlight); i++ {
		if vr.context.ImageAvailableSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.ImageAvailableSemaphores[i], vr.context.Allocator)
		}
		if vr.context.QueueCompleteSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.QueueCompleteSemaphores[i], vr.context.Allocator)
		}
		vr.context.InFlightFences[i].FenceDestroy(vr.context)
	}
	vr.context.ImageAvailableSemaphores = nil
	vr.context.QueueCompleteSemaphores = nil
	vr.context.InFlightFences = nil
	vr.context.ImagesInFlight = nil

	for _, cb := range vr.context.GraphicsCommandBuffers {
		if cb != nil && cb.Handle != nil {
			cb.Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.context.GraphicsCommandBuffers = nil

	for _, fb := range vr.context.Swapchain.Framebuffers {
		fb.Destroy(vr.context)
	}
	vr.context.MainRenderpass.RenderpassDestroy(vr.context)
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	vr.context.ImmediateFence.FenceDestroy(vr.context)
	vr.context.Descriptors.DestroyPools()
	vr.context.Allocations.Destroy()

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	core.LogDebug("Destroying Vulkan surface...")
	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.debug && vr.context.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("Destroying Vulkan debugger...")
		vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)
	return nil
}

// Resized bumps the framebuffer size generation; the next BeginFrame
// rebuilds the swapchain.
func (vr *VulkanRenderer) Resized(width, height uint32) {
	vr.cachedFramebufferWidth = width
	vr.cachedFramebufferHeight = height
	vr.context.FramebufferSizeGeneration++
	vr.context.Swapchain.OnResize(width, height)
	core.LogDebug("Renderer resized: w/h/gen: %d/%d/%d", width, height, vr.context.FramebufferSizeGeneration)
}

// Minimized reports whether the surface currently has zero extent.
func (vr *VulkanRenderer) Minimized() bool {
	return vr.context.Swapchain.State == SWAPCHAIN_STATE_MINIMIZED
}

// BeginFrame waits on the frame fence, acquires the next swapchain image
// and opens the main render pass. A false return with nil error means this
// iteration must skip submission (resize or outdated swapchain).
func (vr *VulkanRenderer) BeginFrame(deltaTime float64) (bool, error) {
	device := vr.context.Device

	if vr.context.RecreatingSwapchain {
		if res := vk.DeviceWaitIdle(device.LogicalDevice); !VulkanResultIsSuccess(res) {
			return false, vkError("vkDeviceWaitIdle", res)
		}
		core.LogDebug("Recreating swapchain, booting.")
		return false, nil
	}

	if vr.context.FramebufferSizeGeneration != vr.context.FramebufferSizeLastGeneration ||
		vr.context.Swapchain.State == SWAPCHAIN_STATE_OUTDATED {
		if res := vk.DeviceWaitIdle(device.LogicalDevice); !VulkanResultIsSuccess(res) {
			return false, vkError("vkDeviceWaitIdle", res)
		}
		if !vr.recreateSwapchain() {
			return false, nil
		}
		core.LogDebug("Resized, booting.")
		return false, nil
	}
	if vr.context.Swapchain.State == SWAPCHAIN_STATE_MINIMIZED {
		return false, nil
	}

	if !vr.context.InFlightFences[vr.context.CurrentFrame].FenceWait(vr.context, stdmath.MaxUint64) {
		core.LogWarn("in-flight fence wait failure")
		return false, nil
	}

	// The fence has signaled, so the GPU is done with this slot's uniform
	// buffer and it is safe to rewrite.
	vr.applyGlobalUniform(vr.context.CurrentFrame)

	imageIndex, status, err := vr.context.Swapchain.SwapchainAcquireNextImageIndex(
		vr.context, stdmath.MaxUint64,
		vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame], vk.NullFence)
	if err != nil {
		return false, err
	}
	if status == ACQUIRE_STATUS_OUTDATED || status == ACQUIRE_STATUS_SUBOPTIMAL {
		// Rebuild on the next iteration and skip this one.
		return false, nil
	}
	vr.context.ImageIndex = imageIndex

	commandBuffer := vr.context.GraphicsCommandBuffers[vr.context.CurrentFrame]
	commandBuffer.Reset()
	if err := commandBuffer.Begin(false, false, false); err != nil {
		return false, err
	}

	// Flipped viewport so world Y points up.
	viewport := vk.Viewport{
		X:        0.0,
		Y:        float32(vr.context.FramebufferHeight),
		Width:    float32(vr.context.FramebufferWidth),
		Height:   -float32(vr.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Extent: vk.Extent2D{
			Width:  vr.context.FramebufferWidth,
			Height: vr.context.FramebufferHeight,
		},
	}
	vk.CmdSetViewport(commandBuffer.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(commandBuffer.Handle, 0, 1, []vk.Rect2D{scissor})

	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)
	vr.context.MainRenderpass.RenderpassBegin(commandBuffer, vr.context.Swapchain.Framebuffers[vr.context.ImageIndex].Handle)

	return true, nil
}

// CurrentCommandBuffer returns the command buffer being recorded this
// frame; valid only between BeginFrame and EndFrame.
func (vr *VulkanRenderer) CurrentCommandBuffer() *VulkanCommandBuffer {
	return vr.context.GraphicsCommandBuffers[vr.context.CurrentFrame]
}

// CurrentFrame returns the frame-in-flight slot being recorded.
func (vr *VulkanRenderer) CurrentFrame() uint32 {
	return vr.context.CurrentFrame
}

// EndFrame closes the render pass, submits the command buffer and
// presents, then advances the frame index.
func (vr *VulkanRenderer) EndFrame(deltaTime float64) error {
	commandBuffer := vr.context.GraphicsCommandBuffers[vr.context.CurrentFrame]

	vr.context.MainRenderpass.RenderpassEnd(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return err
	}

	// Make sure the previous frame is not still using this image.
	if vr.context.ImagesInFlight[vr.context.ImageIndex] != nil {
		vr.context.ImagesInFlight[vr.context.ImageIndex].FenceWait(vr.context, stdmath.MaxUint64)
	}
	vr.context.ImagesInFlight[vr.context.ImageIndex] = vr.context.InFlightFences[vr.context.CurrentFrame]

	if err := vr.context.InFlightFences[vr.context.CurrentFrame].FenceReset(vr.context); err != nil {
		return err
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame]},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame]},
		// Color attachment writes must wait for the image; earlier stages
		// may run.
		PWaitDstStageMask: []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}
	if res := vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, vr.context.InFlightFences[vr.context.CurrentFrame].Handle); res != vk.Success {
		return vkError("vkQueueSubmit", res)
	}
	vr.context.InFlightFences[vr.context.CurrentFrame].IsSignaled = false
	commandBuffer.UpdateSubmitted()

	if _, err := vr.context.Swapchain.SwapchainPresent(
		vr.context,
		vr.context.Device.PresentQueue,
		vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame],
		vr.context.ImageIndex); err != nil {
		return err
	}

	vr.context.CurrentFrame = (vr.context.CurrentFrame + 1) % uint32(vr.context.Swapchain.MaxFramesInFlight)
	vr.FrameNumber++
	return nil
}

func (vr *VulkanRenderer) applyGlobalUniform(frame uint32) {
	if !vr.globalUniformDirty[frame] {
		return
	}
	uniform := vr.globalUniform
	size := unsafe.Sizeof(uniform)
	src := unsafe.Slice((*byte)(unsafe.Pointer(&uniform)), size)
	vr.globalUniformBuffers[frame].Write(0, src)
	vr.globalUniformDirty[frame] = false
}

func (vr *VulkanRenderer) createCommandBuffers() error {
	framesInFlight := int(vr.context.Swapchain.MaxFramesInFlight)
	if len(vr.context.GraphicsCommandBuffers) == 0 {
		vr.context.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, framesInFlight)
	}
	for i := 0; i < framesInFlight; i++ {
		if vr.context.GraphicsCommandBuffers[i] != nil && vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
		cb, err := NewVulkanCommandBuffer(vr.context, vr.context.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		vr.context.GraphicsCommandBuffers[i] = cb
	}
	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *VulkanRenderer) regenerateFramebuffers() error {
	swapchain := vr.context.Swapchain
	for i := 0; i < int(swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{
			swapchain.Views[i],
			swapchain.DepthAttachment.View,
		}
		fb, err := FramebufferCreate(vr.context, vr.context.MainRenderpass, vr.context.FramebufferWidth, vr.context.FramebufferHeight, attachments)
		if err != nil {
			return err
		}
		swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *VulkanRenderer) recreateSwapchain() bool {
	if vr.context.RecreatingSwapchain {
		core.LogDebug("recreateSwapchain called when already recreating. Booting.")
		return false
	}

	width, height := vr.cachedFramebufferWidth, vr.cachedFramebufferHeight
	if width == 0 && height == 0 {
		width, height = vr.context.FramebufferWidth, vr.context.FramebufferHeight
	}
	if width == 0 || height == 0 {
		core.LogDebug("recreateSwapchain called with a zero dimension. Booting.")
		vr.context.Swapchain.State = SWAPCHAIN_STATE_MINIMIZED
		return false
	}

	vr.context.RecreatingSwapchain = true
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	for i := range vr.context.ImagesInFlight {
		vr.context.ImagesInFlight[i] = nil
	}

	for _, fb := range vr.context.Swapchain.Framebuffers {
		fb.Destroy(vr.context)
	}

	if err := vr.context.Swapchain.SwapchainRecreate(vr.context, width, height); err != nil {
		core.LogError("swapchain recreation failed: %s", err)
		vr.context.RecreatingSwapchain = false
		return false
	}
	if vr.context.Swapchain.State == SWAPCHAIN_STATE_MINIMIZED {
		vr.context.RecreatingSwapchain = false
		return false
	}

	vr.context.FramebufferWidth = vr.context.Swapchain.Extent.Width
	vr.context.FramebufferHeight = vr.context.Swapchain.Extent.Height
	vr.context.MainRenderpass.X = 0
	vr.context.MainRenderpass.Y = 0
	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)
	vr.cachedFramebufferWidth = 0
	vr.cachedFramebufferHeight = 0
	vr.context.FramebufferSizeLastGeneration = vr.context.FramebufferSizeGeneration

	vr.context.ImagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)
	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}
	if err := vr.createCommandBuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return false
	}

	vr.context.RecreatingSwapchain = false
	return true
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogDebug("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
