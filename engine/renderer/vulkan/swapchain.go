package vulkan

import (
	stdmath "math"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
)

// SwapchainState is the lifecycle of the presentation chain.
type SwapchainState int

const (
	SWAPCHAIN_STATE_UNINITIALIZED SwapchainState = iota
	SWAPCHAIN_STATE_READY
	SWAPCHAIN_STATE_OUTDATED
	SWAPCHAIN_STATE_MINIMIZED
	SWAPCHAIN_STATE_DESTROYED
)

// AcquireStatus reports the outcome of an image acquire or present.
type AcquireStatus int

const (
	ACQUIRE_STATUS_OK AcquireStatus = iota
	ACQUIRE_STATUS_OUTDATED
	ACQUIRE_STATUS_SUBOPTIMAL
)

type VulkanSwapchain struct {
	ImageFormat       vk.SurfaceFormat
	MaxFramesInFlight uint8
	Handle            vk.Swapchain
	ImageCount        uint32
	Images            []vk.Image
	Views             []vk.ImageView
	Extent            vk.Extent2D

	DepthAttachment *VulkanImage

	// Framebuffers used for on-screen rendering, one per swapchain image.
	Framebuffers []*VulkanFramebuffer

	State SwapchainState
}

func SwapchainCreate(context *VulkanContext, width, height uint32) (*VulkanSwapchain, error) {
	swapchain := &VulkanSwapchain{State: SWAPCHAIN_STATE_UNINITIALIZED}
	if err := swapchain.create(context, width, height); err != nil {
		return nil, err
	}
	return swapchain, nil
}

// SwapchainRecreate quiesces the device, destroys the dependent resources
// and rebuilds the chain at the new extent.
func (vs *VulkanSwapchain) SwapchainRecreate(context *VulkanContext, width, height uint32) error {
	vs.destroy(context)
	if width == 0 || height == 0 {
		vs.State = SWAPCHAIN_STATE_MINIMIZED
		return nil
	}
	return vs.create(context, width, height)
}

func (vs *VulkanSwapchain) SwapchainDestroy(context *VulkanContext) {
	vs.destroy(context)
	vs.State = SWAPCHAIN_STATE_DESTROYED
}

// OnResize marks the chain outdated; the next acquire rebuilds it.
func (vs *VulkanSwapchain) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		vs.State = SWAPCHAIN_STATE_MINIMIZED
		return
	}
	if vs.State == SWAPCHAIN_STATE_READY || vs.State == SWAPCHAIN_STATE_MINIMIZED {
		vs.State = SWAPCHAIN_STATE_OUTDATED
	}
}

// SwapchainAcquireNextImageIndex asks the chain for the next presentable
// image. An outdated or suboptimal status means the caller must rebuild
// and skip this frame's submission.
func (vs *VulkanSwapchain) SwapchainAcquireNextImageIndex(context *VulkanContext, timeoutNs uint64, imageAvailableSemaphore vk.Semaphore, fence vk.Fence) (uint32, AcquireStatus, error) {
	var imageIndex uint32
	result := vk.AcquireNextImage(context.Device.LogicalDevice, vs.Handle, timeoutNs, imageAvailableSemaphore, fence, &imageIndex)
	switch result {
	case vk.ErrorOutOfDate:
		vs.State = SWAPCHAIN_STATE_OUTDATED
		return 0, ACQUIRE_STATUS_OUTDATED, nil
	case vk.Suboptimal:
		vs.State = SWAPCHAIN_STATE_OUTDATED
		return imageIndex, ACQUIRE_STATUS_SUBOPTIMAL, nil
	case vk.Success:
		return imageIndex, ACQUIRE_STATUS_OK, nil
	default:
		return 0, ACQUIRE_STATUS_OUTDATED, vkError("vkAcquireNextImageKHR", result)
	}
}

// SwapchainPresent returns the image to the chain for presentation.
func (vs *VulkanSwapchain) SwapchainPresent(context *VulkanContext, presentQueue vk.Queue, renderCompleteSemaphore vk.Semaphore, presentImageIndex uint32) (AcquireStatus, error) {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderCompleteSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{vs.Handle},
		PImageIndices:      []uint32{presentImageIndex},
	}

	result := vk.QueuePresent(presentQueue, &presentInfo)
	switch result {
	case vk.ErrorOutOfDate, vk.Suboptimal:
		vs.State = SWAPCHAIN_STATE_OUTDATED
		return ACQUIRE_STATUS_OUTDATED, nil
	case vk.Success:
		return ACQUIRE_STATUS_OK, nil
	default:
		return ACQUIRE_STATUS_OUTDATED, vkError("vkQueuePresentKHR", result)
	}
}

func (vs *VulkanSwapchain) create(context *VulkanContext, width, height uint32) error {
	// Surface capabilities can change between creations; query every time.
	if err := DeviceQuerySwapchainSupport(context.Device.PhysicalDevice, context.Surface, &context.Device.SwapchainSupport); err != nil {
		return err
	}

	swapchainExtent := vk.Extent2D{Width: width, Height: height}
	vs.MaxFramesInFlight = 2

	found := false
	for i := 0; i < int(context.Device.SwapchainSupport.FormatCount); i++ {
		format := context.Device.SwapchainSupport.Formats[i]
		if format.Format == vk.FormatB8g8r8a8Unorm && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			vs.ImageFormat = format
			found = true
			break
		}
	}
	if !found {
		vs.ImageFormat = context.Device.SwapchainSupport.Formats[0]
	}

	presentMode := vk.PresentModeFifo
	for i := 0; i < int(context.Device.SwapchainSupport.PresentModeCount); i++ {
		if context.Device.SwapchainSupport.PresentModes[i] == vk.PresentModeMailbox {
			presentMode = vk.PresentModeMailbox
			break
		}
	}

	capabilities := context.Device.SwapchainSupport.Capabilities
	if capabilities.CurrentExtent.Width != stdmath.MaxUint32 {
		swapchainExtent = capabilities.CurrentExtent
	}
	swapchainExtent.Width = math.Clamp(swapchainExtent.Width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width)
	swapchainExtent.Height = math.Clamp(swapchainExtent.Height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height)

	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && imageCount > capabilities.MaxImageCount {
		imageCount = capabilities.MaxImageCount
	}

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          context.Surface,
		MinImageCount:    imageCount,
		ImageFormat:      vs.ImageFormat.Format,
		ImageColorSpace:  vs.ImageFormat.ColorSpace,
		ImageExtent:      swapchainExtent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      presentMode,
		Clipped:          vk.True,
	}

	if context.Device.GraphicsQueueIndex != context.Device.PresentQueueIndex {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeConcurrent
		swapchainCreateInfo.QueueFamilyIndexCount = 2
		swapchainCreateInfo.PQueueFamilyIndices = []uint32{
			uint32(context.Device.GraphicsQueueIndex),
			uint32(context.Device.PresentQueueIndex),
		}
	} else {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var handle vk.Swapchain
	if res := vk.CreateSwapchain(context.Device.LogicalDevice, &swapchainCreateInfo, context.Allocator, &handle); res != vk.Success {
		return vkError("vkCreateSwapchainKHR", res)
	}
	vs.Handle = handle
	vs.Extent = swapchainExtent

	context.CurrentFrame = 0

	vs.ImageCount = 0
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, vs.Handle, &vs.ImageCount, nil); res != vk.Success {
		return vkError("vkGetSwapchainImagesKHR", res)
	}
	vs.Images = make([]vk.Image, vs.ImageCount)
	vs.Views = make([]vk.ImageView, vs.ImageCount)
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, vs.Handle, &vs.ImageCount, vs.Images); res != vk.Success {
		return vkError("vkGetSwapchainImagesKHR", res)
	}

	for i := 0; i < int(vs.ImageCount); i++ {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    vs.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   vs.ImageFormat.Format,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		if res := vk.CreateImageView(context.Device.LogicalDevice, &viewInfo, context.Allocator, &vs.Views[i]); res != vk.Success {
			return vkError("vkCreateImageView", res)
		}
	}

	if !DeviceDetectDepthFormat(context.Device) {
		context.Device.DepthFormat = vk.FormatUndefined
		core.LogError("Failed to find a supported depth format!")
		return core.ErrPhysicalDeviceNotValid
	}

	depthAttachment, err := NewDepthAttachment(context, swapchainExtent.Width, swapchainExtent.Height)
	if err != nil {
		return err
	}
	vs.DepthAttachment = depthAttachment

	vs.State = SWAPCHAIN_STATE_READY
	core.LogInfo("Swapchain created successfully (%dx%d, %d images).", swapchainExtent.Width, swapchainExtent.Height, vs.ImageCount)
	return nil
}

func (vs *VulkanSwapchain) destroy(context *VulkanContext) {
	vk.DeviceWaitIdle(context.Device.LogicalDevice)

	if vs.DepthAttachment != nil {
		// Swapchain teardown is synchronous; bypass the deletion queue.
		vk.DestroyImageView(context.Device.LogicalDevice, vs.DepthAttachment.View, context.Allocator)
		context.Allocations.DeleteImage(vs.DepthAttachment.Allocation)
		vs.DepthAttachment = nil
	}

	// Only destroy the views; the images are owned by the swapchain.
	for i := 0; i < int(vs.ImageCount); i++ {
		vk.DestroyImageView(context.Device.LogicalDevice, vs.Views[i], context.Allocator)
	}
	vs.Views = nil
	vs.Images = nil
	vs.ImageCount = 0

	if vs.Handle != nil {
		vk.DestroySwapchain(context.Device.LogicalDevice, vs.Handle, context.Allocator)
		vs.Handle = nil
	}
}
