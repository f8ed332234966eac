package vulkan

import (
	"math/bits"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
)

// VulkanImage owns a raw image allocation plus its default view and tracks
// a conservative last-known layout, updated whenever a transition is
// recorded.
type VulkanImage struct {
	Allocation *ImageAllocation
	View       vk.ImageView

	Width       uint32
	Height      uint32
	Depth       uint32
	MipLevels   uint32
	ArrayLayers uint32
	Aspect      vk.ImageAspectFlags

	CurrentLayout vk.ImageLayout
}

// FindMipLevels computes the full chain length by integer log2 of the
// largest extent. Floating-point log is avoided on purpose; it is
// imprecise exactly at power-of-two sizes.
func FindMipLevels(extent math.Extent3D) uint32 {
	largest := extent.Width
	if extent.Height > largest {
		largest = extent.Height
	}
	if extent.Depth > largest {
		largest = extent.Depth
	}
	if largest == 0 {
		return 1
	}
	return uint32(bits.Len32(largest))
}

// FormatSizeBytes returns the per-texel byte size of the formats the
// resource layer uploads to.
func FormatSizeBytes(format vk.Format) uint32 {
	switch format {
	case vk.FormatR8Unorm, vk.FormatR8Uint:
		return 1
	case vk.FormatR8g8Unorm:
		return 2
	case vk.FormatR8g8b8a8Unorm, vk.FormatR8g8b8a8Srgb,
		vk.FormatB8g8r8a8Unorm, vk.FormatB8g8r8a8Srgb:
		return 4
	case vk.FormatR16g16b16a16Sfloat:
		return 8
	case vk.FormatR32g32b32a32Sfloat:
		return 16
	default:
		core.LogWarn("unknown texel size for format %d, assuming 4 bytes", format)
		return 4
	}
}

// FindFullSizeBytes sums the byte sizes of the mip chain, halving each
// extent per level. Volume images and array images are mutually
// exclusive.
func FindFullSizeBytes(format vk.Format, extent math.Extent3D, mipLevels, arrayLayers uint32) (uint32, error) {
	if extent.Depth > 1 && arrayLayers > 1 {
		return 0, core.ErrIncorrectFormat
	}
	bpp := FormatSizeBytes(format)
	w, h, d := extent.Width, extent.Height, extent.Depth
	if d == 0 {
		d = 1
	}
	var size uint32
	for i := uint32(0); i < mipLevels && (w > 1 || h > 1 || d > 1); i++ {
		size += w * h * d * bpp * arrayLayers
		w = halfExtent(w)
		h = halfExtent(h)
		d = halfExtent(d)
	}
	return size, nil
}

func halfExtent(v uint32) uint32 {
	if v > 1 {
		return v / 2
	}
	return 1
}

// NewColorAttachment creates a transient color render target in UNDEFINED
// layout.
func NewColorAttachment(context *VulkanContext, format vk.Format, width, height uint32, samples vk.SampleCountFlagBits) (*VulkanImage, error) {
	usage := vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransientAttachmentBit)
	return newImage(context, format, math.Extent3D{Width: width, Height: height, Depth: 1}, 1, 1, usage, samples,
		vk.ImageAspectFlags(vk.ImageAspectColorBit))
}

// NewDepthAttachment creates a depth/stencil render target.
func NewDepthAttachment(context *VulkanContext, width, height uint32) (*VulkanImage, error) {
	format := context.Device.DepthFormat
	aspect := vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	if format == vk.FormatD32SfloatS8Uint || format == vk.FormatD24UnormS8Uint {
		aspect |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	}
	usage := vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit)
	return newImage(context, format, math.Extent3D{Width: width, Height: height, Depth: 1}, 1, 1, usage, vk.SampleCount1Bit, aspect)
}

// NewTexture creates a sampled image. With mipmapped set, the full chain
// is allocated and Upload generates the missing levels by blitting.
func NewTexture(context *VulkanContext, format vk.Format, extent math.Extent3D, arrayLayers uint32, mipmapped bool) (*VulkanImage, error) {
	mipLevels := uint32(1)
	if mipmapped {
		mipLevels = FindMipLevels(extent)
	}
	usage := vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit)
	if mipLevels > 1 {
		usage |= vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)
	}
	return newImage(context, format, extent, mipLevels, arrayLayers, usage, vk.SampleCount1Bit,
		vk.ImageAspectFlags(vk.ImageAspectColorBit))
}

func newImage(context *VulkanContext, format vk.Format, extent math.Extent3D, mipLevels, arrayLayers uint32, usage vk.ImageUsageFlags, samples vk.SampleCountFlagBits, aspect vk.ImageAspectFlags) (*VulkanImage, error) {
	if extent.Depth == 0 {
		extent.Depth = 1
	}
	if extent.Depth > 1 && arrayLayers > 1 {
		return nil, core.ErrIncorrectFormat
	}

	allocation, err := context.Allocations.CreateImage(
		format,
		vk.Extent3D{Width: extent.Width, Height: extent.Height, Depth: extent.Depth},
		mipLevels, arrayLayers, usage, samples, MemoryHintDeviceLocal)
	if err != nil {
		return nil, err
	}

	image := &VulkanImage{
		Allocation:    allocation,
		Width:         extent.Width,
		Height:        extent.Height,
		Depth:         extent.Depth,
		MipLevels:     mipLevels,
		ArrayLayers:   arrayLayers,
		Aspect:        aspect,
		CurrentLayout: vk.ImageLayoutUndefined,
	}

	viewType := vk.ImageViewType2d
	if extent.Depth > 1 {
		viewType = vk.ImageViewType3d
	} else if arrayLayers > 1 {
		viewType = vk.ImageViewType2dArray
	}
	viewCreateInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    allocation.Handle,
		ViewType: viewType,
		Format:   format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: mipLevels,
			LayerCount: arrayLayers,
		},
	}
	var view vk.ImageView
	if res := vk.CreateImageView(context.Device.LogicalDevice, &viewCreateInfo, context.Allocator, &view); res != vk.Success {
		context.Allocations.DeleteImage(allocation)
		return nil, vkError("vkCreateImageView", res)
	}
	image.View = view
	return image, nil
}

// Destroy enqueues the view and allocation for deferred destruction.
func (vi *VulkanImage) Destroy(context *VulkanContext) {
	view := vi.View
	allocation := vi.Allocation
	context.DeletionQueue.PushDeletor(func() {
		vk.DestroyImageView(context.Device.LogicalDevice, view, context.Allocator)
		context.Allocations.DeleteImage(allocation)
	})
}

// Upload copies pixels into the image and leaves every level in
// SHADER_READ_ONLY_OPTIMAL. The source must hold either level 0 alone or
// the whole mip chain; anything else is rejected. When only level 0 is
// supplied and the image carries a chain, the remaining levels are
// generated by blitting.
func (vi *VulkanImage) Upload(context *VulkanContext, data []byte) error {
	format := vi.Allocation.Format
	bpp := FormatSizeBytes(format)
	level0Size := vi.Width * vi.Height * vi.Depth * bpp * vi.ArrayLayers

	fullSize, err := FindFullSizeBytes(format, math.Extent3D{Width: vi.Width, Height: vi.Height, Depth: vi.Depth}, vi.MipLevels, vi.ArrayLayers)
	if err != nil {
		return err
	}

	allLevels := false
	switch uint32(len(data)) {
	case level0Size:
	case fullSize:
		allLevels = true
	default:
		core.LogError("upload size %d matches neither level 0 (%d) nor the full chain (%d)", len(data), level0Size, fullSize)
		return core.ErrIncorrectFormat
	}

	staging, err := NewStagingBuffer(context, data)
	if err != nil {
		return err
	}
	defer context.Allocations.DeleteBuffer(staging.Allocation)

	return context.ImmediateSubmit(func(cmd *VulkanCommandBuffer) error {
		vi.recordTransition(cmd, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal, 0, vi.MipLevels)

		if allLevels {
			regions := make([]vk.BufferImageCopy, 0, vi.MipLevels)
			var offset vk.DeviceSize
			w, h, d := vi.Width, vi.Height, vi.Depth
			for level := uint32(0); level < vi.MipLevels; level++ {
				regions = append(regions, vk.BufferImageCopy{
					BufferOffset: offset,
					ImageSubresource: vk.ImageSubresourceLayers{
						AspectMask: vi.Aspect,
						MipLevel:   level,
						LayerCount: vi.ArrayLayers,
					},
					ImageExtent: vk.Extent3D{Width: w, Height: h, Depth: d},
				})
				offset += vk.DeviceSize(w * h * d * bpp * vi.ArrayLayers)
				w, h, d = halfExtent(w), halfExtent(h), halfExtent(d)
			}
			vk.CmdCopyBufferToImage(cmd.Handle, staging.Handle(), vi.Allocation.Handle,
				vk.ImageLayoutTransferDstOptimal, uint32(len(regions)), regions)
			vi.recordTransition(cmd, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal, 0, vi.MipLevels)
			return nil
		}

		region := vk.BufferImageCopy{
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask: vi.Aspect,
				LayerCount: vi.ArrayLayers,
			},
			ImageExtent: vk.Extent3D{Width: vi.Width, Height: vi.Height, Depth: vi.Depth},
		}
		vk.CmdCopyBufferToImage(cmd.Handle, staging.Handle(), vi.Allocation.Handle,
			vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})

		if vi.MipLevels > 1 {
			vi.recordMipChain(cmd)
			return nil
		}
		vi.recordTransition(cmd, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal, 0, 1)
		return nil
	})
}

// recordMipChain blits each level from the one above it with linear
// filtering, then moves everything into SHADER_READ_ONLY_OPTIMAL.
func (vi *VulkanImage) recordMipChain(cmd *VulkanCommandBuffer) {
	srcW, srcH, srcD := int32(vi.Width), int32(vi.Height), int32(vi.Depth)
	for level := uint32(1); level < vi.MipLevels; level++ {
		// The previous level becomes a blit source.
		vi.recordTransition(cmd, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutTransferSrcOptimal, level-1, 1)

		dstW, dstH, dstD := halfExtent32(srcW), halfExtent32(srcH), halfExtent32(srcD)
		blit := vk.ImageBlit{
			SrcSubresource: vk.ImageSubresourceLayers{
				AspectMask: vi.Aspect,
				MipLevel:   level - 1,
				LayerCount: vi.ArrayLayers,
			},
			DstSubresource: vk.ImageSubresourceLayers{
				AspectMask: vi.Aspect,
				MipLevel:   level,
				LayerCount: vi.ArrayLayers,
			},
		}
		blit.SrcOffsets[1] = vk.Offset3D{X: srcW, Y: srcH, Z: srcD}
		blit.DstOffsets[1] = vk.Offset3D{X: dstW, Y: dstH, Z: dstD}

		vk.CmdBlitImage(cmd.Handle,
			vi.Allocation.Handle, vk.ImageLayoutTransferSrcOptimal,
			vi.Allocation.Handle, vk.ImageLayoutTransferDstOptimal,
			1, []vk.ImageBlit{blit}, vk.FilterLinear)

		vi.recordTransition(cmd, vk.ImageLayoutTransferSrcOptimal, vk.ImageLayoutShaderReadOnlyOptimal, level-1, 1)
		srcW, srcH, srcD = dstW, dstH, dstD
	}
	// The last level was only ever a destination.
	vi.recordTransition(cmd, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal, vi.MipLevels-1, 1)
}

func halfExtent32(v int32) int32 {
	if v > 1 {
		return v / 2
	}
	return 1
}

// recordTransition issues an all-commands to all-commands barrier with
// memory-write source and memory-read/write destination. Deliberately
// conservative; correctness over throughput.
func (vi *VulkanImage) recordTransition(cmd *VulkanCommandBuffer, oldLayout, newLayout vk.ImageLayout, baseLevel, levelCount uint32) {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               vi.Allocation.Handle,
		SrcAccessMask:       vk.AccessFlags(vk.AccessMemoryWriteBit),
		DstAccessMask:       vk.AccessFlags(vk.AccessMemoryWriteBit) | vk.AccessFlags(vk.AccessMemoryReadBit),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:   vi.Aspect,
			BaseMipLevel: baseLevel,
			LevelCount:   levelCount,
			LayerCount:   vi.ArrayLayers,
		},
	}
	vk.CmdPipelineBarrier(cmd.Handle,
		vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
		vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	vi.CurrentLayout = newLayout
}
