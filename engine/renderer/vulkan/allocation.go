package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

// MemoryHint selects the memory properties an allocation is placed in.
type MemoryHint int

const (
	// MemoryHintDeviceLocal places the allocation in fast GPU memory; the
	// host cannot map it.
	MemoryHintDeviceLocal MemoryHint = iota
	// MemoryHintHostVisibleMapped keeps a persistent host pointer for the
	// lifetime of the allocation.
	MemoryHintHostVisibleMapped
	// MemoryHintHostVisibleStaging is host visible and coherent, intended
	// for short-lived transfer sources.
	MemoryHintHostVisibleStaging
	// MemoryHintUniformUpload is host visible and coherent, re-written
	// every frame.
	MemoryHintUniformUpload
)

func (h MemoryHint) propertyFlags() vk.MemoryPropertyFlags {
	switch h {
	case MemoryHintDeviceLocal:
		return vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	default:
		return vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	}
}

func (h MemoryHint) mapped() bool {
	return h != MemoryHintDeviceLocal
}

// BufferAllocation is a raw buffer handle plus its backing memory as
// produced by the allocation manager.
type BufferAllocation struct {
	Handle    vk.Buffer
	Memory    vk.DeviceMemory
	SizeBytes vk.DeviceSize
	Usage     vk.BufferUsageFlags
	Hint      MemoryHint
	// Host pointer, non-nil only for mapped hints.
	MappedPtr unsafe.Pointer
}

// ImageAllocation is a raw image handle plus backing memory.
type ImageAllocation struct {
	Handle      vk.Image
	Memory      vk.DeviceMemory
	Format      vk.Format
	Extent      vk.Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Usage       vk.ImageUsageFlags
	Samples     vk.SampleCountFlagBits
}

// AllocationManager is the only producer of raw buffer and image handles.
// It tracks every live allocation so leaks are reported at Destroy, and
// tears down anything still alive in reverse creation order. Single-owner,
// not safe for concurrent use.
type AllocationManager struct {
	context *VulkanContext

	// Live allocations in creation order so Destroy can walk it backwards.
	order []any
}

func NewAllocationManager(context *VulkanContext) *AllocationManager {
	return &AllocationManager{context: context}
}

func (am *AllocationManager) CreateBuffer(size vk.DeviceSize, usage vk.BufferUsageFlags, hint MemoryHint) (*BufferAllocation, error) {
	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(am.context.Device.LogicalDevice, &bufferInfo, am.context.Allocator, &handle); res != vk.Success {
		return nil, vkError("vkCreateBuffer", res)
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(am.context.Device.LogicalDevice, handle, &requirements)
	requirements.Deref()

	memory, err := am.allocate(requirements, hint.propertyFlags())
	if err != nil {
		vk.DestroyBuffer(am.context.Device.LogicalDevice, handle, am.context.Allocator)
		return nil, err
	}

	if res := vk.BindBufferMemory(am.context.Device.LogicalDevice, handle, memory, 0); res != vk.Success {
		vk.FreeMemory(am.context.Device.LogicalDevice, memory, am.context.Allocator)
		vk.DestroyBuffer(am.context.Device.LogicalDevice, handle, am.context.Allocator)
		return nil, vkError("vkBindBufferMemory", res)
	}

	allocation := &BufferAllocation{
		Handle:    handle,
		Memory:    memory,
		SizeBytes: size,
		Usage:     usage,
		Hint:      hint,
	}

	if hint.mapped() {
		var ptr unsafe.Pointer
		if res := vk.MapMemory(am.context.Device.LogicalDevice, memory, 0, size, 0, &ptr); res != vk.Success {
			vk.FreeMemory(am.context.Device.LogicalDevice, memory, am.context.Allocator)
			vk.DestroyBuffer(am.context.Device.LogicalDevice, handle, am.context.Allocator)
			return nil, vkError("vkMapMemory", res)
		}
		allocation.MappedPtr = ptr
	}

	am.order = append(am.order, allocation)
	return allocation, nil
}

func (am *AllocationManager) CreateImage(format vk.Format, extent vk.Extent3D, mipLevels, arrayLayers uint32, usage vk.ImageUsageFlags, samples vk.SampleCountFlagBits, hint MemoryHint) (*ImageAllocation, error) {
	imageType := vk.ImageType2d
	if extent.Depth > 1 {
		imageType = vk.ImageType3d
	}

	imageInfo := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     imageType,
		Format:        format,
		Extent:        extent,
		MipLevels:     mipLevels,
		ArrayLayers:   arrayLayers,
		Samples:       samples,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var handle vk.Image
	if res := vk.CreateImage(am.context.Device.LogicalDevice, &imageInfo, am.context.Allocator, &handle); res != vk.Success {
		return nil, vkError("vkCreateImage", res)
	}

	var requirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(am.context.Device.LogicalDevice, handle, &requirements)
	requirements.Deref()

	memory, err := am.allocate(requirements, hint.propertyFlags())
	if err != nil {
		vk.DestroyImage(am.context.Device.LogicalDevice, handle, am.context.Allocator)
		return nil, err
	}

	if res := vk.BindImageMemory(am.context.Device.LogicalDevice, handle, memory, 0); res != vk.Success {
		vk.FreeMemory(am.context.Device.LogicalDevice, memory, am.context.Allocator)
		vk.DestroyImage(am.context.Device.LogicalDevice, handle, am.context.Allocator)
		return nil, vkError("vkBindImageMemory", res)
	}

	allocation := &ImageAllocation{
		Handle:      handle,
		Memory:      memory,
		Format:      format,
		Extent:      extent,
		MipLevels:   mipLevels,
		ArrayLayers: arrayLayers,
		Usage:       usage,
		Samples:     samples,
	}
	am.order = append(am.order, allocation)
	return allocation, nil
}

// DeleteBuffer releases the allocation. Safe to call more than once; the
// caller must guarantee no pending GPU reference (use the deletion queue).
func (am *AllocationManager) DeleteBuffer(allocation *BufferAllocation) {
	if allocation == nil || allocation.Handle == nil {
		return
	}
	if !am.untrack(allocation) {
		core.LogWarn("DeleteBuffer called on an untracked allocation")
		return
	}
	am.destroyBuffer(allocation)
}

// DeleteImage releases the allocation. Safe to call more than once.
func (am *AllocationManager) DeleteImage(allocation *ImageAllocation) {
	if allocation == nil || allocation.Handle == nil {
		return
	}
	if !am.untrack(allocation) {
		core.LogWarn("DeleteImage called on an untracked allocation")
		return
	}
	am.destroyImage(allocation)
}

// LiveCount reports how many allocations are still tracked.
func (am *AllocationManager) LiveCount() int {
	return len(am.order)
}

// Destroy tears down every tracked allocation in reverse creation order.
// Anything still alive at this point is a leak and gets logged.
func (am *AllocationManager) Destroy() {
	if len(am.order) > 0 {
		core.LogWarn("allocation manager shutting down with %d live allocations", len(am.order))
	}
	for i := len(am.order) - 1; i >= 0; i-- {
		switch a := am.order[i].(type) {
		case *BufferAllocation:
			am.destroyBuffer(a)
		case *ImageAllocation:
			am.destroyImage(a)
		}
	}
	am.order = nil
}

func (am *AllocationManager) allocate(requirements vk.MemoryRequirements, properties vk.MemoryPropertyFlags) (vk.DeviceMemory, error) {
	memoryType := am.context.FindMemoryIndex(requirements.MemoryTypeBits, uint32(properties))
	if memoryType == -1 {
		return nil, core.ErrNoSuitableMemoryType
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryType),
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(am.context.Device.LogicalDevice, &allocateInfo, am.context.Allocator, &memory); res != vk.Success {
		core.LogError("vkAllocateMemory failed: %s", VulkanResultString(res))
		return nil, core.ErrMemoryAllocation
	}
	return memory, nil
}

func (am *AllocationManager) untrack(allocation any) bool {
	for i, a := range am.order {
		if a == allocation {
			am.order = append(am.order[:i], am.order[i+1:]...)
			return true
		}
	}
	return false
}

func (am *AllocationManager) destroyBuffer(allocation *BufferAllocation) {
	if allocation.MappedPtr != nil {
		vk.UnmapMemory(am.context.Device.LogicalDevice, allocation.Memory)
		allocation.MappedPtr = nil
	}
	vk.DestroyBuffer(am.context.Device.LogicalDevice, allocation.Handle, am.context.Allocator)
	vk.FreeMemory(am.context.Device.LogicalDevice, allocation.Memory, am.context.Allocator)
	allocation.Handle = nil
	allocation.Memory = nil
}

func (am *AllocationManager) destroyImage(allocation *ImageAllocation) {
	vk.DestroyImage(am.context.Device.LogicalDevice, allocation.Handle, am.context.Allocator)
	vk.FreeMemory(am.context.Device.LogicalDevice, allocation.Memory, am.context.Allocator)
	allocation.Handle = nil
	allocation.Memory = nil
}
