package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

// VulkanBuffer is the typed proxy over a raw buffer allocation. Destruction
// goes through the deletion queue so the GPU has drained any reference
// before the handle dies.
type VulkanBuffer struct {
	Allocation *BufferAllocation
}

func (vb *VulkanBuffer) Handle() vk.Buffer {
	return vb.Allocation.Handle
}

func (vb *VulkanBuffer) SizeBytes() vk.DeviceSize {
	return vb.Allocation.SizeBytes
}

// MappedPtr is non-nil only for host-visible buffers.
func (vb *VulkanBuffer) MappedPtr() unsafe.Pointer {
	return vb.Allocation.MappedPtr
}

// Write copies data into a mapped buffer at offset.
func (vb *VulkanBuffer) Write(offset vk.DeviceSize, data []byte) {
	dst := unsafe.Slice((*byte)(vb.Allocation.MappedPtr), vb.Allocation.SizeBytes)
	copy(dst[offset:], data)
}

// Destroy enqueues the buffer for deferred destruction.
func (vb *VulkanBuffer) Destroy(context *VulkanContext) {
	allocation := vb.Allocation
	context.DeletionQueue.PushDeletor(func() {
		context.Allocations.DeleteBuffer(allocation)
	})
}

// NewStagingBuffer creates a host-visible, persistently-mapped transfer
// source pre-filled with data.
func NewStagingBuffer(context *VulkanContext, data []byte) (*VulkanBuffer, error) {
	allocation, err := context.Allocations.CreateBuffer(
		vk.DeviceSize(len(data)),
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		MemoryHintHostVisibleStaging)
	if err != nil {
		return nil, err
	}
	buffer := &VulkanBuffer{Allocation: allocation}
	buffer.Write(0, data)
	return buffer, nil
}

// NewVertexBuffer creates a device-local vertex buffer initialized through
// a staging copy.
func NewVertexBuffer(context *VulkanContext, data []byte) (*VulkanBuffer, error) {
	return newDeviceLocalBuffer(context, data, vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
}

// NewIndexBuffer creates a device-local index buffer initialized through a
// staging copy.
func NewIndexBuffer(context *VulkanContext, data []byte) (*VulkanBuffer, error) {
	return newDeviceLocalBuffer(context, data, vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
}

// NewUniformBuffer creates a one-shot uniform buffer whose contents are
// staged once at creation.
func NewUniformBuffer(context *VulkanContext, data []byte) (*VulkanBuffer, error) {
	return newDeviceLocalBuffer(context, data, vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit))
}

// NewMappedUniformBuffer creates a persistently-mapped uniform buffer. The
// host pointer stays valid until destruction; callers must respect
// frames-in-flight before rewriting regions the GPU may still read.
func NewMappedUniformBuffer(context *VulkanContext, size vk.DeviceSize) (*VulkanBuffer, error) {
	allocation, err := context.Allocations.CreateBuffer(
		size,
		vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
		MemoryHintUniformUpload)
	if err != nil {
		return nil, err
	}
	return &VulkanBuffer{Allocation: allocation}, nil
}

func newDeviceLocalBuffer(context *VulkanContext, data []byte, usage vk.BufferUsageFlags) (*VulkanBuffer, error) {
	allocation, err := context.Allocations.CreateBuffer(
		vk.DeviceSize(len(data)),
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		MemoryHintDeviceLocal)
	if err != nil {
		return nil, err
	}
	buffer := &VulkanBuffer{Allocation: allocation}

	staging, err := NewStagingBuffer(context, data)
	if err != nil {
		context.Allocations.DeleteBuffer(allocation)
		return nil, err
	}
	// Staging buffers are short-lived; release immediately after the copy.
	defer context.Allocations.DeleteBuffer(staging.Allocation)

	err = context.ImmediateSubmit(func(cmd *VulkanCommandBuffer) error {
		region := vk.BufferCopy{Size: vk.DeviceSize(len(data))}
		vk.CmdCopyBuffer(cmd.Handle, staging.Handle(), buffer.Handle(), 1, []vk.BufferCopy{region})
		return nil
	})
	if err != nil {
		context.Allocations.DeleteBuffer(allocation)
		return nil, err
	}
	return buffer, nil
}
