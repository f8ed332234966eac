package vulkan

import (
	vk "github.com/goki/vulkan"
)

// ImmediateSubmit records fn into a one-shot command buffer, submits it on
// the graphics queue without semaphores and blocks on a dedicated fence.
// Used by upload paths, staging copies and mipmap generation.
func (vc *VulkanContext) ImmediateSubmit(fn func(cmd *VulkanCommandBuffer) error) error {
	cmd, err := AllocateAndBeginSingleUse(vc, vc.Device.GraphicsCommandPool)
	if err != nil {
		return err
	}
	defer cmd.Free(vc, vc.Device.GraphicsCommandPool)

	if err := fn(cmd); err != nil {
		return err
	}
	if err := cmd.End(); err != nil {
		return err
	}

	if err := vc.ImmediateFence.FenceReset(vc); err != nil {
		return err
	}
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd.Handle},
	}
	if res := vk.QueueSubmit(vc.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, vc.ImmediateFence.Handle); res != vk.Success {
		return vkError("vkQueueSubmit", res)
	}
	vc.ImmediateFence.IsSignaled = false
	if !vc.ImmediateFence.FenceWait(vc, ^uint64(0)) {
		return vkError("vkWaitForFences", vk.Timeout)
	}
	return nil
}
