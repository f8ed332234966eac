package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
)

// VulkanShaderModule wraps a SPIR-V module plus the stage it feeds.
type VulkanShaderModule struct {
	Handle vk.ShaderModule
	Stage  vk.ShaderStageFlagBits
}

// NewShaderModule builds a module from SPIR-V bytes. The byte length must
// be a multiple of the SPIR-V word size; an empty slice yields a module
// with no code, which creation will reject downstream.
func NewShaderModule(context *VulkanContext, code []byte, stage vk.ShaderStageFlagBits) (*VulkanShaderModule, error) {
	if len(code)%4 != 0 {
		core.LogError("shader bytecode length %d is not a multiple of 4", len(code))
		return nil, core.ErrIncorrectFormat
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    sliceUint32(code),
	}

	var handle vk.ShaderModule
	if res := vk.CreateShaderModule(context.Device.LogicalDevice, &createInfo, context.Allocator, &handle); res != vk.Success {
		return nil, vkError("vkCreateShaderModule", res)
	}
	return &VulkanShaderModule{Handle: handle, Stage: stage}, nil
}

func (sm *VulkanShaderModule) Destroy(context *VulkanContext) {
	if sm.Handle != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, sm.Handle, context.Allocator)
		sm.Handle = nil
	}
}

// StageCreateInfo returns the pipeline stage record for this module.
func (sm *VulkanShaderModule) StageCreateInfo() vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  sm.Stage,
		Module: sm.Handle,
		PName:  VulkanSafeString("main"),
	}
}

func sliceUint32(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
	}
	return words
}
