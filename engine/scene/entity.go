package scene

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/vulkan"
)

// MeshData groups the primitives a mesh renders with.
type MeshData struct {
	Name       string
	Primitives []core.Identifier
}

// PrimitiveData references the GPU buffers a primitive draws from plus
// the index range inside them.
type PrimitiveData struct {
	VertexBuffer *vulkan.VulkanBuffer
	IndexBuffer  *vulkan.VulkanBuffer

	FirstIndex uint32
	IndexCount uint32

	Material core.Identifier
}

// MaterialData is the GPU-side material state: pipeline, its layout and
// the descriptor set binding its textures and parameters.
type MaterialData struct {
	Name string

	Pipeline      *vulkan.VulkanPipeline
	SetLayout     vk.DescriptorSetLayout
	DescriptorSet vk.DescriptorSet
}
