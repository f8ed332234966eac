package gui

import (
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/vulkan"
)

// vulkanRenderer records imgui draw data through the shared Vulkan context.
// Vertex and index storage is host-visible and rewritten every frame, one
// pair of buffers per frame in flight so in-flight frames are never
// overwritten.
type vulkanRenderer struct {
	context *vulkan.VulkanContext

	fontImage   *vulkan.VulkanImage
	fontSampler vk.Sampler

	setLayout vk.DescriptorSetLayout
	fontSet   vk.DescriptorSet

	pipeline *vulkan.VulkanPipeline

	vertexBuffers []*vulkan.BufferAllocation
	indexBuffers  []*vulkan.BufferAllocation
}

// Push constant block: scale.xy, translate.xy.
type guiTransform struct {
	Scale     [2]float32
	Translate [2]float32
}

func newVulkanRenderer(context *vulkan.VulkanContext, io imgui.IO, vertexShader, fragmentShader []byte) (*vulkanRenderer, error) {
	r := &vulkanRenderer{
		context:       context,
		vertexBuffers: make([]*vulkan.BufferAllocation, context.Swapchain.MaxFramesInFlight),
		indexBuffers:  make([]*vulkan.BufferAllocation, context.Swapchain.MaxFramesInFlight),
	}

	if err := r.createFontAtlas(io); err != nil {
		return nil, err
	}
	if err := r.createDescriptors(); err != nil {
		r.destroy()
		return nil, err
	}
	if err := r.createPipeline(vertexShader, fragmentShader); err != nil {
		r.destroy()
		return nil, err
	}
	return r, nil
}

func (r *vulkanRenderer) createFontAtlas(io imgui.IO) error {
	atlas := io.Fonts().TextureDataRGBA32()
	pixels := unsafe.Slice((*byte)(atlas.Pixels), atlas.Width*atlas.Height*4)

	image, err := vulkan.NewTexture(r.context, vk.FormatR8g8b8a8Unorm, math.Extent3D{
		Width:  uint32(atlas.Width),
		Height: uint32(atlas.Height),
		Depth:  1,
	}, 1, false)
	if err != nil {
		return err
	}
	if err := image.Upload(r.context, pixels); err != nil {
		image.Destroy(r.context)
		return err
	}
	r.fontImage = image

	samplerInfo := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MagFilter:    vk.FilterLinear,
		MinFilter:    vk.FilterLinear,
		MipmapMode:   vk.SamplerMipmapModeLinear,
		AddressModeU: vk.SamplerAddressModeRepeat,
		AddressModeV: vk.SamplerAddressModeRepeat,
		AddressModeW: vk.SamplerAddressModeRepeat,
		MaxLod:       1.0,
	}
	var sampler vk.Sampler
	if result := vk.CreateSampler(r.context.Device.LogicalDevice, &samplerInfo, r.context.Allocator, &sampler); result != vk.Success {
		return &core.VulkanError{Op: "vkCreateSampler", Result: int32(result)}
	}
	r.fontSampler = sampler

	io.Fonts().SetTextureID(imgui.TextureID(1))
	return nil
}

func (r *vulkanRenderer) createDescriptors() error {
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings: []vk.DescriptorSetLayoutBinding{{
			Binding:         0,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		}},
	}
	var layout vk.DescriptorSetLayout
	if result := vk.CreateDescriptorSetLayout(r.context.Device.LogicalDevice, &layoutInfo, r.context.Allocator, &layout); result != vk.Success {
		return &core.VulkanError{Op: "vkCreateDescriptorSetLayout", Result: int32(result)}
	}
	r.setLayout = layout

	set, err := r.context.Descriptors.Allocate(layout)
	if err != nil {
		return err
	}
	r.fontSet = set

	writer := vulkan.DescriptorSetWriter{}
	writer.WriteImage(0, vk.DescriptorTypeCombinedImageSampler, r.fontImage.View, r.fontSampler, vk.ImageLayoutShaderReadOnlyOptimal)
	writer.UpdateSet(r.context, set)
	return nil
}

func (r *vulkanRenderer) createPipeline(vertexShader, fragmentShader []byte) error {
	vert, err := vulkan.NewShaderModule(r.context, vertexShader, vk.ShaderStageVertexBit)
	if err != nil {
		return err
	}
	defer vert.Destroy(r.context)

	frag, err := vulkan.NewShaderModule(r.context, fragmentShader, vk.ShaderStageFragmentBit)
	if err != nil {
		return err
	}
	defer frag.Destroy(r.context)

	stride, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	pipeline, err := vulkan.NewGraphicsPipeline(r.context, &vulkan.VulkanPipelineConfig{
		Renderpass:   r.context.MainRenderpass,
		Shaders:      []*vulkan.VulkanShaderModule{vert, frag},
		Topology:     vk.PrimitiveTopologyTriangleList,
		VertexStride: uint32(stride),
		VertexAttributes: []vk.VertexInputAttributeDescription{
			{Location: 0, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: uint32(posOffset)},
			{Location: 1, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: uint32(uvOffset)},
			{Location: 2, Binding: 0, Format: vk.FormatR8g8b8a8Unorm, Offset: uint32(colOffset)},
		},
		PolygonMode:          vk.PolygonModeFill,
		CullMode:             vk.CullModeNone,
		FrontFace:            vk.FrontFaceCounterClockwise,
		Samples:              vk.SampleCount1Bit,
		DepthTest:            false,
		DepthWrite:           false,
		BlendEnable:          true,
		SrcColorBlendFactor:  vk.BlendFactorSrcAlpha,
		DstColorBlendFactor:  vk.BlendFactorOneMinusSrcAlpha,
		DescriptorSetLayouts: []vk.DescriptorSetLayout{r.setLayout},
		PushConstantRanges: []vk.PushConstantRange{{
			StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
			Offset:     0,
			Size:       uint32(unsafe.Sizeof(guiTransform{})),
		}},
	})
	if err != nil {
		return err
	}
	r.pipeline = pipeline
	return nil
}

// ensureBuffers grows the frame's vertex and index storage to at least the
// requested sizes. Growth reallocates; shrinking never happens.
func (r *vulkanRenderer) ensureBuffers(frame uint32, vertexBytes, indexBytes vk.DeviceSize) error {
	if b := r.vertexBuffers[frame]; b == nil || b.SizeBytes < vertexBytes {
		if b != nil {
			r.context.Allocations.DeleteBuffer(b)
		}
		allocation, err := r.context.Allocations.CreateBuffer(vertexBytes,
			vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit), vulkan.MemoryHintHostVisibleMapped)
		if err != nil {
			return err
		}
		r.vertexBuffers[frame] = allocation
	}
	if b := r.indexBuffers[frame]; b == nil || b.SizeBytes < indexBytes {
		if b != nil {
			r.context.Allocations.DeleteBuffer(b)
		}
		allocation, err := r.context.Allocations.CreateBuffer(indexBytes,
			vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit), vulkan.MemoryHintHostVisibleMapped)
		if err != nil {
			return err
		}
		r.indexBuffers[frame] = allocation
	}
	return nil
}

func (r *vulkanRenderer) render(cmd *vulkan.VulkanCommandBuffer, frame uint32, drawData imgui.DrawData) error {
	lists := drawData.CommandLists()
	if len(lists) == 0 {
		return nil
	}

	vertexStride, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()

	var vertexBytes, indexBytes int
	for _, list := range lists {
		_, vb := list.VertexBuffer()
		_, ib := list.IndexBuffer()
		vertexBytes += vb
		indexBytes += ib
	}
	if err := r.ensureBuffers(frame, vk.DeviceSize(vertexBytes), vk.DeviceSize(indexBytes)); err != nil {
		return err
	}

	vertexDst := unsafe.Slice((*byte)(r.vertexBuffers[frame].MappedPtr), vertexBytes)
	indexDst := unsafe.Slice((*byte)(r.indexBuffers[frame].MappedPtr), indexBytes)
	vertexOffset, indexOffset := 0, 0
	for _, list := range lists {
		vptr, vb := list.VertexBuffer()
		iptr, ib := list.IndexBuffer()
		copy(vertexDst[vertexOffset:], unsafe.Slice((*byte)(vptr), vb))
		copy(indexDst[indexOffset:], unsafe.Slice((*byte)(iptr), ib))
		vertexOffset += vb
		indexOffset += ib
	}

	width := r.context.FramebufferWidth
	height := r.context.FramebufferHeight

	r.pipeline.Bind(cmd, vk.PipelineBindPointGraphics)
	vk.CmdBindDescriptorSets(cmd.Handle, vk.PipelineBindPointGraphics, r.pipeline.PipelineLayout,
		0, 1, []vk.DescriptorSet{r.fontSet}, 0, nil)

	// The scene viewport is Y-flipped; the overlay uses a conventional one
	// so clip-space matches what imgui generates.
	viewport := vk.Viewport{
		Width:    float32(width),
		Height:   float32(height),
		MaxDepth: 1.0,
	}
	vk.CmdSetViewport(cmd.Handle, 0, 1, []vk.Viewport{viewport})

	transform := guiTransform{
		Scale:     [2]float32{2.0 / float32(width), 2.0 / float32(height)},
		Translate: [2]float32{-1.0, -1.0},
	}
	vk.CmdPushConstants(cmd.Handle, r.pipeline.PipelineLayout, vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		0, uint32(unsafe.Sizeof(transform)), unsafe.Pointer(&transform))

	indexType := vk.IndexTypeUint16
	if indexSize == 4 {
		indexType = vk.IndexTypeUint32
	}
	vk.CmdBindVertexBuffers(cmd.Handle, 0, 1, []vk.Buffer{r.vertexBuffers[frame].Handle}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(cmd.Handle, r.indexBuffers[frame].Handle, 0, indexType)

	firstVertex, firstIndex := int32(0), uint32(0)
	for _, list := range lists {
		for _, command := range list.Commands() {
			if command.HasUserCallback() {
				command.CallUserCallback(list)
				firstIndex += uint32(command.ElementCount())
				continue
			}
			clip := command.ClipRect()
			scissor := vk.Rect2D{
				Offset: vk.Offset2D{X: maxInt32(int32(clip.X), 0), Y: maxInt32(int32(clip.Y), 0)},
				Extent: vk.Extent2D{Width: uint32(clip.Z - clip.X), Height: uint32(clip.W - clip.Y)},
			}
			vk.CmdSetScissor(cmd.Handle, 0, 1, []vk.Rect2D{scissor})
			vk.CmdDrawIndexed(cmd.Handle, uint32(command.ElementCount()), 1, firstIndex, firstVertex, 0)
			firstIndex += uint32(command.ElementCount())
		}
		_, vb := list.VertexBuffer()
		firstVertex += int32(vb / vertexStride)
	}
	return nil
}

func (r *vulkanRenderer) destroy() {
	for i, b := range r.vertexBuffers {
		if b != nil {
			r.context.Allocations.DeleteBuffer(b)
			r.vertexBuffers[i] = nil
		}
	}
	for i, b := range r.indexBuffers {
		if b != nil {
			r.context.Allocations.DeleteBuffer(b)
			r.indexBuffers[i] = nil
		}
	}
	if r.pipeline != nil {
		r.pipeline.Destroy(r.context)
		r.pipeline = nil
	}
	if r.setLayout != vk.NullDescriptorSetLayout {
		vk.DestroyDescriptorSetLayout(r.context.Device.LogicalDevice, r.setLayout, r.context.Allocator)
		r.setLayout = vk.NullDescriptorSetLayout
	}
	if r.fontSampler != vk.NullSampler {
		vk.DestroySampler(r.context.Device.LogicalDevice, r.fontSampler, r.context.Allocator)
		r.fontSampler = vk.NullSampler
	}
	if r.fontImage != nil {
		r.fontImage.Destroy(r.context)
		r.fontImage = nil
	}
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
