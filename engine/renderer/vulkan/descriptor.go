package vulkan

import (
	vk "github.com/goki/vulkan"
)

// PoolSizeRatio scales how many descriptors of a type each pool carries
// relative to its set count.
type PoolSizeRatio struct {
	Type  vk.DescriptorType
	Ratio float32
}

const (
	descriptorPoolGrowthFactor = 1.5
	descriptorPoolMaxSets      = 4092
)

type descriptorPool struct {
	handle    vk.DescriptorPool
	capacity  uint32
	allocated uint32
}

// DescriptorAllocator hands out descriptor sets from a growing collection
// of pools. Pools start on the ready list; once a pool runs out it moves
// to the full list and a bigger one is created. ClearPools recycles every
// set and moves full pools back to ready.
type DescriptorAllocator struct {
	context     *VulkanContext
	ratios      []PoolSizeRatio
	setsPerPool uint32
	readyPools  []*descriptorPool
	fullPools   []*descriptorPool

	// Seams over the device calls.
	createPool  func(sets uint32) (vk.DescriptorPool, error)
	allocateSet func(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result)
	resetPool   func(pool vk.DescriptorPool) error
	destroyPool func(pool vk.DescriptorPool)
}

func NewDescriptorAllocator(context *VulkanContext, setsPerPool uint32, ratios []PoolSizeRatio) *DescriptorAllocator {
	da := &DescriptorAllocator{
		context:     context,
		ratios:      ratios,
		setsPerPool: setsPerPool,
	}
	da.createPool = da.vkCreatePool
	da.allocateSet = da.vkAllocateSet
	da.resetPool = da.vkResetPool
	da.destroyPool = da.vkDestroyPool
	return da
}

// Allocate returns a descriptor set for the given layout, creating or
// growing pools as needed.
func (da *DescriptorAllocator) Allocate(layout vk.DescriptorSetLayout) (vk.DescriptorSet, error) {
	pool, err := da.acquireReadyPool()
	if err != nil {
		return nil, err
	}

	set, res := da.allocateSet(pool.handle, layout)
	if res == vk.ErrorOutOfPoolMemory || res == vk.ErrorFragmentedPool {
		// The pool lied about having room; retire it and retry once from a
		// fresh pool.
		da.fullPools = append(da.fullPools, pool)
		da.readyPools = da.readyPools[:len(da.readyPools)-1]
		if pool, err = da.acquireReadyPool(); err != nil {
			return nil, err
		}
		set, res = da.allocateSet(pool.handle, layout)
	}
	if res != vk.Success {
		return nil, vkError("vkAllocateDescriptorSets", res)
	}

	pool.allocated++
	if pool.allocated >= pool.capacity {
		da.fullPools = append(da.fullPools, pool)
		da.readyPools = da.readyPools[:len(da.readyPools)-1]
	}
	return set, nil
}

// ClearPools resets every pool and returns all of them to the ready list.
// Previously handed-out sets become invalid.
func (da *DescriptorAllocator) ClearPools() error {
	da.readyPools = append(da.readyPools, da.fullPools...)
	da.fullPools = nil
	for _, pool := range da.readyPools {
		if err := da.resetPool(pool.handle); err != nil {
			return err
		}
		pool.allocated = 0
	}
	return nil
}

// DestroyPools frees both lists.
func (da *DescriptorAllocator) DestroyPools() {
	for _, pool := range da.readyPools {
		da.destroyPool(pool.handle)
	}
	for _, pool := range da.fullPools {
		da.destroyPool(pool.handle)
	}
	da.readyPools = nil
	da.fullPools = nil
}

// PoolCounts reports how many pools sit on each list.
func (da *DescriptorAllocator) PoolCounts() (ready, full int) {
	return len(da.readyPools), len(da.fullPools)
}

// Outstanding reports the total number of live allocations across pools.
func (da *DescriptorAllocator) Outstanding() int {
	total := 0
	for _, pool := range da.readyPools {
		total += int(pool.allocated)
	}
	for _, pool := range da.fullPools {
		total += int(pool.allocated)
	}
	return total
}

// acquireReadyPool returns the top ready pool, creating one when none is
// left. Each creation grows the target size for the next pool, capped.
func (da *DescriptorAllocator) acquireReadyPool() (*descriptorPool, error) {
	if len(da.readyPools) > 0 {
		return da.readyPools[len(da.readyPools)-1], nil
	}
	handle, err := da.createPool(da.setsPerPool)
	if err != nil {
		return nil, err
	}
	pool := &descriptorPool{handle: handle, capacity: da.setsPerPool}
	da.setsPerPool = uint32(float32(da.setsPerPool) * descriptorPoolGrowthFactor)
	if da.setsPerPool > descriptorPoolMaxSets {
		da.setsPerPool = descriptorPoolMaxSets
	}
	da.readyPools = append(da.readyPools, pool)
	return pool, nil
}

func (da *DescriptorAllocator) vkCreatePool(sets uint32) (vk.DescriptorPool, error) {
	poolSizes := make([]vk.DescriptorPoolSize, len(da.ratios))
	for i, ratio := range da.ratios {
		poolSizes[i] = vk.DescriptorPoolSize{
			Type:            ratio.Type,
			DescriptorCount: uint32(ratio.Ratio * float32(sets)),
		}
	}
	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       sets,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
	}
	var handle vk.DescriptorPool
	if res := vk.CreateDescriptorPool(da.context.Device.LogicalDevice, &createInfo, da.context.Allocator, &handle); res != vk.Success {
		return nil, vkError("vkCreateDescriptorPool", res)
	}
	return handle, nil
}

func (da *DescriptorAllocator) vkAllocateSet(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result) {
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}
	var set vk.DescriptorSet
	res := vk.AllocateDescriptorSets(da.context.Device.LogicalDevice, &allocateInfo, &set)
	return set, res
}

func (da *DescriptorAllocator) vkResetPool(pool vk.DescriptorPool) error {
	if res := vk.ResetDescriptorPool(da.context.Device.LogicalDevice, pool, 0); res != vk.Success {
		return vkError("vkResetDescriptorPool", res)
	}
	return nil
}

func (da *DescriptorAllocator) vkDestroyPool(pool vk.DescriptorPool) {
	vk.DestroyDescriptorPool(da.context.Device.LogicalDevice, pool, da.context.Allocator)
}

// DescriptorSetWriter batches buffer and image bindings and emits a single
// update per descriptor set. Each write owns its own info slice so nothing
// moves between Add and Update.
type DescriptorSetWriter struct {
	writes []vk.WriteDescriptorSet
}

func (w *DescriptorSetWriter) WriteBuffer(binding uint32, descriptorType vk.DescriptorType, buffer vk.Buffer, offset, size vk.DeviceSize) {
	info := []vk.DescriptorBufferInfo{{
		Buffer: buffer,
		Offset: offset,
		Range:  size,
	}}
	w.writes = append(w.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descriptorType,
		PBufferInfo:     info,
	})
}

func (w *DescriptorSetWriter) WriteImage(binding uint32, descriptorType vk.DescriptorType, view vk.ImageView, sampler vk.Sampler, layout vk.ImageLayout) {
	info := []vk.DescriptorImageInfo{{
		Sampler:     sampler,
		ImageView:   view,
		ImageLayout: layout,
	}}
	w.writes = append(w.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descriptorType,
		PImageInfo:      info,
	})
}

// UpdateSet points every pending write at set and flushes them in one
// device call.
func (w *DescriptorSetWriter) UpdateSet(context *VulkanContext, set vk.DescriptorSet) {
	for i := range w.writes {
		w.writes[i].DstSet = set
	}
	vk.UpdateDescriptorSets(context.Device.LogicalDevice, uint32(len(w.writes)), w.writes, 0, nil)
}

// Clear drops pending writes so the writer can be reused.
func (w *DescriptorSetWriter) Clear() {
	w.writes = nil
}
