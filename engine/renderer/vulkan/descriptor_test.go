package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice replaces the descriptor allocator's device seams with pure
// bookkeeping so the recycling and growth policy can be exercised without
// a GPU.
type fakeDevice struct {
	created   []uint32
	resets    int
	destroyed int
}

func newTestAllocator(setsPerPool uint32, device *fakeDevice) *DescriptorAllocator {
	da := NewDescriptorAllocator(nil, setsPerPool, []PoolSizeRatio{
		{Type: vk.DescriptorTypeUniformBuffer, Ratio: 2.0},
	})
	da.createPool = func(sets uint32) (vk.DescriptorPool, error) {
		device.created = append(device.created, sets)
		return vk.NullDescriptorPool, nil
	}
	da.allocateSet = func(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result) {
		return vk.NullDescriptorSet, vk.Success
	}
	da.resetPool = func(pool vk.DescriptorPool) error {
		device.resets++
		return nil
	}
	da.destroyPool = func(pool vk.DescriptorPool) {
		device.destroyed++
	}
	return da
}

func TestDescriptorAllocatorFillsThenGrows(t *testing.T) {
	device := &fakeDevice{}
	da := newTestAllocator(4, device)

	// Five allocations overflow a four-set pool: the first pool fills and
	// retires, a second takes the spill.
	for i := 0; i < 5; i++ {
		_, err := da.Allocate(vk.NullDescriptorSetLayout)
		require.NoError(t, err)
	}

	ready, full := da.PoolCounts()
	assert.Equal(t, 1, ready)
	assert.Equal(t, 1, full)
	assert.Equal(t, 5, da.Outstanding())
	require.Len(t, device.created, 2)
	assert.Equal(t, uint32(4), device.created[0])
}

func TestDescriptorAllocatorGrowsPoolSizeGeometrically(t *testing.T) {
	device := &fakeDevice{}
	da := newTestAllocator(4, device)

	// Exhaust three pools: sizes follow the 1.5x schedule.
	for i := 0; i < 4+6+9; i++ {
		_, err := da.Allocate(vk.NullDescriptorSetLayout)
		require.NoError(t, err)
	}
	assert.Equal(t, []uint32{4, 6, 9}, device.created)
}

func TestDescriptorAllocatorPoolSizeIsCapped(t *testing.T) {
	device := &fakeDevice{}
	da := newTestAllocator(4000, device)

	_, err := da.Allocate(vk.NullDescriptorSetLayout)
	require.NoError(t, err)
	assert.Equal(t, uint32(descriptorPoolMaxSets), da.setsPerPool)
}

func TestDescriptorAllocatorClearPoolsRecyclesEverything(t *testing.T) {
	device := &fakeDevice{}
	da := newTestAllocator(4, device)

	for i := 0; i < 5; i++ {
		_, err := da.Allocate(vk.NullDescriptorSetLayout)
		require.NoError(t, err)
	}
	require.NoError(t, da.ClearPools())

	ready, full := da.PoolCounts()
	assert.Equal(t, 2, ready)
	assert.Equal(t, 0, full)
	assert.Equal(t, 0, da.Outstanding())
	assert.Equal(t, 2, device.resets)

	// Recycled pools serve again without creating new ones.
	_, err := da.Allocate(vk.NullDescriptorSetLayout)
	require.NoError(t, err)
	assert.Len(t, device.created, 2)
}

func TestDescriptorAllocatorRetriesOnFragmentedPool(t *testing.T) {
	device := &fakeDevice{}
	da := newTestAllocator(4, device)

	failures := 1
	da.allocateSet = func(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, vk.Result) {
		if failures > 0 {
			failures--
			return nil, vk.ErrorFragmentedPool
		}
		return vk.NullDescriptorSet, vk.Success
	}

	_, err := da.Allocate(vk.NullDescriptorSetLayout)
	require.NoError(t, err)

	// The lying pool retired; the fresh pool holds the allocation.
	ready, full := da.PoolCounts()
	assert.Equal(t, 1, ready)
	assert.Equal(t, 1, full)
	assert.Equal(t, 1, da.Outstanding())
}

func TestDescriptorAllocatorDestroyPools(t *testing.T) {
	device := &fakeDevice{}
	da := newTestAllocator(4, device)

	for i := 0; i < 5; i++ {
		_, err := da.Allocate(vk.NullDescriptorSetLayout)
		require.NoError(t, err)
	}
	da.DestroyPools()

	ready, full := da.PoolCounts()
	assert.Equal(t, 0, ready)
	assert.Equal(t, 0, full)
	assert.Equal(t, 2, device.destroyed)
}
