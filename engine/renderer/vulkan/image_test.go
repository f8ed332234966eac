package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMipLevels(t *testing.T) {
	cases := []struct {
		extent math.Extent3D
		want   uint32
	}{
		{math.Extent3D{Width: 1, Height: 1, Depth: 1}, 1},
		{math.Extent3D{Width: 8, Height: 8, Depth: 1}, 4},
		{math.Extent3D{Width: 1024, Height: 1024, Depth: 1}, 11},
		{math.Extent3D{Width: 1024, Height: 512, Depth: 1}, 11},
		{math.Extent3D{Width: 3, Height: 3, Depth: 1}, 2},
		{math.Extent3D{Width: 256, Height: 1, Depth: 1}, 9},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FindMipLevels(c.extent), "%dx%dx%d", c.extent.Width, c.extent.Height, c.extent.Depth)
	}
}

func TestFormatSizeBytes(t *testing.T) {
	assert.Equal(t, uint32(4), FormatSizeBytes(vk.FormatR8g8b8a8Unorm))
	assert.Equal(t, uint32(4), FormatSizeBytes(vk.FormatB8g8r8a8Unorm))
	assert.Equal(t, uint32(1), FormatSizeBytes(vk.FormatR8Unorm))
	assert.Equal(t, uint32(16), FormatSizeBytes(vk.FormatR32g32b32a32Sfloat))
}

func TestFindFullSizeBytesSingleLevel(t *testing.T) {
	size, err := FindFullSizeBytes(vk.FormatR8g8b8a8Unorm,
		math.Extent3D{Width: 16, Height: 16, Depth: 1}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(16*16*4), size)
}

func TestFindFullSizeBytesMipChain(t *testing.T) {
	// A full chain for 256x256 RGBA8 sums every level above 1x1.
	extent := math.Extent3D{Width: 256, Height: 256, Depth: 1}
	size, err := FindFullSizeBytes(vk.FormatR8g8b8a8Unorm, extent, FindMipLevels(extent), 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(349520), size)
}

func TestFindFullSizeBytesScalesWithArrayLayers(t *testing.T) {
	extent := math.Extent3D{Width: 16, Height: 16, Depth: 1}
	single, err := FindFullSizeBytes(vk.FormatR8g8b8a8Unorm, extent, 1, 1)
	require.NoError(t, err)
	layered, err := FindFullSizeBytes(vk.FormatR8g8b8a8Unorm, extent, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, single*6, layered)
}

func TestFindFullSizeBytesRejectsLayeredVolume(t *testing.T) {
	_, err := FindFullSizeBytes(vk.FormatR8g8b8a8Unorm,
		math.Extent3D{Width: 16, Height: 16, Depth: 4}, 1, 2)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestVulkanResultString(t *testing.T) {
	assert.Equal(t, "VK_SUCCESS", VulkanResultString(vk.Success))
	assert.Equal(t, "VK_ERROR_DEVICE_LOST", VulkanResultString(vk.ErrorDeviceLost))
	assert.True(t, VulkanResultIsSuccess(vk.Success))
	assert.False(t, VulkanResultIsSuccess(vk.ErrorDeviceLost))
}
