package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestNewShaderModuleRejectsMisalignedBytecode(t *testing.T) {
	_, err := NewShaderModule(nil, []byte{1, 2, 3}, vk.ShaderStageVertexBit)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestSliceUint32AssemblesLittleEndianWords(t *testing.T) {
	words := sliceUint32([]byte{
		0x03, 0x02, 0x23, 0x07, // SPIR-V magic
		0x78, 0x56, 0x34, 0x12,
	})
	assert.Equal(t, []uint32{0x07230203, 0x12345678}, words)
}
