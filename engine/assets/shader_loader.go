package assets

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/core"
)

// ShaderLoader reads SPIR-V bytecode. An empty file is a valid empty
// module; a length that is not a multiple of the 32-bit word size is
// rejected before the bytes ever reach the driver.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params any) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		core.LogError("func Load - cannot read shader '%s': %s", path, err)
		return nil, core.ErrFileRead
	}
	if len(data)%4 != 0 {
		core.LogError("func Load - shader '%s' is not valid SPIR-V: %d bytes", path, len(data))
		return nil, core.ErrIncorrectFormat
	}
	return &Resource{
		ID:       uuid.New(),
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     ResourceTypeShader,
		DataSize: uint64(len(data)),
		Data:     data,
	}, nil
}

func (sl *ShaderLoader) Unload(resource *Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
