package assets

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/core"
)

const glbMagic = 0x46546C67 // "glTF"

// ModelLoader handles glTF scenes. The extension decides the container
// form and is validated before any bytes are read: .gltf is the JSON
// form, .glb the binary one, anything else is rejected.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, params any) (*Resource, error) {
	var isBinary bool
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf":
		isBinary = false
	case ".glb":
		isBinary = true
	default:
		core.LogError("func Load - '%s' is not a glTF model", path)
		return nil, core.ErrInvalidExtension
	}

	data, err := os.ReadFile(path)
	if err != nil {
		core.LogError("func Load - cannot read model '%s': %s", path, err)
		return nil, core.ErrFileRead
	}

	if isBinary {
		if len(data) < 12 || binary.LittleEndian.Uint32(data[:4]) != glbMagic {
			core.LogError("func Load - model '%s' has an invalid glb header", path)
			return nil, core.ErrIncorrectFormat
		}
	} else {
		trimmed := bytes.TrimLeft(data, " \t\r\n")
		if len(trimmed) == 0 || trimmed[0] != '{' {
			core.LogError("func Load - model '%s' is not a glTF JSON document", path)
			return nil, core.ErrIncorrectFormat
		}
	}

	return &Resource{
		ID:       uuid.New(),
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     ResourceTypeModel,
		DataSize: uint64(len(data)),
		Data:     &ModelData{Binary: isBinary, Data: data},
	}, nil
}

func (ml *ModelLoader) Unload(resource *Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
