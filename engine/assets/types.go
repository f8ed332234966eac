package assets

import (
	"time"

	"github.com/fzipp/bmfont"
	"github.com/google/uuid"
)

type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeShader
	ResourceTypeImage
	ResourceTypeModel
	ResourceTypeBitmapFont
)

// Resource is one loaded asset. Data holds the loader-specific payload.
type Resource struct {
	ID       uuid.UUID
	Name     string
	FullPath string
	Type     ResourceType
	DataSize uint64
	Data     any
}

// AssetInfo is the watcher's index entry for a discovered file.
type AssetInfo struct {
	Path       string
	Type       ResourceType
	LastLoaded time.Time
}

// ImageData is a decoded image, always converted to tightly packed RGBA.
type ImageData struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

// ModelData carries raw glTF content; Binary distinguishes .glb from the
// JSON .gltf form.
type ModelData struct {
	Binary bool
	Data   []byte
}

// BitmapFontData wraps a parsed AngelCode .fnt descriptor.
type BitmapFontData struct {
	Descriptor *bmfont.Descriptor
}

// Loader turns a file into a typed Resource.
type Loader interface {
	Load(path string, params any) (*Resource, error)
	Unload(resource *Resource) error
}
