package assets

import (
	"path/filepath"

	"github.com/fzipp/bmfont"
	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/core"
)

// BitmapFontLoader parses AngelCode .fnt descriptors. Page images are
// loaded separately through the image loader.
type BitmapFontLoader struct{}

func (bl *BitmapFontLoader) Load(path string, params any) (*Resource, error) {
	descriptor, err := bmfont.LoadDescriptor(path)
	if err != nil {
		core.LogError("func Load - cannot parse bitmap font '%s': %s", path, err)
		return nil, core.ErrIncorrectFormat
	}
	return &Resource{
		ID:       uuid.New(),
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     ResourceTypeBitmapFont,
		DataSize: uint64(len(descriptor.Chars)),
		Data:     &BitmapFontData{Descriptor: descriptor},
	}, nil
}

func (bl *BitmapFontLoader) Unload(resource *Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
