package assets

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/core"
	"golang.org/x/image/draw"
)

// ImageLoader decodes PNG and JPEG files and converts the result to
// tightly packed RGBA, the only layout the texture upload path accepts.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, params any) (*Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		core.LogError("func Load - cannot open image '%s': %s", path, err)
		return nil, core.ErrFileRead
	}
	defer file.Close()

	source, _, err := image.Decode(file)
	if err != nil {
		core.LogError("func Load - cannot decode image '%s': %s", path, err)
		return nil, core.ErrIncorrectFormat
	}

	bounds := source.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), source, bounds.Min, draw.Src)

	data := &ImageData{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Pixels: rgba.Pix,
	}
	return &Resource{
		ID:       uuid.New(),
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     ResourceTypeImage,
		DataSize: uint64(len(rgba.Pix)),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(resource *Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
