package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderLoader(t *testing.T) {
	dir := t.TempDir()
	loader := &ShaderLoader{}

	path := writeFile(t, dir, "ok.spv", []byte{1, 2, 3, 4, 5, 6, 7, 8})
	resource, err := loader.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeShader, resource.Type)
	assert.Equal(t, uint64(8), resource.DataSize)
	assert.Len(t, resource.Data.([]byte), 8)
}

func TestShaderLoaderAcceptsEmptyFile(t *testing.T) {
	loader := &ShaderLoader{}
	path := writeFile(t, t.TempDir(), "empty.spv", nil)

	resource, err := loader.Load(path, nil)
	require.NoError(t, err)
	assert.Zero(t, resource.DataSize)
}

func TestShaderLoaderRejectsOddLength(t *testing.T) {
	loader := &ShaderLoader{}
	path := writeFile(t, t.TempDir(), "torn.spv", []byte{1, 2, 3, 4, 5})

	_, err := loader.Load(path, nil)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestShaderLoaderMissingFile(t *testing.T) {
	loader := &ShaderLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.spv"), nil)
	assert.ErrorIs(t, err, core.ErrFileRead)
}

func TestModelLoaderRejectsExtensionBeforeReading(t *testing.T) {
	loader := &ModelLoader{}

	// The file does not exist; the extension check alone must reject it.
	_, err := loader.Load(filepath.Join(t.TempDir(), "mesh.obj"), nil)
	assert.ErrorIs(t, err, core.ErrInvalidExtension)
}

func TestModelLoaderBinaryHeader(t *testing.T) {
	dir := t.TempDir()
	loader := &ModelLoader{}

	good := writeFile(t, dir, "ok.glb", []byte("glTF\x02\x00\x00\x00\x0c\x00\x00\x00"))
	resource, err := loader.Load(good, nil)
	require.NoError(t, err)
	data := resource.Data.(*ModelData)
	assert.True(t, data.Binary)

	bad := writeFile(t, dir, "bad.glb", []byte("NOPE\x02\x00\x00\x00\x0c\x00\x00\x00"))
	_, err = loader.Load(bad, nil)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)

	short := writeFile(t, dir, "short.glb", []byte("glTF"))
	_, err = loader.Load(short, nil)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestModelLoaderJSONDocument(t *testing.T) {
	dir := t.TempDir()
	loader := &ModelLoader{}

	good := writeFile(t, dir, "ok.gltf", []byte("\n\t {\"asset\":{\"version\":\"2.0\"}}"))
	resource, err := loader.Load(good, nil)
	require.NoError(t, err)
	assert.False(t, resource.Data.(*ModelData).Binary)

	bad := writeFile(t, dir, "bad.gltf", []byte("not json at all"))
	_, err = loader.Load(bad, nil)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestImageLoaderDecodesToRGBA(t *testing.T) {
	dir := t.TempDir()
	loader := &ImageLoader{}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := writeFile(t, dir, "red.png", buf.Bytes())

	resource, err := loader.Load(path, nil)
	require.NoError(t, err)
	data := resource.Data.(*ImageData)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	require.Len(t, data.Pixels, 4*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[:4])
}

func TestImageLoaderRejectsGarbage(t *testing.T) {
	loader := &ImageLoader{}
	path := writeFile(t, t.TempDir(), "noise.png", []byte("definitely not a png"))

	_, err := loader.Load(path, nil)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestBitmapFontLoader(t *testing.T) {
	dir := t.TempDir()
	loader := &BitmapFontLoader{}

	descriptor := `info face="test" size=32 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=32 base=26 scaleW=256 scaleH=256 pages=1 packed=0 alphaChnl=0 redChnl=4 greenChnl=4 blueChnl=4
page id=0 file="test_0.png"
chars count=1
char id=65 x=0 y=0 width=20 height=24 xoffset=0 yoffset=2 xadvance=22 page=0 chnl=15
`
	path := writeFile(t, dir, "test.fnt", []byte(descriptor))

	resource, err := loader.Load(path, nil)
	require.NoError(t, err)
	data := resource.Data.(*BitmapFontData)
	require.NotNil(t, data.Descriptor)
	assert.Len(t, data.Descriptor.Chars, 1)
}

func TestBitmapFontLoaderRejectsGarbage(t *testing.T) {
	loader := &BitmapFontLoader{}
	path := writeFile(t, t.TempDir(), "broken.fnt", []byte("info size=notanumber\n"))

	_, err := loader.Load(path, nil)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}
