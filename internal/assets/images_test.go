package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	fsys := fstest.MapFS{"bucket.png": {Data: encodePNG(t, 64, 48)}}

	img, err := Decode(fsys, "bucket.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
}

func TestDecodeErrors(t *testing.T) {
	fsys := fstest.MapFS{"stone.png": {Data: []byte("garbage")}}

	_, err := Decode(fsys, "missing.png")
	assert.ErrorContains(t, err, "failed to open missing.png")

	_, err = Decode(fsys, "stone.png")
	assert.ErrorContains(t, err, "failed to decode stone.png")

	_, err = Decode(nil, "stone.png")
	assert.ErrorContains(t, err, "no asset directory")
}

func TestDecodeOrPlaceholder(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	fsys := fstest.MapFS{"droplet.png": {Data: encodePNG(t, 16, 16)}}

	img, ok := DecodeOrPlaceholder(fsys, "droplet.png", logger)
	assert.True(t, ok)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Empty(t, logs.String())

	img, ok = DecodeOrPlaceholder(fsys, "sponge.png", logger)
	assert.False(t, ok)
	assert.Equal(t, image.Rect(0, 0, PlaceholderSize, PlaceholderSize), img.Bounds())
	assert.Equal(t, placeholderColor, img.At(PlaceholderSize-1, PlaceholderSize-1))
	assert.Contains(t, logs.String(), "using a placeholder")
	assert.Contains(t, logs.String(), "sponge.png")
}

func TestNewImagesDefaultsLogger(t *testing.T) {
	images := NewImages(nil, nil)
	require.NotNil(t, images.logger)
	images.logger.SetOutput(io.Discard)
	assert.Empty(t, images.cache)
}
