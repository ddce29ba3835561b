// Package assets loads sprite images from the assets directory.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlaceholderSize is the edge of the square drawn for an image that could not be loaded.
const PlaceholderSize = 32

var placeholderColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Decode reads and decodes the image called name from fsys.
func Decode(fsys fs.FS, name string) (image.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("assets: no asset directory for %s", name)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to open %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to decode %s: %w", name, err)
	}
	return img, nil
}

// Placeholder returns a flat square used in place of a missing image.
func Placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderColor), image.Point{}, draw.Src)
	return img
}

// DecodeOrPlaceholder is Decode with missing or corrupt images replaced by Placeholder.
// The failure is logged and reported through ok.
func DecodeOrPlaceholder(fsys fs.FS, name string, logger *log.Logger) (img image.Image, ok bool) {
	img, err := Decode(fsys, name)
	if err != nil {
		logger.Warn("could not load image, using a placeholder", "name", name, "error", err)
		return Placeholder(), false
	}
	return img, true
}

// Images caches GPU images by asset name.
type Images struct {
	fsys   fs.FS
	cache  map[string]*ebiten.Image
	logger *log.Logger
}

func NewImages(fsys fs.FS, logger *log.Logger) *Images {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Images{
		fsys:   fsys,
		cache:  make(map[string]*ebiten.Image),
		logger: logger,
	}
}

// Load returns the image for name, decoding it on first use. It never returns nil.
func (i *Images) Load(name string) *ebiten.Image {
	if img, ok := i.cache[name]; ok {
		return img
	}
	decoded, _ := DecodeOrPlaceholder(i.fsys, name, i.logger)
	img := ebiten.NewImageFromImage(decoded)
	i.cache[name] = img
	return img
}

// Preload decodes every named image.
func (i *Images) Preload(names ...string) {
	for _, name := range names {
		i.Load(name)
	}
}
