package client

import (
	"cmp"
	"fmt"
	"image/color"
	"iter"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
)

// Background is the clear colour, rgb(0, 0, 0.2).
var Background = color.RGBA{R: 0, G: 0, B: 51, A: 255}

// ImageSource resolves texture names to images.
type ImageSource interface {
	Load(name string) *ebiten.Image
}

// TextureFile is the asset file holding a texture.
func TextureFile(texture string) string {
	return texture + ".png"
}

type drawable struct {
	*drop.Position
	*drop.Sprite
}

// drawList returns the sprites in ascending Z. Ties keep storage order.
func drawList(items iter.Seq[drawable]) []drawable {
	list := slices.Collect(items)
	slices.SortStableFunc(list, func(a, b drawable) int {
		return cmp.Compare(a.Position.Z, b.Position.Z)
	})
	return list
}

// toScreen maps a y-up world point with the origin at the centre to screen pixels.
func toScreen(x, y float64, width, height int) (float64, float64) {
	return float64(width)/2 + x, float64(height)/2 - y
}

// Screen is the render target singleton, set by Game.Draw before the render pass.
type Screen struct {
	*ebiten.Image
}

// RenderSystem draws every sprite and the HUD onto the Screen singleton. It runs on its
// own scheduler, once per ebiten Draw.
type RenderSystem struct {
	Sprites ecs.Query[drawable]
	Screen  ecs.Singleton[Screen]
	Score   ecs.Singleton[drop.Score]

	Width, Height int
	Images        ImageSource
	// HUD fills in everything but the score.
	HUD func() HUD
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Screen.Get()
	if target == nil || target.Image == nil {
		return
	}
	screen := target.Image

	screen.Fill(Background)
	for _, d := range drawList(s.Sprites.Values()) {
		if d.Sprite.Texture == "" {
			s.drawRect(screen, d)
			continue
		}
		s.drawImage(screen, d)
	}

	var hud HUD
	if s.HUD != nil {
		hud = s.HUD()
	}
	if score := s.Score.Get(); score != nil {
		hud.Score = score.Value
	}
	hud.Draw(screen)
}

func (s *RenderSystem) drawRect(screen *ebiten.Image, d drawable) {
	if d.Sprite.CustomSize == nil {
		return
	}
	size := *d.Sprite.CustomSize
	cx, cy := toScreen(d.Position.X, d.Position.Y, s.Width, s.Height)
	vector.DrawFilledRect(screen,
		float32(cx-size.W/2), float32(cy-size.H/2),
		float32(size.W), float32(size.H),
		d.Sprite.Color, false)
}

func (s *RenderSystem) drawImage(screen *ebiten.Image, d drawable) {
	img := s.Images.Load(TextureFile(d.Sprite.Texture))
	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	if size := d.Sprite.CustomSize; size != nil && w > 0 && h > 0 {
		op.GeoM.Scale(size.W/w, size.H/h)
	}
	cx, cy := toScreen(d.Position.X, d.Position.Y, s.Width, s.Height)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// HUD is the text shown in the top-left corner.
type HUD struct {
	Score int64
	Best  int64
	Muted bool
	Debug bool
}

func (h HUD) String() string {
	text := fmt.Sprintf("Score: %d\nBest: %d", h.Score, max(h.Score, h.Best))
	if h.Muted {
		text += "\n[muted]"
	}
	if h.Debug {
		text += fmt.Sprintf("\nTPS: %.0f", ebiten.ActualTPS())
	}
	return text
}

func (h HUD) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, h.String(), 8, 8)
}
