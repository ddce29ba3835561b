package drop

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func vec(p *Position) mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// Distance is the planar Euclidean distance between two positions.
func Distance(a, b *Position) float64 {
	return vec(a).Sub(vec(b)).Len()
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}

// horizontalGap is the distance between two positions along x only.
func horizontalGap(a, b *Position) float64 {
	return math.Abs(a.X - b.X)
}
