package heartscene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Scale returns the color with its RGB channels multiplied by f. Alpha is kept.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Add returns the per-channel sum of the RGB channels. Alpha is taken from c.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Mul returns the per-channel product of the RGB channels. Alpha is taken from c.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A}
}

// Clamped returns the color with every channel clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// Range is a general-purpose min/max range used by the burst emitter and the
// procedural builders.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Viewport is the output surface size in device-independent pixels plus the
// device pixel ratio.
type Viewport struct {
	Width, Height int
	PixelRatio    float64
}

// SurfaceSize returns the drawable surface size in device pixels.
func (v Viewport) SurfaceSize() (int, int) {
	r := v.PixelRatio
	if r <= 0 {
		r = 1
	}
	return int(math.Ceil(float64(v.Width) * r)), int(math.Ceil(float64(v.Height) * r))
}

// BlendMode selects a compositing operation.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // transform-only node with no visual output
	NodeTypeMesh                   // lit triangle mesh
	NodeTypeSprite                 // camera-facing textured quad
	NodeTypePoints                 // point cloud drawn as small glow sprites
	NodeTypeLight                  // point or ambient light
)

// Axis vectors used throughout the scene.
var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
