package heartscene

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Texture is a reference-counted raster. The CPU-side image is kept for the
// lifetime of the texture; the GPU image is uploaded on first use and
// deallocated when the last reference is released.
//
// The creator holds the first reference. Every node or particle that stores
// the texture takes its own reference with Retain and gives it back with
// Release.
type Texture struct {
	src  *image.RGBA
	img  *ebiten.Image
	refs int
}

// NewTexture wraps src. The returned texture has one reference.
// A nil or empty src is replaced by a 1x1 transparent image.
func NewTexture(src *image.RGBA) *Texture {
	if src == nil || src.Bounds().Empty() {
		src = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return &Texture{src: src, refs: 1}
}

// Retain takes a reference and returns t for chaining. Nil-safe.
func (t *Texture) Retain() *Texture {
	if t != nil {
		t.refs++
	}
	return t
}

// Release drops a reference. When no references remain the uploaded GPU image
// is deallocated. Releasing a nil texture or one with no references is a no-op.
func (t *Texture) Release() {
	if t == nil || t.refs <= 0 {
		return
	}
	t.refs--
	if t.refs == 0 && t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// Refs returns the current reference count.
func (t *Texture) Refs() int {
	return t.refs
}

// Uploaded reports whether a GPU image currently exists for t.
func (t *Texture) Uploaded() bool {
	return t.img != nil
}

// Size returns the pixel dimensions of the raster.
func (t *Texture) Size() (int, int) {
	b := t.src.Bounds()
	return b.Dx(), b.Dy()
}

// Source returns the CPU-side raster. It MUST NOT be mutated.
func (t *Texture) Source() *image.RGBA {
	return t.src
}

// Image returns the GPU image, uploading it on first use.
func (t *Texture) Image() *ebiten.Image {
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}

// --- Synthesizers ---

// GlowImage rasterizes a size x size soft white circle whose alpha falls off
// radially from 1 at the center to 0 at the edge. size < 1 yields a 1x1 image.
func GlowImage(size int) *image.RGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - c) / c
			dy := (float64(y) + 0.5 - c) / c
			d := math.Sqrt(dx*dx + dy*dy)
			a := glowFalloff(d)
			if a <= 0 {
				continue
			}
			v := uint8(math.Round(a * 255))
			// Premultiplied white.
			img.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

// glowFalloff maps normalized distance d in [0, 1] to alpha. The stops mirror a
// canvas radial gradient: opaque core, soft mid ring, transparent edge.
func glowFalloff(d float64) float64 {
	switch {
	case d >= 1:
		return 0
	case d < 0.2:
		return 1 - d*0.5
	case d < 0.5:
		return 0.9 - (d-0.2)/0.3*0.55
	default:
		return 0.35 * (1 - (d-0.5)/0.5)
	}
}

// LoadFace parses the embedded Go Regular font at the given pixel size.
func LoadFace(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("load face: size must be positive, got %v", size)
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load face: parse: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("load face: %w", err)
	}
	return face, nil
}

// textPadding is the transparent border around rasterized text, in pixels.
const textPadding = 4

// TextImage rasterizes s with face. When outline has non-zero alpha the text
// is stroked by drawing it offset in the eight compass directions first.
// An empty string (or a nil face) yields a 1x1 transparent image.
func TextImage(face font.Face, s string, fill, outline Color) *image.RGBA {
	if face == nil || s == "" {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	m := face.Metrics()
	adv := font.MeasureString(face, s)
	w := adv.Ceil() + textPadding*2
	h := (m.Ascent + m.Descent).Ceil() + textPadding*2
	if w <= textPadding*2 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	baseline := fixed.P(textPadding, textPadding+m.Ascent.Ceil())

	d := &font.Drawer{Dst: img, Face: face}
	if outline.A > 0 {
		d.Src = image.NewUniform(outline.toRGBA())
		for _, o := range outlineOffsets {
			d.Dot = baseline.Add(fixed.P(o[0], o[1]))
			d.DrawString(s)
		}
	}
	d.Src = image.NewUniform(fill.toRGBA())
	d.Dot = baseline
	d.DrawString(s)
	return img
}

var outlineOffsets = [8][2]int{
	{-2, 0}, {2, 0}, {0, -2}, {0, 2},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// toRGBA converts c to a color.NRGBA (straight alpha).
func (c Color) toRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}
