package heartscene

import (
	"image"
	"testing"
)

func TestNewTextureEmpty(t *testing.T) {
	for _, src := range []*image.RGBA{nil, image.NewRGBA(image.Rect(0, 0, 0, 0))} {
		tex := NewTexture(src)
		w, h := tex.Size()
		if w != 1 || h != 1 {
			t.Errorf("size = %dx%d, want 1x1", w, h)
		}
		if tex.Refs() != 1 {
			t.Errorf("refs = %d, want 1", tex.Refs())
		}
	}
}

func TestTextureRefCounting(t *testing.T) {
	tex := NewTexture(GlowImage(8))
	if got := tex.Retain(); got != tex {
		t.Error("Retain should return the receiver")
	}
	if tex.Refs() != 2 {
		t.Fatalf("refs = %d, want 2", tex.Refs())
	}
	tex.Release()
	tex.Release()
	if tex.Refs() != 0 {
		t.Errorf("refs = %d, want 0", tex.Refs())
	}
	tex.Release() // extra release is a no-op
	if tex.Refs() != 0 {
		t.Errorf("refs after extra release = %d, want 0", tex.Refs())
	}
}

func TestTextureNilSafe(t *testing.T) {
	var tex *Texture
	if tex.Retain() != nil {
		t.Error("nil Retain should return nil")
	}
	tex.Release()
}

func TestTextureUploadAndRelease(t *testing.T) {
	tex := NewTexture(GlowImage(4))
	if tex.Uploaded() {
		t.Fatal("texture should upload lazily")
	}
	img := tex.Image()
	if img == nil || !tex.Uploaded() {
		t.Fatal("Image should upload")
	}
	if tex.Image() != img {
		t.Error("Image should return the cached upload")
	}
	tex.Release()
	if tex.Uploaded() {
		t.Error("last release should drop the GPU image")
	}
}

func TestGlowImage(t *testing.T) {
	img := GlowImage(32)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("bounds = %v, want 32x32", b)
	}
	center := img.RGBAAt(16, 16).A
	mid := img.RGBAAt(16, 24).A
	corner := img.RGBAAt(0, 0).A
	if center < 240 {
		t.Errorf("center alpha = %d, want near opaque", center)
	}
	if !(mid < center && mid > 0) {
		t.Errorf("mid alpha = %d, want between 0 and %d", mid, center)
	}
	if corner != 0 {
		t.Errorf("corner alpha = %d, want 0", corner)
	}
}

func TestGlowImageTiny(t *testing.T) {
	for _, size := range []int{0, -5} {
		if b := GlowImage(size).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
			t.Errorf("GlowImage(%d) bounds = %v, want 1x1", size, b)
		}
	}
}

func TestGlowFalloffMonotonic(t *testing.T) {
	prev := glowFalloff(0)
	for d := 0.01; d <= 1.0; d += 0.01 {
		a := glowFalloff(d)
		if a > prev+1e-12 {
			t.Fatalf("falloff increases at d=%v: %v > %v", d, a, prev)
		}
		prev = a
	}
	if glowFalloff(1) != 0 {
		t.Error("falloff at the edge should be 0")
	}
}

func TestLoadFace(t *testing.T) {
	face, err := LoadFace(24)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	defer face.Close()
	if face.Metrics().Height.Ceil() <= 0 {
		t.Error("face height should be positive")
	}
	if _, err := LoadFace(0); err == nil {
		t.Error("LoadFace(0) should fail")
	}
}

func TestTextImage(t *testing.T) {
	face, err := LoadFace(24)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	defer face.Close()

	img := TextImage(face, "I love you", ColorWhite, Color{1, 0, 0, 1})
	b := img.Bounds()
	if b.Dx() <= 2*textPadding || b.Dy() <= 2*textPadding {
		t.Fatalf("bounds = %v, too small", b)
	}
	var opaque int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Error("text image has no visible pixels")
	}
	// The padding row stays clear.
	for x := 0; x < b.Dx(); x++ {
		if img.RGBAAt(x, 0).A != 0 {
			t.Fatalf("pixel (%d, 0) is not transparent", x)
		}
	}

	longer := TextImage(face, "I love you forever", ColorWhite, Color{})
	if longer.Bounds().Dx() <= b.Dx() {
		t.Error("longer text should produce a wider image")
	}
}

func TestTextImageEmpty(t *testing.T) {
	face, err := LoadFace(12)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	defer face.Close()
	for _, img := range []*image.RGBA{
		TextImage(face, "", ColorWhite, ColorWhite),
		TextImage(nil, "hello", ColorWhite, ColorWhite),
	} {
		if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
			t.Errorf("bounds = %v, want 1x1", b)
		}
		if img.Pix[3] != 0 {
			t.Error("empty text image should be transparent")
		}
	}
}

func TestColorToRGBA(t *testing.T) {
	got := Color{1, 0.5, 0, 2}.toRGBA()
	if got.R != 255 || got.G != 128 || got.B != 0 || got.A != 255 {
		t.Errorf("toRGBA = %+v", got)
	}
}
