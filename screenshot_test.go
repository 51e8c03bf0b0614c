package heartscene

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"start", "start"},
		{"after burst", "after_burst"},
		{"a/b\\c:d", "a_b_c_d"},
		{"v1.2-final", "v1.2-final"},
		{"  padded  ", "padded"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"cœur", "c_ur"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent orange
		255, 255, 255, 255, // opaque white
		0, 0, 0, 0, // transparent
		10, 10, 10, 5, // over-bright after division clamps
	}
	img := unpremultiply(pixels, 2, 2)
	want := [][4]uint8{
		{255, 127, 0, 128},
		{255, 255, 255, 255},
		{0, 0, 0, 0},
		{255, 255, 255, 5},
	}
	for i, w := range want {
		got := img.Pix[i*4 : i*4+4]
		for c := 0; c < 4; c++ {
			if got[c] != w[c] {
				t.Errorf("pixel %d = %v, want %v", i, got, w)
				break
			}
		}
	}
}

func TestUnpremultiplyShortBuffer(t *testing.T) {
	img := unpremultiply([]byte{1, 2, 3}, 4, 4)
	if img.Bounds().Dx() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Pix[3] = 255
	path := filepath.Join(dir, "out.png")
	if err := writePNG(path, src); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}

	if err := writePNG(filepath.Join(dir, "missing", "out.png"), src); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}

func TestScreenshotQueues(t *testing.T) {
	s := newTestScene(t, testConfig())
	s.Screenshot("a")
	s.Screenshot("b")
	if len(s.screenshotQueue) != 2 {
		t.Errorf("queue = %v, want 2 entries", s.screenshotQueue)
	}
	s.screenshotQueue = nil
}
