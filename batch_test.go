package heartscene

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func quadItem(img *ebiten.Image, blend BlendMode) drawItem {
	return drawItem{img: img, blend: blend, n: 4}
}

func TestBatcherGroupsConsecutiveKeys(t *testing.T) {
	a := ebiten.NewImage(2, 2)
	b := ebiten.NewImage(2, 2)
	target := ebiten.NewImage(16, 16)

	tests := []struct {
		name  string
		items []drawItem
		draws int
	}{
		{"empty", nil, 0},
		{"same image", []drawItem{quadItem(a, BlendNormal), quadItem(a, BlendNormal), quadItem(a, BlendNormal)}, 1},
		{"two images", []drawItem{quadItem(a, BlendNormal), quadItem(a, BlendNormal), quadItem(b, BlendNormal)}, 2},
		{"interleaved", []drawItem{quadItem(a, BlendNormal), quadItem(b, BlendNormal), quadItem(a, BlendNormal)}, 3},
		{"blend change", []drawItem{quadItem(a, BlendNormal), quadItem(a, BlendAdd)}, 2},
		{"nil image skipped", []drawItem{quadItem(nil, BlendNormal), quadItem(a, BlendNormal)}, 1},
	}
	var bt batcher
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bt.submit(target, tt.items)
			if bt.draws != tt.draws {
				t.Errorf("draws = %d, want %d", bt.draws, tt.draws)
			}
			if len(bt.verts) != 0 || len(bt.inds) != 0 {
				t.Error("buffers should be empty after submit")
			}
		})
	}
}

func TestBatcherIndices(t *testing.T) {
	var bt batcher
	tri := drawItem{n: 3}
	quad := drawItem{n: 4}
	bt.add(&tri)
	bt.add(&quad)
	want := []uint32{0, 1, 2, 3, 4, 5, 4, 6, 5}
	if len(bt.inds) != len(want) {
		t.Fatalf("indices = %v, want %v", bt.inds, want)
	}
	for i := range want {
		if bt.inds[i] != want[i] {
			t.Fatalf("indices = %v, want %v", bt.inds, want)
		}
	}
	if len(bt.verts) != 7 {
		t.Errorf("verts = %d, want 7", len(bt.verts))
	}
}

func TestBatcherSplitsLargeBatches(t *testing.T) {
	a := ebiten.NewImage(2, 2)
	target := ebiten.NewImage(4, 4)
	items := make([]drawItem, maxBatchVertices/4+10)
	for i := range items {
		items[i] = quadItem(a, BlendNormal)
	}
	var bt batcher
	bt.submit(target, items)
	if bt.draws != 2 {
		t.Errorf("draws = %d, want 2", bt.draws)
	}
}

func TestWhitePixelCached(t *testing.T) {
	if whitePixel() != whitePixel() {
		t.Error("whitePixel should return the same image")
	}
	if b := whitePixel().Bounds(); b.Dx() != 3 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 3x3", b)
	}
}
