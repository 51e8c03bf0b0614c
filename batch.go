package heartscene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices bounds a single DrawTriangles32 submission.
const maxBatchVertices = 65532

// batchKey groups draw items that can be submitted in a single draw call.
type batchKey struct {
	img   *ebiten.Image
	blend BlendMode
}

// batcher accumulates consecutive items that share a batchKey into one
// vertex/index buffer and submits it with DrawTriangles32.
type batcher struct {
	verts []ebiten.Vertex
	inds  []uint32
	key   batchKey
	draws int // draw calls issued by the last submit
}

// submit draws items, in order, onto target.
func (b *batcher) submit(target *ebiten.Image, items []drawItem) {
	b.draws = 0
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	for i := range items {
		it := &items[i]
		if it.img == nil {
			continue
		}
		key := batchKey{img: it.img, blend: it.blend}
		if key != b.key || len(b.verts)+it.n > maxBatchVertices {
			b.flush(target)
			b.key = key
		}
		b.add(it)
	}
	b.flush(target)
	b.key = batchKey{}
}

// add appends one item's vertices and indices.
func (b *batcher) add(it *drawItem) {
	base := uint32(len(b.verts))
	b.verts = append(b.verts, it.verts[:it.n]...)
	if it.n == 3 {
		b.inds = append(b.inds, base, base+1, base+2)
		return
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits the accumulated vertices as a single DrawTriangles32 call.
func (b *batcher) flush(target *ebiten.Image) {
	if len(b.verts) == 0 || b.key.img == nil {
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = b.key.blend.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(b.verts, b.inds, b.key.img, &triOp)
	b.draws++

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// whitePixelImage is the white source used for untextured triangles. Shaded
// triangles sample its center texel at (whitePixelUV, whitePixelUV).
var whitePixelImage *ebiten.Image

const whitePixelUV = 1.5

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(3, 3)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}
