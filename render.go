package heartscene

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// drawItem is one triangle or quad in screen space, ready for batching.
// Items are painted back to front by depth.
type drawItem struct {
	depth float64 // clip-space W (view distance); larger is farther
	img   *ebiten.Image
	blend BlendMode
	n     int // 3 for triangles, 4 for quads
	verts [4]ebiten.Vertex
}

// projector maps world positions to screen pixels for one frame.
type projector struct {
	vp     mgl64.Mat4
	near   float64
	width  float64
	height float64
	focal  float64 // pixels per world unit at distance 1
}

func newProjector(cam *Camera, width, height int) projector {
	return projector{
		vp:     cam.ViewProjection(),
		near:   cam.Near,
		width:  float64(width),
		height: float64(height),
		focal:  float64(height) / 2 / math.Tan(mgl64.DegToRad(cam.FOV)/2),
	}
}

// project returns the screen position and clip W of p. ok is false when p is
// behind the near plane.
func (pr *projector) project(p mgl64.Vec3) (x, y, w float64, ok bool) {
	c := pr.vp.Mul4x1(p.Vec4(1))
	w = c.W()
	if w < pr.near {
		return 0, 0, w, false
	}
	x = (c.X()/w + 1) / 2 * pr.width
	y = (1 - c.Y()/w) / 2 * pr.height
	return x, y, w, true
}

// Draw renders the full scene onto screen, back to front, then the overlays.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	screen.Fill(s.cfg.ClearColor.toRGBA())

	updateTree(s.root)
	b := screen.Bounds()
	pr := newProjector(s.camera, b.Dx(), b.Dy())
	s.items = s.collect(s.items[:0], &pr)
	sortItems(s.items)
	s.batch.submit(screen, s.items)

	if s.debug {
		s.stats.recordDraw(time.Since(t0), len(s.items), s.batch.draws)
	}
	if s.showFPS {
		s.drawFPS(screen)
	}
	s.flushScreenshots(screen)
}

// sortItems orders items farthest first, keeping emission order for ties.
func sortItems(items []drawItem) {
	slices.SortStableFunc(items, func(a, b drawItem) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// collect appends draw items for every visible node and live particle.
// World transforms must be current.
func (s *Scene) collect(items []drawItem, pr *projector) []drawItem {
	lights := s.frameLights()
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.Visible {
			return
		}
		switch n.Type {
		case NodeTypeMesh:
			items = s.appendMesh(items, n, pr, &lights)
		case NodeTypeSprite:
			items = appendSprite(items, n, pr)
		case NodeTypePoints:
			items = appendPoints(items, n, pr)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.root)
	return s.appendParticles(items, pr)
}

// frameLight is a light resolved to world space for shading.
type frameLight struct {
	position mgl64.Vec3
	color    Color // premultiplied by intensity
}

type lightSet struct {
	ambient Color
	points  []frameLight
}

func (s *Scene) frameLights() lightSet {
	var ls lightSet
	for _, n := range s.lights {
		if !n.Visible || n.Light == nil {
			continue
		}
		c := n.Light.Color.Scale(n.Light.Intensity)
		switch n.Light.Kind {
		case LightAmbient:
			ls.ambient = ls.ambient.Add(c)
		case LightPoint:
			ls.points = append(ls.points, frameLight{position: n.WorldPosition(), color: c})
		}
	}
	return ls
}

// shade computes Blinn-Phong lighting for a surface point with normal nrm.
func shade(mat *Material, base Color, p, nrm, eye mgl64.Vec3, ls *lightSet) Color {
	out := base.Mul(ls.ambient)
	v := eye.Sub(p)
	if v.Len() > 1e-12 {
		v = v.Normalize()
	}
	for _, l := range ls.points {
		dir := l.position.Sub(p)
		if dir.Len() < 1e-12 {
			continue
		}
		dir = dir.Normalize()
		diff := nrm.Dot(dir)
		if diff <= 0 {
			continue
		}
		out = out.Add(base.Mul(l.color).Scale(diff))
		if mat.Shininess > 0 {
			h := dir.Add(v)
			if h.Len() > 1e-12 {
				spec := math.Pow(math.Max(0, nrm.Dot(h.Normalize())), mat.Shininess)
				out = out.Add(mat.Specular.Mul(l.color).Scale(spec))
			}
		}
	}
	out.A = base.A
	return out.Clamped()
}

// appendMesh emits one flat-shaded triangle per visible face.
func (s *Scene) appendMesh(items []drawItem, n *Node, pr *projector, ls *lightSet) []drawItem {
	m := n.Mesh
	if m == nil || m.TriangleCount() == 0 {
		return items
	}
	world := n.WorldMatrix()
	eye := s.camera.Position
	base := n.Material.Color
	base.A *= n.WorldAlpha()
	if base.A <= 0 {
		return items
	}
	img := whitePixel()

	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		a = mgl64.TransformCoordinate(a, world)
		b = mgl64.TransformCoordinate(b, world)
		c = mgl64.TransformCoordinate(c, world)
		nrm := faceNormal(a, b, c)
		if nrm.Len() == 0 {
			continue
		}
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if nrm.Dot(eye.Sub(center)) <= 0 {
			if !n.Material.DoubleSided {
				continue
			}
			nrm = nrm.Mul(-1)
		}

		var it drawItem
		var ok bool
		var depth float64
		for k, p := range [3]mgl64.Vec3{a, b, c} {
			x, y, w, vis := pr.project(p)
			if !vis {
				ok = false
				break
			}
			ok = true
			depth += w
			it.verts[k] = vertex(x, y, whitePixelUV, whitePixelUV, Color{})
		}
		if !ok {
			continue
		}
		col := shade(&n.Material, base, center, nrm, eye, ls)
		for k := 0; k < 3; k++ {
			setVertexColor(&it.verts[k], col)
		}
		it.n = 3
		it.depth = depth / 3
		it.img = img
		it.blend = n.BlendMode
		items = append(items, it)
	}
	return items
}

// spriteCorners are the local corners of a unit quad centered on the origin,
// in the vertex order TL, TR, BL, BR.
var spriteCorners = [4]mgl64.Vec3{{-0.5, 0.5, 0}, {0.5, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0}}

// appendSprite emits the node's textured quad. The quad spans Scale.X by
// Scale.Y in the node's local XY plane.
func appendSprite(items []drawItem, n *Node, pr *projector) []drawItem {
	if n.Texture == nil {
		return items
	}
	alpha := n.WorldAlpha() * n.Color.A
	if alpha <= 0 {
		return items
	}
	_, _, depth, ok := pr.project(n.WorldPosition())
	if !ok {
		return items
	}
	world := n.WorldMatrix()
	w, h := n.Texture.Size()
	src := [4][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}}
	col := n.Color
	col.A = alpha

	it := drawItem{depth: depth, img: n.Texture.Image(), blend: n.BlendMode, n: 4}
	for k, corner := range spriteCorners {
		x, y, _, vis := pr.project(mgl64.TransformCoordinate(corner, world))
		if !vis {
			return items
		}
		it.verts[k] = vertex(x, y, src[k][0], src[k][1], col)
	}
	return append(items, it)
}

// appendPoints emits one screen-aligned quad per point.
func appendPoints(items []drawItem, n *Node, pr *projector) []drawItem {
	pts := n.Points
	if pts == nil || n.Texture == nil || pts.Len() == 0 {
		return items
	}
	world := n.WorldMatrix()
	nodeAlpha := n.WorldAlpha()
	img := n.Texture.Image()
	tw, th := n.Texture.Size()
	for i, p := range pts.Positions {
		c := ColorWhite
		if i < len(pts.Colors) {
			c = pts.Colors[i]
		}
		c.A *= nodeAlpha
		if i < len(pts.Alphas) {
			c.A *= pts.Alphas[i]
		}
		size := 1.0
		if i < len(pts.Sizes) {
			size = pts.Sizes[i]
		}
		items = appendBillboard(items, pr, mgl64.TransformCoordinate(p, world), size, c, img, tw, th, n.BlendMode)
	}
	return items
}

// appendParticles emits the live burst particles.
func (s *Scene) appendParticles(items []drawItem, pr *projector) []drawItem {
	for i := range s.burst.particles {
		p := &s.burst.particles[i]
		if p.Texture == nil {
			continue
		}
		c := p.Color
		c.A *= p.Alpha
		tw, th := p.Texture.Size()
		items = appendBillboard(items, pr, p.Position, p.Size, c, p.Texture.Image(), tw, th, BlendAdd)
	}
	return items
}

// appendBillboard emits a screen-aligned quad of world diameter size centered
// on p.
func appendBillboard(items []drawItem, pr *projector, p mgl64.Vec3, size float64, c Color, img *ebiten.Image, tw, th int, blend BlendMode) []drawItem {
	if c.A <= 0 || size <= 0 {
		return items
	}
	x, y, w, ok := pr.project(p)
	if !ok {
		return items
	}
	r := size * pr.focal / w / 2
	if r < 0.25 {
		return items
	}
	fw, fh := float64(tw), float64(th)
	return append(items, drawItem{
		depth: w,
		img:   img,
		blend: blend,
		n:     4,
		verts: [4]ebiten.Vertex{
			vertex(x-r, y-r, 0, 0, c),
			vertex(x+r, y-r, fw, 0, c),
			vertex(x-r, y+r, 0, fh, c),
			vertex(x+r, y+r, fw, fh, c),
		},
	})
}

// vertex builds an ebiten vertex with a premultiplied color.
func vertex(x, y, sx, sy float64, c Color) ebiten.Vertex {
	v := ebiten.Vertex{DstX: float32(x), DstY: float32(y), SrcX: float32(sx), SrcY: float32(sy)}
	setVertexColor(&v, c)
	return v
}

func setVertexColor(v *ebiten.Vertex, c Color) {
	a := float32(clamp01(c.A))
	v.ColorR = float32(clamp01(c.R)) * a
	v.ColorG = float32(clamp01(c.G)) * a
	v.ColorB = float32(clamp01(c.B)) * a
	v.ColorA = a
}
