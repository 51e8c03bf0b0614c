package heartscene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed triangle list. Triangles wind counter-clockwise when seen
// from the side their normal points to.
type Mesh struct {
	Positions []mgl64.Vec3
	Indices   []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Positions[m.Indices[i*3]], m.Positions[m.Indices[i*3+1]], m.Positions[m.Indices[i*3+2]]
}

// Bounds returns the axis-aligned bounding box. An empty mesh returns two zero
// vectors.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

// Center translates every position so the bounding box is centered on the
// origin.
func (m *Mesh) Center() {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi := m.Bounds()
	c := lo.Add(hi).Mul(0.5)
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Sub(c)
	}
}

// faceNormal returns the unit normal of triangle (a, b, c), or the zero vector
// for a degenerate triangle.
func faceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return n.Mul(1 / l)
}

// --- Heart outline ---

// heartCurves is the heart outline as four cubic Bézier segments, traced
// counter-clockwise from the top notch: left lobe, bottom-left, bottom-right,
// right lobe.
var heartCurves = [4][4]mgl64.Vec2{
	{{0, 0}, {0, 0.5}, {-1.2, 0.5}, {-1.2, 0}},
	{{-1.2, 0}, {-1.2, -0.8}, {0, -1}, {0, -1.6}},
	{{0, -1.6}, {0, -1}, {1.2, -0.8}, {1.2, 0}},
	{{1.2, 0}, {1.2, 0.5}, {0, 0.5}, {0, 0}},
}

// cubicBezier evaluates a cubic Bézier curve at t.
func cubicBezier(p [4]mgl64.Vec2, t float64) mgl64.Vec2 {
	u := 1 - t
	return p[0].Mul(u * u * u).
		Add(p[1].Mul(3 * u * u * t)).
		Add(p[2].Mul(3 * u * t * t)).
		Add(p[3].Mul(t * t * t))
}

// HeartOutline samples the heart outline with curveSegments points per curve.
// The returned polygon is open (the first point is not repeated) and wound
// counter-clockwise. curveSegments < 1 yields nil.
func HeartOutline(curveSegments int) []mgl64.Vec2 {
	if curveSegments < 1 {
		return nil
	}
	pts := make([]mgl64.Vec2, 0, len(heartCurves)*curveSegments)
	for _, c := range heartCurves {
		for s := 0; s < curveSegments; s++ {
			pts = append(pts, cubicBezier(c, float64(s)/float64(curveSegments)))
		}
	}
	return pts
}

// signedArea returns twice the signed area of the polygon. Positive means
// counter-clockwise.
func signedArea(pts []mgl64.Vec2) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X()*pts[j].Y() - pts[j].X()*pts[i].Y()
	}
	return a
}

// cleanContour drops consecutive duplicate points (including a repeated
// closing point) and returns a counter-clockwise copy.
func cleanContour(outline []mgl64.Vec2) []mgl64.Vec2 {
	const eps = 1e-9
	out := make([]mgl64.Vec2, 0, len(outline))
	for _, p := range outline {
		if len(out) > 0 && out[len(out)-1].ApproxEqualThreshold(p, eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].ApproxEqualThreshold(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	if len(out) >= 3 && signedArea(out) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// --- Extrusion ---

// ExtrudeConfig controls ExtrudeOutline.
type ExtrudeConfig struct {
	Depth          float64 `yaml:"depth"`
	Steps          int     `yaml:"steps"`
	BevelEnabled   bool    `yaml:"bevelEnabled"`
	BevelSize      float64 `yaml:"bevelSize"`
	BevelThickness float64 `yaml:"bevelThickness"`
	BevelSegments  int     `yaml:"bevelSegments"`
}

// maxMiter limits how far a bevel vertex may be pushed out at sharp corners.
const maxMiter = 2.0

// extrudeLayer is one ring of the extruded solid.
type extrudeLayer struct {
	z      float64
	offset float64
}

// extrudeLayers lists the rings from the front face (lowest z) to the back.
// With a bevel the front and back faces sit BevelThickness beyond [0, Depth]
// and the rings between them bulge outward by up to BevelSize along a quarter
// circle.
func extrudeLayers(cfg ExtrudeConfig) []extrudeLayer {
	steps := max(cfg.Steps, 1)
	var layers []extrudeLayer
	if cfg.BevelEnabled && cfg.BevelSegments > 0 && (cfg.BevelSize != 0 || cfg.BevelThickness != 0) {
		segs := cfg.BevelSegments
		for b := 0; b <= segs; b++ {
			t := float64(b) / float64(segs) * math.Pi / 2
			layers = append(layers, extrudeLayer{-cfg.BevelThickness * math.Cos(t), cfg.BevelSize * math.Sin(t)})
		}
		for s := 1; s <= steps; s++ {
			layers = append(layers, extrudeLayer{cfg.Depth * float64(s) / float64(steps), cfg.BevelSize})
		}
		for b := segs - 1; b >= 0; b-- {
			t := float64(b) / float64(segs) * math.Pi / 2
			layers = append(layers, extrudeLayer{cfg.Depth + cfg.BevelThickness*math.Cos(t), cfg.BevelSize * math.Sin(t)})
		}
		return layers
	}
	for s := 0; s <= steps; s++ {
		layers = append(layers, extrudeLayer{cfg.Depth * float64(s) / float64(steps), 0})
	}
	return layers
}

// bevelVectors returns, per contour vertex, the outward miter direction used
// to grow the contour by a given offset.
func bevelVectors(contour []mgl64.Vec2) []mgl64.Vec2 {
	n := len(contour)
	out := make([]mgl64.Vec2, n)
	for i := range contour {
		prev := contour[(i-1+n)%n]
		next := contour[(i+1)%n]
		n1 := outwardNormal(prev, contour[i])
		n2 := outwardNormal(contour[i], next)
		d := n1.Add(n2)
		if d.Len() < 1e-9 {
			out[i] = n1
			continue
		}
		d = d.Normalize()
		miter := 1 / math.Max(d.Dot(n1), 1/maxMiter)
		out[i] = d.Mul(miter)
	}
	return out
}

// outwardNormal returns the unit outward normal of edge a->b on a
// counter-clockwise contour.
func outwardNormal(a, b mgl64.Vec2) mgl64.Vec2 {
	e := b.Sub(a)
	n := mgl64.Vec2{e.Y(), -e.X()}
	if l := n.Len(); l > 1e-12 {
		return n.Mul(1 / l)
	}
	return mgl64.Vec2{}
}

// ExtrudeOutline sweeps a closed 2D outline along +Z into a solid with front
// and back caps. An outline with fewer than three distinct points yields an
// empty mesh.
func ExtrudeOutline(outline []mgl64.Vec2, cfg ExtrudeConfig) *Mesh {
	contour := cleanContour(outline)
	n := len(contour)
	if n < 3 {
		return &Mesh{}
	}
	layers := extrudeLayers(cfg)
	bevel := bevelVectors(contour)
	caps := earClip(contour)

	m := &Mesh{
		Positions: make([]mgl64.Vec3, 0, n*len(layers)),
		Indices:   make([]uint32, 0, 2*len(caps)+6*n*(len(layers)-1)),
	}
	for _, l := range layers {
		for i, p := range contour {
			q := p.Add(bevel[i].Mul(l.offset))
			m.Positions = append(m.Positions, mgl64.Vec3{q.X(), q.Y(), l.z})
		}
	}

	// Front cap faces -Z, so its winding is reversed.
	for t := 0; t+2 < len(caps); t += 3 {
		m.Indices = append(m.Indices, uint32(caps[t]), uint32(caps[t+2]), uint32(caps[t+1]))
	}
	back := uint32((len(layers) - 1) * n)
	for t := 0; t+2 < len(caps); t += 3 {
		m.Indices = append(m.Indices, back+uint32(caps[t]), back+uint32(caps[t+1]), back+uint32(caps[t+2]))
	}

	for k := 0; k < len(layers)-1; k++ {
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a := uint32(k*n + i)
			b := uint32(k*n + j)
			c := uint32((k+1)*n + j)
			d := uint32((k+1)*n + i)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	return m
}

// HeartMesh builds the extruded heart, centered on the origin.
func HeartMesh(curveSegments int, cfg ExtrudeConfig) *Mesh {
	m := ExtrudeOutline(HeartOutline(curveSegments), cfg)
	m.Center()
	return m
}

// PlaneMesh builds a size x size square in the XZ plane facing +Y, centered on
// the origin. size <= 0 yields an empty mesh.
func PlaneMesh(size float64) *Mesh {
	if size <= 0 {
		return &Mesh{}
	}
	h := size / 2
	return &Mesh{
		Positions: []mgl64.Vec3{{-h, 0, -h}, {-h, 0, h}, {h, 0, h}, {h, 0, -h}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// --- Point buffers ---

// Starfield scatters count points uniformly in direction over a spherical
// shell between minR and maxR. count <= 0 yields nil.
func Starfield(rng *rand.Rand, count int, minR, maxR float64) []mgl64.Vec3 {
	if count <= 0 {
		return nil
	}
	if minR > maxR {
		minR, maxR = maxR, minR
	}
	pts := make([]mgl64.Vec3, count)
	for i := range pts {
		pts[i] = randomUnitVector(rng).Mul(minR + rng.Float64()*(maxR-minR))
	}
	return pts
}

// ParticleCloud scatters count points uniformly over a disc of the given radius
// in the XZ plane, spread vertically over height centered on y = 0.
// count <= 0 yields nil.
func ParticleCloud(rng *rand.Rand, count int, radius, height float64) []mgl64.Vec3 {
	if count <= 0 {
		return nil
	}
	pts := make([]mgl64.Vec3, count)
	for i := range pts {
		r := radius * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		y := (rng.Float64() - 0.5) * height
		pts[i] = mgl64.Vec3{r * math.Cos(theta), y, r * math.Sin(theta)}
	}
	return pts
}

// randomUnitVector samples a direction uniformly on the unit sphere.
func randomUnitVector(rng *rand.Rand) mgl64.Vec3 {
	z := rng.Float64()*2 - 1
	phi := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}
}
