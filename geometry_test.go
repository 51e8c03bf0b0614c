package heartscene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// --- Heart outline ---

func TestHeartOutlineCount(t *testing.T) {
	for _, segs := range []int{1, 4, 12} {
		pts := HeartOutline(segs)
		if len(pts) != 4*segs {
			t.Errorf("HeartOutline(%d) has %d points, want %d", segs, len(pts), 4*segs)
		}
	}
}

func TestHeartOutlineDegenerate(t *testing.T) {
	if pts := HeartOutline(0); pts != nil {
		t.Errorf("HeartOutline(0) = %v, want nil", pts)
	}
}

func TestHeartOutlineOpenAndCCW(t *testing.T) {
	pts := HeartOutline(12)
	if pts[0].ApproxEqualThreshold(pts[len(pts)-1], 1e-9) {
		t.Error("outline should not repeat its first point")
	}
	if a := signedArea(pts); a <= 0 {
		t.Errorf("signed area = %v, want > 0 (counter-clockwise)", a)
	}
}

func TestHeartOutlineSymmetric(t *testing.T) {
	// Every point has a mirror image across the Y axis.
	pts := HeartOutline(8)
	for _, p := range pts {
		found := false
		for _, q := range pts {
			if math.Abs(q.X()+p.X()) < 1e-9 && math.Abs(q.Y()-p.Y()) < 1e-9 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no mirror for %v", p)
		}
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	c := heartCurves[1]
	if got := cubicBezier(c, 0); !got.ApproxEqualThreshold(c[0], 1e-12) {
		t.Errorf("t=0: %v, want %v", got, c[0])
	}
	if got := cubicBezier(c, 1); !got.ApproxEqualThreshold(c[3], 1e-12) {
		t.Errorf("t=1: %v, want %v", got, c[3])
	}
}

// --- Ear clipping ---

func TestEarClipSquare(t *testing.T) {
	sq := []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tris := earClip(sq)
	if len(tris) != 6 {
		t.Fatalf("len = %d, want 6", len(tris))
	}
	var area float64
	for i := 0; i < len(tris); i += 3 {
		a, b, c := sq[tris[i]], sq[tris[i+1]], sq[tris[i+2]]
		cr := cross2(b.Sub(a), c.Sub(a))
		if cr <= 0 {
			t.Errorf("triangle %d not counter-clockwise", i/3)
		}
		area += cr / 2
	}
	assertNear(t, "area", area, 1)
}

func TestEarClipConcave(t *testing.T) {
	// An L shape: the reflex vertex must not be clipped as an ear.
	l := []mgl64.Vec2{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	tris := earClip(l)
	if len(tris) != 3*(len(l)-2) {
		t.Fatalf("len = %d, want %d", len(tris), 3*(len(l)-2))
	}
	var area float64
	for i := 0; i < len(tris); i += 3 {
		a, b, c := l[tris[i]], l[tris[i+1]], l[tris[i+2]]
		area += cross2(b.Sub(a), c.Sub(a)) / 2
	}
	assertNear(t, "area", area, 3)
}

func TestEarClipHeartCoversArea(t *testing.T) {
	pts := cleanContour(HeartOutline(12))
	tris := earClip(pts)
	if len(tris) != 3*(len(pts)-2) {
		t.Fatalf("len = %d, want %d", len(tris), 3*(len(pts)-2))
	}
	var area float64
	for i := 0; i < len(tris); i += 3 {
		a, b, c := pts[tris[i]], pts[tris[i+1]], pts[tris[i+2]]
		area += cross2(b.Sub(a), c.Sub(a)) / 2
	}
	if math.Abs(area-signedArea(pts)/2) > 1e-6 {
		t.Errorf("triangulated area = %v, want %v", area, signedArea(pts)/2)
	}
}

func TestEarClipDegenerate(t *testing.T) {
	if tris := earClip([]mgl64.Vec2{{0, 0}, {1, 0}}); tris != nil {
		t.Errorf("two points: %v, want nil", tris)
	}
}

func TestCleanContourReversesClockwise(t *testing.T) {
	cw := []mgl64.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	got := cleanContour(cw)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4 (closing point dropped)", len(got))
	}
	if signedArea(got) <= 0 {
		t.Error("cleaned contour should be counter-clockwise")
	}
}

// --- Extrusion ---

func TestExtrudeOutlineCounts(t *testing.T) {
	sq := []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tests := []struct {
		name   string
		cfg    ExtrudeConfig
		layers int
	}{
		{"flat", ExtrudeConfig{Depth: 1, Steps: 1}, 2},
		{"steps", ExtrudeConfig{Depth: 1, Steps: 3}, 4},
		{"bevel", ExtrudeConfig{Depth: 1, Steps: 2, BevelEnabled: true, BevelSize: 0.1, BevelThickness: 0.1, BevelSegments: 3}, 4 + 2 + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ExtrudeOutline(sq, tt.cfg)
			if len(m.Positions) != 4*tt.layers {
				t.Errorf("positions = %d, want %d", len(m.Positions), 4*tt.layers)
			}
			capTris := 2
			sideQuads := 4 * (tt.layers - 1)
			want := 3 * (capTris*2 + sideQuads*2)
			if len(m.Indices) != want {
				t.Errorf("indices = %d, want %d", len(m.Indices), want)
			}
			for _, idx := range m.Indices {
				if int(idx) >= len(m.Positions) {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}

func TestExtrudeOutlineFacesOutward(t *testing.T) {
	// Every face normal of a convex extrusion points away from its centroid.
	sq := []mgl64.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	m := ExtrudeOutline(sq, ExtrudeConfig{Depth: 2, Steps: 1})
	m.Center()
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		n := faceNormal(a, b, c)
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(center) <= 0 {
			t.Errorf("triangle %d normal %v points inward (center %v)", i, n, center)
		}
	}
}

func TestExtrudeOutlineBevelBounds(t *testing.T) {
	sq := []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	cfg := ExtrudeConfig{Depth: 0.6, Steps: 2, BevelEnabled: true, BevelSize: 0.3, BevelThickness: 0.2, BevelSegments: 4}
	m := ExtrudeOutline(sq, cfg)
	lo, hi := m.Bounds()
	assertNear(t, "min z", lo.Z(), -0.2)
	assertNear(t, "max z", hi.Z(), 0.8)
	if lo.X() > -0.3+1e-9 || hi.X() < 1.3-1e-9 {
		t.Errorf("bevel should widen the outline: x in [%v, %v]", lo.X(), hi.X())
	}
}

func TestExtrudeOutlineDegenerate(t *testing.T) {
	m := ExtrudeOutline([]mgl64.Vec2{{0, 0}, {1, 1}}, ExtrudeConfig{Depth: 1})
	if len(m.Positions) != 0 || len(m.Indices) != 0 {
		t.Errorf("degenerate outline produced %d positions", len(m.Positions))
	}
	if m := ExtrudeOutline(nil, ExtrudeConfig{}); m.TriangleCount() != 0 {
		t.Error("nil outline should yield an empty mesh")
	}
}

func TestHeartMeshCentered(t *testing.T) {
	m := HeartMesh(12, DefaultConfig().Heart.Extrude)
	if m.TriangleCount() == 0 {
		t.Fatal("heart mesh is empty")
	}
	lo, hi := m.Bounds()
	assertVec3(t, "center", lo.Add(hi).Mul(0.5), mgl64.Vec3{})
}

func TestBevelVectorsMiterClamp(t *testing.T) {
	// A very sharp spike must not push its tip further than maxMiter.
	spike := []mgl64.Vec2{{0, 0}, {10, 0.05}, {0, 0.1}}
	for i, v := range bevelVectors(cleanContour(spike)) {
		if v.Len() > maxMiter+1e-9 {
			t.Errorf("vector %d length %v exceeds %v", i, v.Len(), maxMiter)
		}
	}
}

// --- Plane ---

func TestPlaneMesh(t *testing.T) {
	m := PlaneMesh(4)
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", m.TriangleCount())
	}
	for i := 0; i < 2; i++ {
		n := faceNormal(m.Triangle(i))
		assertVec3(t, "normal", n, mgl64.Vec3{0, 1, 0})
	}
	lo, hi := m.Bounds()
	assertVec3(t, "lo", lo, mgl64.Vec3{-2, 0, -2})
	assertVec3(t, "hi", hi, mgl64.Vec3{2, 0, 2})

	if m := PlaneMesh(0); m.TriangleCount() != 0 {
		t.Error("zero size should yield an empty mesh")
	}
}

// --- Point buffers ---

func TestStarfieldShell(t *testing.T) {
	pts := Starfield(newTestRand(), 500, 60, 160)
	if len(pts) != 500 {
		t.Fatalf("len = %d, want 500", len(pts))
	}
	for i, p := range pts {
		if r := p.Len(); r < 60-1e-9 || r > 160+1e-9 {
			t.Errorf("star %d radius %v outside [60, 160]", i, r)
		}
	}
}

func TestStarfieldSwappedRadii(t *testing.T) {
	for _, p := range Starfield(newTestRand(), 50, 10, 5) {
		if r := p.Len(); r < 5-1e-9 || r > 10+1e-9 {
			t.Errorf("radius %v outside [5, 10]", r)
		}
	}
}

func TestParticleCloudBounds(t *testing.T) {
	pts := ParticleCloud(newTestRand(), 300, 7, 4)
	for i, p := range pts {
		if math.Hypot(p.X(), p.Z()) > 7+1e-9 {
			t.Errorf("point %d outside disc radius: %v", i, p)
		}
		if math.Abs(p.Y()) > 2+1e-9 {
			t.Errorf("point %d outside height: %v", i, p)
		}
	}
}

func TestPointBuffersZeroCount(t *testing.T) {
	rng := newTestRand()
	if pts := Starfield(rng, 0, 1, 2); pts != nil {
		t.Errorf("Starfield(0) = %v, want nil", pts)
	}
	if pts := ParticleCloud(rng, -3, 1, 1); pts != nil {
		t.Errorf("ParticleCloud(-3) = %v, want nil", pts)
	}
}

func TestPointBuffersDeterministic(t *testing.T) {
	a := Starfield(rand.New(rand.NewPCG(9, 9)), 20, 1, 2)
	b := Starfield(rand.New(rand.NewPCG(9, 9)), 20, 1, 2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	rng := newTestRand()
	for i := 0; i < 100; i++ {
		assertNear(t, "length", randomUnitVector(rng).Len(), 1)
	}
}
