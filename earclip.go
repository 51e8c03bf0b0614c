package heartscene

import "github.com/go-gl/mathgl/mgl64"

// earClip triangulates a simple counter-clockwise polygon and returns a flat
// list of vertex indices, three per triangle, each wound counter-clockwise.
// If no ear can be found (self-intersecting or degenerate input) the remaining
// vertices are fanned so the result always covers n-2 triangles.
func earClip(pts []mgl64.Vec2) []int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([]int, 0, (n-2)*3)

	for len(idx) > 3 {
		m := len(idx)
		clipped := false
		for i := 0; i < m; i++ {
			a, b, c := idx[(i-1+m)%m], idx[i], idx[(i+1)%m]
			if !isEar(pts, idx, a, b, c) {
				continue
			}
			tris = append(tris, a, b, c)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		tris = append(tris, idx[0], idx[i], idx[i+1])
	}
	return tris
}

// isEar reports whether the corner a-b-c is convex and contains no other
// remaining polygon vertex.
func isEar(pts []mgl64.Vec2, idx []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	if cross2(pb.Sub(pa), pc.Sub(pb)) <= 1e-12 {
		return false
	}
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		p := pts[k]
		if p.ApproxEqualThreshold(pa, 1e-12) || p.ApproxEqualThreshold(pb, 1e-12) || p.ApproxEqualThreshold(pc, 1e-12) {
			continue
		}
		if pointInTriangle(p, pa, pb, pc) {
			return false
		}
	}
	return true
}

// pointInTriangle reports whether p lies inside or on the edge of the
// counter-clockwise triangle (a, b, c).
func pointInTriangle(p, a, b, c mgl64.Vec2) bool {
	return cross2(b.Sub(a), p.Sub(a)) >= 0 &&
		cross2(c.Sub(b), p.Sub(b)) >= 0 &&
		cross2(a.Sub(c), p.Sub(c)) >= 0
}

// cross2 returns the z component of the 2D cross product.
func cross2(u, v mgl64.Vec2) float64 {
	return u.X()*v.Y() - u.Y()*v.X()
}
