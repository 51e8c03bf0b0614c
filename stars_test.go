package heartscene

import "testing"

func TestStarfieldTwinkleBounds(t *testing.T) {
	cfg := DefaultConfig().Stars
	cfg.Count = 200
	tex := NewTexture(GlowImage(4))
	sf := newStarfield(cfg, newTestRand(), tex)
	if tex.Refs() != 2 {
		t.Errorf("refs = %d, want 2", tex.Refs())
	}

	changed := false
	initial := append([]float64(nil), sf.node.Points.Alphas...)
	for step := 0; step < 50; step++ {
		sf.update(float64(step) * 0.1)
		for i, a := range sf.node.Points.Alphas {
			if a < 0 || a > 1 {
				t.Fatalf("star %d alpha = %v outside [0, 1]", i, a)
			}
			if a != initial[i] {
				changed = true
			}
		}
	}
	if !changed {
		t.Error("twinkle should vary star alpha over time")
	}
}

func TestStarfieldDeterministic(t *testing.T) {
	cfg := DefaultConfig().Stars
	cfg.Count = 50
	tex := NewTexture(GlowImage(4))
	a := newStarfield(cfg, newTestRand(), tex)
	b := newStarfield(cfg, newTestRand(), tex)
	a.update(3.7)
	b.update(3.7)
	for i := range a.node.Points.Alphas {
		if a.node.Points.Alphas[i] != b.node.Points.Alphas[i] {
			t.Fatalf("star %d differs: %v vs %v", i, a.node.Points.Alphas[i], b.node.Points.Alphas[i])
		}
	}
}

func TestStarfieldTwinkleDisabled(t *testing.T) {
	cfg := DefaultConfig().Stars
	cfg.Count = 20
	cfg.Twinkle = 0
	sf := newStarfield(cfg, newTestRand(), NewTexture(GlowImage(4)))
	before := append([]float64(nil), sf.node.Points.Alphas...)
	sf.update(10)
	for i, a := range sf.node.Points.Alphas {
		if a != before[i] {
			t.Fatalf("star %d alpha changed with twinkle off", i)
		}
	}
}

func TestParticleCloud(t *testing.T) {
	cfg := DefaultConfig().Cloud
	cfg.Count = 30
	n := newParticleCloud(cfg, newTestRand(), NewTexture(GlowImage(4)))
	if n.Points.Len() != 30 || n.BlendMode != BlendAdd {
		t.Errorf("cloud = %d points, blend %v", n.Points.Len(), n.BlendMode)
	}
	for i, c := range n.Points.Colors {
		found := false
		for _, p := range cfg.Palette {
			if c == p {
				found = true
			}
		}
		if !found {
			t.Fatalf("point %d color %v not in palette", i, c)
		}
	}
	spinCloud(n, 0.5)
	assertNear(t, "yaw", n.Rotation.Rotate(axisX).Z(), -0.479425538604203)
}
