package heartscene

import (
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// starfield is the background point cloud. Each star's alpha drifts with 2D
// perlin noise sampled at (time, star index).
type starfield struct {
	node  *Node
	base  []float64
	noise *perlin.Perlin
	cfg   StarsConfig
}

func newStarfield(cfg StarsConfig, rng *rand.Rand, tex *Texture) *starfield {
	pos := Starfield(rng, cfg.Count, cfg.MinRadius, cfg.MaxRadius)
	pts := &Points{
		Positions: pos,
		Colors:    make([]Color, len(pos)),
		Sizes:     make([]float64, len(pos)),
		Alphas:    make([]float64, len(pos)),
	}
	base := make([]float64, len(pos))
	for i := range pos {
		pts.Colors[i] = cfg.Color
		pts.Sizes[i] = cfg.Size.Random(rng)
		base[i] = 0.55 + rng.Float64()*0.45
		pts.Alphas[i] = base[i]
	}
	n := NewPointsNode("stars", pts, tex)
	n.BlendMode = BlendAdd
	return &starfield{
		node:  n,
		base:  base,
		noise: perlin.NewPerlin(2, 2, 3, int64(rng.Uint64())),
		cfg:   cfg,
	}
}

// update sets every star's alpha for the absolute scene time t.
func (s *starfield) update(t float64) {
	if s.cfg.Twinkle == 0 {
		return
	}
	x := t * s.cfg.TwinkleSpeed
	alphas := s.node.Points.Alphas
	for i, b := range s.base {
		n := s.noise.Noise2D(x, float64(i)*0.37)
		alphas[i] = clamp01(b * (1 + s.cfg.Twinkle*n))
	}
}

// newParticleCloud builds the slowly spinning cloud of glow points around the
// heart.
func newParticleCloud(cfg CloudConfig, rng *rand.Rand, tex *Texture) *Node {
	pos := ParticleCloud(rng, cfg.Count, cfg.Radius, cfg.Height)
	pts := &Points{
		Positions: pos,
		Colors:    make([]Color, len(pos)),
		Sizes:     make([]float64, len(pos)),
		Alphas:    make([]float64, len(pos)),
	}
	for i := range pos {
		pts.Colors[i] = ColorWhite
		if len(cfg.Palette) > 0 {
			pts.Colors[i] = cfg.Palette[rng.IntN(len(cfg.Palette))]
		}
		pts.Sizes[i] = cfg.Size.Random(rng)
		pts.Alphas[i] = 0.5 + rng.Float64()*0.5
	}
	n := NewPointsNode("cloud", pts, tex)
	n.BlendMode = BlendAdd
	return n
}

// spinCloud sets the cloud's yaw.
func spinCloud(n *Node, yaw float64) {
	n.SetRotation(mgl64.QuatRotate(yaw, axisY))
}
