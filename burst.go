package heartscene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle is one short-lived burst sprite.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Life     float64 // remaining lifetime; the particle retires at <= 0
	MaxLife  float64 // initial lifetime (for computing alpha)
	Size     float64 // world-space diameter
	Alpha    float64
	Color    Color
	Texture  *Texture
}

// release gives back the particle's texture reference. Particles without a
// texture are skipped.
func (p *Particle) release() {
	if p.Texture != nil {
		p.Texture.Release()
		p.Texture = nil
	}
}

// BurstEmitter owns the active particle collection. Particles are kept in
// spawn order so the oldest can be retired first when MaxActive is set.
type BurstEmitter struct {
	config    BurstConfig
	rng       *rand.Rand
	texture   *Texture
	particles []Particle

	spawned uint64
	retired uint64
}

// newBurstEmitter creates an emitter drawing particles with tex.
func newBurstEmitter(cfg BurstConfig, rng *rand.Rand, tex *Texture) *BurstEmitter {
	return &BurstEmitter{
		config:    cfg,
		rng:       rng,
		texture:   tex,
		particles: make([]Particle, 0, cfg.Count*4),
	}
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *BurstEmitter) Config() *BurstConfig {
	return &e.config
}

// ActiveCount returns the number of live particles.
func (e *BurstEmitter) ActiveCount() int {
	return len(e.particles)
}

// Particles returns the live particles, oldest first. The returned slice MUST
// NOT be mutated.
func (e *BurstEmitter) Particles() []Particle {
	return e.particles
}

// Totals returns how many particles have been spawned and retired so far.
func (e *BurstEmitter) Totals() (spawned, retired uint64) {
	return e.spawned, e.retired
}

// Trigger spawns Count particles at origin with speeds scaled by power.
// power <= 0 is treated as 1. Returns the number spawned.
func (e *BurstEmitter) Trigger(origin mgl64.Vec3, power float64) int {
	if power <= 0 {
		power = 1
	}
	count := e.config.Count
	if limit := e.config.MaxActive; limit > 0 {
		count = min(count, limit)
		if over := len(e.particles) + count - limit; over > 0 {
			e.retireOldest(over)
		}
	}
	for i := 0; i < count; i++ {
		e.particles = append(e.particles, e.spawn(origin, power))
	}
	e.spawned += uint64(count)
	return count
}

// spawn builds one particle.
func (e *BurstEmitter) spawn(origin mgl64.Vec3, power float64) Particle {
	cfg := &e.config
	life := cfg.Life.Random(e.rng)
	if life <= 0 {
		life = 1
	}
	c := ColorWhite
	if len(cfg.Palette) > 0 {
		c = cfg.Palette[e.rng.IntN(len(cfg.Palette))]
	}
	return Particle{
		Position: origin,
		Velocity: burstDirection(e.rng, cfg.UpBias).Mul(cfg.Speed.Random(e.rng) * power),
		Life:     life,
		MaxLife:  life,
		Size:     cfg.Size.Random(e.rng),
		Alpha:    1,
		Color:    c,
		Texture:  e.texture.Retain(),
	}
}

// burstDirection samples a unit vector biased toward +Y by upBias.
func burstDirection(rng *rand.Rand, upBias float64) mgl64.Vec3 {
	d := randomUnitVector(rng).Add(mgl64.Vec3{0, upBias, 0})
	if d.Len() < 1e-9 {
		return axisY
	}
	return d.Normalize()
}

// Clear retires every particle and returns how many were removed.
func (e *BurstEmitter) Clear() int {
	n := len(e.particles)
	e.retireOldest(n)
	return n
}

// retireOldest releases and removes the first n particles.
func (e *BurstEmitter) retireOldest(n int) {
	n = min(n, len(e.particles))
	for i := 0; i < n; i++ {
		e.particles[i].release()
	}
	rest := copy(e.particles, e.particles[n:])
	clear(e.particles[rest:])
	e.particles = e.particles[:rest]
	e.retired += uint64(n)
}

// update advances particle simulation by dt seconds and retires expired
// particles, compacting the slice in place.
func (e *BurstEmitter) update(dt float64) {
	cfg := &e.config
	drag := max(0, 1-cfg.Drag*dt)

	w := 0
	for i := range e.particles {
		p := e.particles[i]
		p.Life -= dt * cfg.Decay
		if p.Life <= 0 {
			p.release()
			e.retired++
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Velocity = p.Velocity.Mul(drag)
		p.Alpha = clamp01(p.Life / p.MaxLife)
		e.particles[w] = p
		w++
	}
	clear(e.particles[w:])
	e.particles = e.particles[:w]
}
