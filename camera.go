package heartscene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the single perspective viewpoint. Its pose is owned by an orbit
// controller: spherical coordinates (azimuth, polar angle, distance) around
// Target, each eased toward its goal by a critically damped spring. Only
// Resize and the controller methods write to it.
type Camera struct {
	// Position is the eye position in world space.
	Position mgl64.Vec3
	// Target is the point the camera looks at and orbits around.
	Target mgl64.Vec3
	// Up is the world up direction.
	Up mgl64.Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far are the clip plane distances.
	Near, Far float64

	cfg CameraConfig

	azimuth, polar, distance float64
	azVel, polarVel, distVel float64
	goalAz, goalPolar, goalDist float64

	intro *gween.Tween
}

// newCamera creates a camera from cfg. The starting orbit is derived from
// cfg.Position relative to cfg.Target, clamped to the configured limits.
func newCamera(cfg CameraConfig, aspect float64) *Camera {
	c := &Camera{
		Target: cfg.Target,
		Up:     axisY,
		FOV:    cfg.FOV,
		Aspect: aspect,
		Near:   cfg.Near,
		Far:    cfg.Far,
		cfg:    cfg,
	}

	offset := cfg.Position.Sub(cfg.Target)
	dist := offset.Len()
	if dist < 1e-9 {
		offset = axisZ
		dist = 1
	}
	c.distance = clamp(dist, cfg.MinDistance, cfg.MaxDistance)
	c.polar = clamp(math.Acos(clamp(offset.Y()/dist, -1, 1)), cfg.MinPolar, cfg.MaxPolar)
	c.azimuth = math.Atan2(offset.X(), offset.Z())
	c.goalAz, c.goalPolar, c.goalDist = c.azimuth, c.polar, c.distance

	if cfg.IntroDuration > 0 && cfg.IntroDistance > 0 {
		c.intro = gween.New(float32(cfg.IntroDistance), float32(c.distance), float32(cfg.IntroDuration), ease.OutCubic)
		c.distance = cfg.IntroDistance
	}
	c.place()
	return c
}

// Resize sets Aspect to width/height. Non-positive sizes are ignored.
// Reports whether the aspect ratio changed.
func (c *Camera) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	a := float64(width) / float64(height)
	if a == c.Aspect {
		return false
	}
	c.Aspect = a
	return true
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	f := c.Target.Sub(c.Position)
	if f.Len() < 1e-12 {
		return mgl64.Vec3{0, 0, -1}
	}
	return f.Normalize()
}

// Orientation returns the camera's world rotation. The camera looks down its
// local -Z axis with +Y up.
func (c *Camera) Orientation() mgl64.Quat {
	f := c.Forward()
	r := f.Cross(c.Up)
	if r.Len() < 1e-12 {
		r = axisX
	}
	r = r.Normalize()
	u := r.Cross(f)
	m := mgl64.Mat4{
		r.X(), r.Y(), r.Z(), 0,
		u.X(), u.Y(), u.Z(), 0,
		-f.X(), -f.Y(), -f.Z(), 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}

// Distance returns the current distance from Position to Target.
func (c *Camera) Distance() float64 {
	return c.distance
}

// Orbit returns the current azimuth and polar angle in radians.
func (c *Camera) Orbit() (azimuth, polar float64) {
	return c.azimuth, c.polar
}

// Rotate moves the orbit goal by the given angles. The polar angle is clamped
// to the configured limits.
func (c *Camera) Rotate(dAzimuth, dPolar float64) {
	c.goalAz += dAzimuth
	c.goalPolar = clamp(c.goalPolar+dPolar, c.cfg.MinPolar, c.cfg.MaxPolar)
}

// RotateBy converts a pointer drag in pixels to an orbit rotation. Dragging
// right spins the scene right; dragging down tilts the camera up.
func (c *Camera) RotateBy(dx, dy float64) {
	c.Rotate(-dx*c.cfg.RotateSpeed, -dy*c.cfg.RotateSpeed)
}

// Zoom moves the distance goal by notches wheel steps. Positive values zoom
// in. A zoom during the intro fly-in cancels it.
func (c *Camera) Zoom(notches float64) {
	if c.intro != nil {
		c.intro = nil
		c.goalDist = c.distance
	}
	f := math.Pow(1-c.cfg.ZoomSpeed, notches)
	c.goalDist = clamp(c.goalDist*f, c.cfg.MinDistance, c.cfg.MaxDistance)
}

// InIntro reports whether the fly-in is still running.
func (c *Camera) InIntro() bool {
	return c.intro != nil
}

// update advances the intro tween and the damping springs by dt seconds.
// dt <= 0 leaves the camera untouched.
func (c *Camera) update(dt float64) {
	if dt <= 0 {
		return
	}
	spring := harmonica.NewSpring(dt, c.cfg.Frequency, c.cfg.Damping)
	c.azimuth, c.azVel = spring.Update(c.azimuth, c.azVel, c.goalAz)
	c.polar, c.polarVel = spring.Update(c.polar, c.polarVel, c.goalPolar)

	if c.intro != nil {
		v, done := c.intro.Update(float32(dt))
		c.distance = float64(v)
		if done {
			c.intro = nil
			c.distance = c.goalDist
			c.distVel = 0
		}
	} else {
		c.distance, c.distVel = spring.Update(c.distance, c.distVel, c.goalDist)
	}
	c.place()
}

// place recomputes Position from the orbit coordinates.
func (c *Camera) place() {
	sp, cp := math.Sincos(c.polar)
	sa, ca := math.Sincos(c.azimuth)
	c.Position = c.Target.Add(mgl64.Vec3{sp * sa, cp, sp * ca}.Mul(c.distance))
}
