package heartscene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitRing is a tilted group of labels spinning about its own axis. Radius
// and label count are fixed at creation; only Yaw changes afterwards.
type OrbitRing struct {
	Node   *Node
	Radius float64
	Tilt   float64
	Speed  float64
	Yaw    float64
	Labels []*Label

	tilt mgl64.Quat
}

// newOrbitRing creates the ring group and its evenly spaced labels. Messages
// are assigned round-robin starting at firstMessage.
func newOrbitRing(index int, cfg RingConfig, textures []*labelTexture, firstMessage int, labelCfg LabelConfig) *OrbitRing {
	r := &OrbitRing{
		Node:   NewGroup(fmt.Sprintf("ring%d", index)),
		Radius: cfg.Radius,
		Tilt:   cfg.Tilt,
		Speed:  cfg.Speed,
		tilt:   mgl64.QuatRotate(cfg.Tilt, axisX),
	}
	r.Node.SetPosition(mgl64.Vec3{0, cfg.Y, 0})
	r.apply()

	if len(textures) == 0 {
		return r
	}
	for i := 0; i < cfg.Count; i++ {
		theta := float64(i) / float64(cfg.Count) * 2 * math.Pi
		lt := textures[(firstMessage+i)%len(textures)]
		l := newLabel(fmt.Sprintf("ring%d/label%d", index, i), lt, labelCfg)
		l.Node.SetPosition(mgl64.Vec3{cfg.Radius * math.Cos(theta), 0, cfg.Radius * math.Sin(theta)})
		r.Node.AddChild(l.Node)
		r.Labels = append(r.Labels, l)
	}
	return r
}

// Count returns the number of labels on the ring.
func (r *OrbitRing) Count() int {
	return len(r.Labels)
}

// advance spins the ring by Speed * dt.
func (r *OrbitRing) advance(dt float64) {
	r.Yaw += r.Speed * dt
	r.apply()
}

// apply writes the tilt and yaw into the group's rotation.
func (r *OrbitRing) apply() {
	r.Node.SetRotation(r.tilt.Mul(mgl64.QuatRotate(r.Yaw, axisY)))
}

// labelTexture pairs a rasterized message with the text it came from.
type labelTexture struct {
	text    string
	texture *Texture
}

// Label is a billboard sprite showing one message.
type Label struct {
	Node *Node
	Text string
	// BaseSize is the world size at display scale 1, derived from the raster's
	// pixel size times LabelConfig.PixelScale.
	BaseSize mgl64.Vec2

	// Refreshed every step.
	Distance     float64
	Facing       float64
	DisplayScale float64
	Opacity      float64
}

func newLabel(name string, lt *labelTexture, cfg LabelConfig) *Label {
	w, h := lt.texture.Size()
	l := &Label{
		Node:         NewSprite(name, lt.texture),
		Text:         lt.text,
		BaseSize:     mgl64.Vec2{float64(w) * cfg.PixelScale, float64(h) * cfg.PixelScale},
		DisplayScale: 1,
		Opacity:      1,
	}
	l.Node.BlendMode = BlendNormal
	l.Node.SetScale(mgl64.Vec3{l.BaseSize.X(), l.BaseSize.Y(), 1})
	return l
}

// labelDisplayScale maps camera distance to a display scale in
// [ScaleMin, ScaleMax]. A zero distance gives ScaleMax.
func labelDisplayScale(dist float64, cfg LabelConfig) float64 {
	if !(dist > 0) {
		return cfg.ScaleMax
	}
	return clamp(cfg.ScaleRef/dist, cfg.ScaleMin, cfg.ScaleMax)
}

// labelOpacity maps the facing term to an opacity in [OpacityMin, OpacityMax].
func labelOpacity(facing float64, cfg LabelConfig) float64 {
	return clamp(cfg.OpacityBase+cfg.OpacityGain*facing, cfg.OpacityMin, cfg.OpacityMax)
}

// labelFacing returns -dot(dir(origin->p), forward): 1 when the label sits
// between the scene origin and the camera, -1 when it is behind the origin.
// A label at the origin has no direction and faces 0.
func labelFacing(p, forward mgl64.Vec3) float64 {
	if p.Len() < 1e-12 {
		return 0
	}
	return -p.Normalize().Dot(forward)
}

// reprojectLabels recomputes every label's scale, opacity and rotation for
// the current camera. World transforms must be current.
func (s *Scene) reprojectLabels() {
	cfg := &s.cfg.Labels
	camPos := s.camera.Position
	forward := s.camera.Forward()
	camRot := s.camera.Orientation()

	for _, l := range s.labels {
		n := l.Node
		p := n.WorldPosition()
		l.Distance = p.Sub(camPos).Len()
		l.Facing = labelFacing(p, forward)
		l.DisplayScale = labelDisplayScale(l.Distance, *cfg)
		l.Opacity = labelOpacity(l.Facing, *cfg)

		n.SetScale(mgl64.Vec3{l.BaseSize.X() * l.DisplayScale, l.BaseSize.Y() * l.DisplayScale, 1})
		n.SetAlpha(l.Opacity)
		parentRot := mgl64.QuatIdent()
		if n.Parent != nil {
			parentRot = n.Parent.WorldRotation()
		}
		n.SetRotation(parentRot.Conjugate().Mul(camRot).Normalize())
	}
}
