package heartscene

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// breathCenter is the heart's mean scale factor while breathing.
const breathCenter = 1.02

// Scene is the top-level object that owns the node tree, the camera, the burst
// emitter, input state and render buffers. It is built once by NewScene and
// then advanced with Step (or Update, which measures wall-clock time).
type Scene struct {
	cfg  Config
	rng  *rand.Rand
	root *Node

	// Content
	heart     *Node
	heartBase mgl64.Quat
	phase     float64
	yaw       float64
	ground    *Node
	lights    []*Node
	stars     *starfield
	cloud     *Node
	cloudYaw  float64
	rings     []*OrbitRing
	labels    []*Label
	camera    *Camera
	burst     *BurstEmitter
	viewport  Viewport
	elapsed   float64

	// Textures created by the scene. The scene holds one reference on each.
	glow          *Texture
	labelTextures []*labelTexture

	store   EntityStore
	debug   bool
	showFPS bool

	// Host loop
	now       func() time.Time
	lastFrame time.Time

	// Input and automation
	input           pointerState
	injectQueue     []injectedAction
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is the output directory for Screenshot.
	ScreenshotDir string

	// Render state
	items []drawItem
	batch batcher
	stats frameStats
}

// NewScene composes the scene described by cfg. rng drives every random
// choice (star placement, burst directions, palettes); when nil it is seeded
// from cfg.Seed, or randomly when cfg.Seed is 0.
func NewScene(cfg Config, rng *rand.Rand) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	s := &Scene{
		cfg:           cfg,
		rng:           rng,
		root:          NewGroup("root"),
		debug:         cfg.Debug,
		showFPS:       cfg.ShowFPS,
		now:           time.Now,
		ScreenshotDir: cfg.ScreenshotDir,
		viewport:      Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height, PixelRatio: 1},
	}
	s.camera = newCamera(cfg.Camera, float64(cfg.Window.Width)/float64(cfg.Window.Height))
	s.glow = NewTexture(GlowImage(cfg.GlowSize))

	if err := s.buildLabelTextures(); err != nil {
		s.glow.Release()
		return nil, err
	}

	s.addLights()
	s.addHeart()
	if cfg.Ground.Enabled {
		s.addGround()
	}
	s.stars = newStarfield(cfg.Stars, rng, s.glow)
	s.root.AddChild(s.stars.node)
	s.cloud = newParticleCloud(cfg.Cloud, rng, s.glow)
	s.root.AddChild(s.cloud)
	s.addRings()

	s.burst = newBurstEmitter(cfg.Burst, rng, s.glow)

	updateTree(s.root)
	s.reprojectLabels()
	s.stars.update(0)
	updateTree(s.root)
	return s, nil
}

// buildLabelTextures rasterizes each configured message once.
func (s *Scene) buildLabelTextures() error {
	lc := &s.cfg.Labels
	if len(lc.Messages) == 0 {
		return nil
	}
	face, err := LoadFace(lc.FontSize)
	if err != nil {
		return fmt.Errorf("label font: %w", err)
	}
	defer face.Close()
	for _, msg := range lc.Messages {
		s.labelTextures = append(s.labelTextures, &labelTexture{
			text:    msg,
			texture: NewTexture(TextImage(face, msg, lc.Color, lc.Outline)),
		})
	}
	return nil
}

func (s *Scene) addLights() {
	lc := &s.cfg.Lights
	point := NewLight("pointLight", LightPoint, lc.PointColor, lc.PointIntensity)
	point.SetPosition(lc.PointPosition)
	ambient := NewLight("ambientLight", LightAmbient, lc.Ambient, 1)
	s.root.AddChild(point)
	s.root.AddChild(ambient)
	s.lights = append(s.lights, point, ambient)
}

func (s *Scene) addHeart() {
	hc := &s.cfg.Heart
	mesh := HeartMesh(hc.CurveSegments, hc.Extrude)
	s.heart = NewMeshNode("heart", mesh, Material{
		Color:     hc.Color,
		Specular:  hc.Specular,
		Shininess: hc.Shininess,
	})
	s.heart.SetPosition(hc.Position)
	s.heartBase = eulerXYZ(hc.Rotation)
	s.applyHeart()
	s.root.AddChild(s.heart)
}

func (s *Scene) addGround() {
	gc := &s.cfg.Ground
	s.ground = NewMeshNode("ground", PlaneMesh(gc.Size), Material{
		Color:       gc.Color,
		Shininess:   1,
		DoubleSided: true,
	})
	s.ground.SetPosition(mgl64.Vec3{0, gc.Y, 0})
	s.root.AddChild(s.ground)
}

func (s *Scene) addRings() {
	next := 0
	for i, rc := range s.cfg.Rings {
		r := newOrbitRing(i, rc, s.labelTextures, next, s.cfg.Labels)
		next += r.Count()
		s.root.AddChild(r.Node)
		s.rings = append(s.rings, r)
		s.labels = append(s.labels, r.Labels...)
	}
}

// eulerXYZ converts Euler angles applied in X, Y, Z order to a quaternion.
func eulerXYZ(e mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(e.X(), axisX)
	qy := mgl64.QuatRotate(e.Y(), axisY)
	qz := mgl64.QuatRotate(e.Z(), axisZ)
	return qx.Mul(qy).Mul(qz)
}

// --- Frame loop ---

// Update measures the wall-clock time since the previous call, processes
// scripted and real input and advances the scene with Step.
func (s *Scene) Update() {
	dt := s.frameDelta()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjected() {
		s.processInput()
	}
	s.Step(dt)
	s.stats.tick(s, dt)
}

// frameDelta returns the seconds elapsed since the previous call. The first
// call returns one tick at the current TPS.
func (s *Scene) frameDelta() float64 {
	t := s.now()
	if s.lastFrame.IsZero() {
		s.lastFrame = t
		return 1 / float64(ebiten.TPS())
	}
	dt := t.Sub(s.lastFrame).Seconds()
	s.lastFrame = t
	return dt
}

// Step advances every animation by dt seconds. Negative and NaN steps count as
// zero; steps longer than Frame.MaxStep are capped. Step(0) changes nothing.
func (s *Scene) Step(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	dt = min(dt, s.cfg.Frame.MaxStep)
	s.elapsed += dt

	hc := &s.cfg.Heart
	s.phase = math.Mod(s.phase+dt*2*math.Pi*hc.Frequency, 2*math.Pi)
	s.yaw += hc.YawSpeed * dt
	s.applyHeart()

	for _, r := range s.rings {
		r.advance(dt)
	}
	s.cloudYaw += s.cfg.Cloud.Spin * dt
	spinCloud(s.cloud, s.cloudYaw)
	s.camera.update(dt)

	updateTree(s.root)
	s.reprojectLabels()
	s.burst.update(dt)
	s.stars.update(s.elapsed)
	updateTree(s.root)
}

// applyHeart writes the breathing scale and yaw into the heart node.
func (s *Scene) applyHeart() {
	hc := &s.cfg.Heart
	s.heart.SetUniformScale(hc.BaseScale * (breathCenter + hc.Amplitude*math.Sin(s.phase)))
	s.heart.SetRotation(mgl64.QuatRotate(s.yaw, axisY).Mul(s.heartBase).Normalize())
}

// --- Operations ---

// TriggerBurst spawns a burst of particles at the heart's world position and
// returns how many were spawned. power scales particle speed; power <= 0
// counts as 1.
func (s *Scene) TriggerBurst(power float64) int {
	if power <= 0 {
		power = 1
	}
	origin := s.heart.WorldPosition()
	n := s.burst.Trigger(origin, power)
	s.emit(SceneEvent{Type: EventBurst, Count: n, Power: power, X: origin.X(), Y: origin.Y(), Z: origin.Z()})
	return n
}

// ClearBursts removes every active particle and returns how many were removed.
func (s *Scene) ClearBursts() int {
	n := s.burst.Clear()
	s.emit(SceneEvent{Type: EventClear, Count: n})
	return n
}

// Resize sets the viewport to width x height device-independent pixels at the
// given device pixel ratio. Only the camera aspect ratio and the surface size
// change. Non-positive sizes are ignored; a non-positive ratio counts as 1.
func (s *Scene) Resize(width, height int, pixelRatio float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if !(pixelRatio > 0) {
		pixelRatio = 1
	}
	vp := Viewport{Width: width, Height: height, PixelRatio: pixelRatio}
	if vp == s.viewport {
		return
	}
	s.viewport = vp
	s.camera.Resize(width, height)
	s.emit(SceneEvent{Type: EventResize, Width: width, Height: height, PixelRatio: pixelRatio})
}

// Dispose releases every texture and node owned by the scene. The scene must
// not be used afterwards.
func (s *Scene) Dispose() {
	s.burst.Clear()
	s.root.Dispose()
	s.glow.Release()
	for _, lt := range s.labelTextures {
		lt.texture.Release()
	}
	s.labelTextures = nil
	s.rings = nil
	s.labels = nil
	s.lights = nil
}

// SetDebugMode enables or disables per-second frame stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetShowFPS shows or hides the FPS overlay.
func (s *Scene) SetShowFPS(show bool) {
	s.showFPS = show
}

// --- Accessors ---

// Root returns the scene's root node.
func (s *Scene) Root() *Node { return s.root }

// Heart returns the heart mesh node.
func (s *Scene) Heart() *Node { return s.heart }

// Ground returns the ground plane node, or nil when disabled.
func (s *Scene) Ground() *Node { return s.ground }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Rings returns the orbit rings. The returned slice MUST NOT be mutated.
func (s *Scene) Rings() []*OrbitRing { return s.rings }

// Labels returns every label across all rings. The returned slice MUST NOT be
// mutated.
func (s *Scene) Labels() []*Label { return s.labels }

// Burst returns the burst emitter.
func (s *Scene) Burst() *BurstEmitter { return s.burst }

// ActiveParticles returns the number of live burst particles.
func (s *Scene) ActiveParticles() int { return s.burst.ActiveCount() }

// Viewport returns the current viewport.
func (s *Scene) Viewport() Viewport { return s.viewport }

// Elapsed returns the total simulated time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Config returns the configuration the scene was built from.
func (s *Scene) Config() Config { return s.cfg }
