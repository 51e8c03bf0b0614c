package heartscene

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config is the declarative description of the whole scene. Zero values are
// not meaningful; start from DefaultConfig and override.
type Config struct {
	Window        WindowConfig `yaml:"window"`
	ClearColor    Color        `yaml:"clearColor"`
	Frame         FrameConfig  `yaml:"frame"`
	Heart         HeartConfig  `yaml:"heart"`
	Camera        CameraConfig `yaml:"camera"`
	Lights        LightsConfig `yaml:"lights"`
	Ground        GroundConfig `yaml:"ground"`
	Stars         StarsConfig  `yaml:"stars"`
	Cloud         CloudConfig  `yaml:"cloud"`
	Rings         []RingConfig `yaml:"rings"`
	Labels        LabelConfig  `yaml:"labels"`
	Burst         BurstConfig  `yaml:"burst"`
	GlowSize      int          `yaml:"glowSize"`      // pixel size of the shared glow texture
	Seed          uint64       `yaml:"seed"`          // 0 = random seed
	Debug         bool         `yaml:"debug"`         // log per-second frame stats to stderr
	ShowFPS       bool         `yaml:"showFPS"`       // draw the FPS overlay
	ScreenshotDir string       `yaml:"screenshotDir"` // output directory for Screenshot
}

// WindowConfig sets the initial window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// FrameConfig bounds the per-frame time step.
type FrameConfig struct {
	// MaxStep caps the elapsed time fed to Step, in seconds, so a long pause
	// (a hidden window, a debugger) does not launch particles across the scene.
	MaxStep float64 `yaml:"maxStep"`
}

// HeartConfig describes the heart mesh and its breathing animation.
type HeartConfig struct {
	BaseScale     float64       `yaml:"baseScale"`
	Amplitude     float64       `yaml:"amplitude"` // breathing amplitude around 1.02
	Frequency     float64       `yaml:"frequency"` // breaths per second
	YawSpeed      float64       `yaml:"yawSpeed"`  // radians per second
	CurveSegments int           `yaml:"curveSegments"`
	Extrude       ExtrudeConfig `yaml:"extrude"`
	Rotation      mgl64.Vec3    `yaml:"rotation"` // base Euler angles (XYZ order), radians
	Position      mgl64.Vec3    `yaml:"position"`
	Color         Color         `yaml:"color"`
	Specular      Color         `yaml:"specular"`
	Shininess     float64       `yaml:"shininess"`
}

// CameraConfig describes the perspective camera and its orbit controller.
type CameraConfig struct {
	FOV           float64    `yaml:"fov"` // vertical field of view, degrees
	Near          float64    `yaml:"near"`
	Far           float64    `yaml:"far"`
	Position      mgl64.Vec3 `yaml:"position"`
	Target        mgl64.Vec3 `yaml:"target"`
	MinDistance   float64    `yaml:"minDistance"`
	MaxDistance   float64    `yaml:"maxDistance"`
	MinPolar      float64    `yaml:"minPolar"` // radians from +Y
	MaxPolar      float64    `yaml:"maxPolar"`
	RotateSpeed   float64    `yaml:"rotateSpeed"` // radians per dragged pixel
	ZoomSpeed     float64    `yaml:"zoomSpeed"`   // distance fraction per wheel notch
	Frequency     float64    `yaml:"frequency"`   // spring angular frequency
	Damping       float64    `yaml:"damping"`     // spring damping ratio
	IntroDistance float64    `yaml:"introDistance"`
	IntroDuration float64    `yaml:"introDuration"` // seconds; 0 disables the fly-in
}

// LightsConfig describes the point and ambient lights.
type LightsConfig struct {
	PointPosition  mgl64.Vec3 `yaml:"pointPosition"`
	PointColor     Color      `yaml:"pointColor"`
	PointIntensity float64    `yaml:"pointIntensity"`
	Ambient        Color      `yaml:"ambient"`
}

// GroundConfig describes the ground plane.
type GroundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Size    float64 `yaml:"size"`
	Y       float64 `yaml:"y"`
	Color   Color   `yaml:"color"`
}

// StarsConfig describes the background starfield.
type StarsConfig struct {
	Count        int     `yaml:"count"`
	MinRadius    float64 `yaml:"minRadius"`
	MaxRadius    float64 `yaml:"maxRadius"`
	Size         Range   `yaml:"size"`
	Color        Color   `yaml:"color"`
	Twinkle      float64 `yaml:"twinkle"`      // alpha swing, 0 disables
	TwinkleSpeed float64 `yaml:"twinkleSpeed"` // noise units per second
}

// CloudConfig describes the ambient particle cloud around the heart.
type CloudConfig struct {
	Count   int     `yaml:"count"`
	Radius  float64 `yaml:"radius"`
	Height  float64 `yaml:"height"`
	Size    Range   `yaml:"size"`
	Spin    float64 `yaml:"spin"` // radians per second
	Palette []Color `yaml:"palette"`
}

// RingConfig describes one orbit ring of labels.
type RingConfig struct {
	Radius float64 `yaml:"radius"`
	Tilt   float64 `yaml:"tilt"`  // radians about X
	Speed  float64 `yaml:"speed"` // radians per second; negative spins clockwise
	Y      float64 `yaml:"y"`
	Count  int     `yaml:"count"`
}

// LabelConfig describes the text labels and their camera-relative fading.
type LabelConfig struct {
	Messages    []string `yaml:"messages"`
	FontSize    float64  `yaml:"fontSize"`
	Color       Color    `yaml:"color"`
	Outline     Color    `yaml:"outline"`
	PixelScale  float64  `yaml:"pixelScale"` // world units per raster pixel
	ScaleRef    float64  `yaml:"scaleRef"`   // display scale is ScaleRef / distance
	ScaleMin    float64  `yaml:"scaleMin"`
	ScaleMax    float64  `yaml:"scaleMax"`
	OpacityBase float64  `yaml:"opacityBase"`
	OpacityGain float64  `yaml:"opacityGain"` // multiplied by the facing term in [-1, 1]
	OpacityMin  float64  `yaml:"opacityMin"`
	OpacityMax  float64  `yaml:"opacityMax"`
}

// BurstConfig describes click-triggered particle bursts.
type BurstConfig struct {
	Count     int     `yaml:"count"`
	Speed     Range   `yaml:"speed"` // world units per second, before power
	Life      Range   `yaml:"life"`
	Size      Range   `yaml:"size"`
	UpBias    float64 `yaml:"upBias"`
	Decay     float64 `yaml:"decay"` // lifetime consumed per second
	Drag      float64 `yaml:"drag"`  // fraction of velocity lost per second
	Boost     float64 `yaml:"boost"` // max random power boost for input-triggered bursts
	MaxActive int     `yaml:"maxActive"`
	Palette   []Color `yaml:"palette"`
}

// DefaultConfig returns the stock scene.
func DefaultConfig() Config {
	return Config{
		Window:     WindowConfig{Title: "Heart", Width: 1024, Height: 768},
		ClearColor: mustColor("#07020d"),
		Frame:      FrameConfig{MaxStep: 0.06},
		Heart: HeartConfig{
			BaseScale:     1,
			Amplitude:     0.06,
			Frequency:     1.1,
			YawSpeed:      0.18,
			CurveSegments: 12,
			Extrude: ExtrudeConfig{
				Depth:          0.6,
				Steps:          2,
				BevelEnabled:   true,
				BevelSize:      0.3,
				BevelThickness: 0.3,
				BevelSegments:  8,
			},
			Rotation:  mgl64.Vec3{-math.Pi / 2, 0, math.Pi},
			Color:     mustColor("#ff1f6f"),
			Specular:  mustColor("#ff99d6"),
			Shininess: 90,
		},
		Camera: CameraConfig{
			FOV:           50,
			Near:          0.1,
			Far:           1000,
			Position:      mgl64.Vec3{0, 2.5, 5},
			MinDistance:   2.5,
			MaxDistance:   16,
			MinPolar:      0.1,
			MaxPolar:      1.5,
			RotateSpeed:   0.006,
			ZoomSpeed:     0.1,
			Frequency:     8,
			Damping:       1,
			IntroDistance: 12,
			IntroDuration: 2.2,
		},
		Lights: LightsConfig{
			PointPosition:  mgl64.Vec3{10, 10, 10},
			PointColor:     ColorWhite,
			PointIntensity: 1.1,
			Ambient:        mustColor("#888888"),
		},
		Ground: GroundConfig{Enabled: true, Size: 40, Y: -1.2, Color: mustColor("#1a0612")},
		Stars: StarsConfig{
			Count:        1200,
			MinRadius:    60,
			MaxRadius:    160,
			Size:         Range{0.25, 0.7},
			Color:        mustColor("#fff4fa"),
			Twinkle:      0.45,
			TwinkleSpeed: 0.8,
		},
		Cloud: CloudConfig{
			Count:   260,
			Radius:  7,
			Height:  4,
			Size:    Range{0.05, 0.14},
			Spin:    0.05,
			Palette: []Color{mustColor("#ff6fa5"), mustColor("#ffc2dc"), mustColor("#c77dff")},
		},
		Rings: []RingConfig{
			{Radius: 2.3, Tilt: 0.35, Speed: 0.3, Y: 0.3, Count: 8},
			{Radius: 3.2, Tilt: -0.22, Speed: -0.2, Y: -0.1, Count: 10},
			{Radius: 4.2, Tilt: 0.12, Speed: 0.14, Y: 0.6, Count: 12},
		},
		Labels: LabelConfig{
			Messages:    []string{"I love you", "Forever", "Always", "You & Me", "My heart", "Be mine"},
			FontSize:    40,
			Color:       mustColor("#ffd6e8"),
			Outline:     mustColor("#ff2d7a80"),
			PixelScale:  0.008,
			ScaleRef:    4,
			ScaleMin:    0.45,
			ScaleMax:    1.6,
			OpacityBase: 0.65,
			OpacityGain: 0.45,
			OpacityMin:  0.2,
			OpacityMax:  1,
		},
		Burst: BurstConfig{
			Count:  90,
			Speed:  Range{1.6, 4.2},
			Life:   Range{0.9, 1.6},
			Size:   Range{0.08, 0.2},
			UpBias: 0.6,
			Decay:  1,
			Drag:   1.6,
			Boost:  0.3,
			Palette: []Color{
				mustColor("#ff4d88"), mustColor("#ff99c8"), mustColor("#ffd1e3"),
				mustColor("#ff1f6f"), ColorWhite,
			},
		},
		GlowSize:      64,
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a YAML file and merges it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Lists (rings, messages, palettes) replace the defaults rather than append.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Frame.MaxStep <= 0 {
		return fmt.Errorf("frame.maxStep must be > 0, got %v", c.Frame.MaxStep)
	}
	h := &c.Heart
	if h.BaseScale <= 0 {
		return fmt.Errorf("heart.baseScale must be > 0, got %v", h.BaseScale)
	}
	if h.Amplitude < 0 || h.Amplitude >= breathCenter {
		return fmt.Errorf("heart.amplitude must be in [0, %v), got %v", breathCenter, h.Amplitude)
	}
	if h.Frequency < 0 {
		return fmt.Errorf("heart.frequency must be >= 0, got %v", h.Frequency)
	}
	if h.CurveSegments < 1 {
		return fmt.Errorf("heart.curveSegments must be >= 1, got %d", h.CurveSegments)
	}
	cam := &c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("camera clip planes invalid: near %v, far %v", cam.Near, cam.Far)
	}
	if cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("camera distance limits invalid: min %v, max %v", cam.MinDistance, cam.MaxDistance)
	}
	if cam.MinPolar < 0 || cam.MaxPolar > math.Pi || cam.MaxPolar < cam.MinPolar {
		return fmt.Errorf("camera polar limits invalid: min %v, max %v", cam.MinPolar, cam.MaxPolar)
	}
	if cam.IntroDuration < 0 {
		return fmt.Errorf("camera.introDuration must be >= 0, got %v", cam.IntroDuration)
	}
	if c.Stars.Count < 0 || c.Cloud.Count < 0 {
		return fmt.Errorf("point counts must be >= 0")
	}
	for i, r := range c.Rings {
		if r.Radius < 0 || r.Count < 0 {
			return fmt.Errorf("rings[%d]: radius and count must be >= 0", i)
		}
	}
	l := &c.Labels
	if l.FontSize <= 0 || l.PixelScale <= 0 {
		return fmt.Errorf("labels.fontSize and labels.pixelScale must be > 0")
	}
	if l.ScaleMin < 0 || l.ScaleMax < l.ScaleMin {
		return fmt.Errorf("labels scale bounds invalid: min %v, max %v", l.ScaleMin, l.ScaleMax)
	}
	if l.OpacityMin < 0 || l.OpacityMax > 1 || l.OpacityMax < l.OpacityMin {
		return fmt.Errorf("labels opacity bounds invalid: min %v, max %v", l.OpacityMin, l.OpacityMax)
	}
	b := &c.Burst
	if b.Count < 0 || b.MaxActive < 0 {
		return fmt.Errorf("burst.count and burst.maxActive must be >= 0")
	}
	if b.Decay <= 0 {
		return fmt.Errorf("burst.decay must be > 0, got %v", b.Decay)
	}
	if b.Drag < 0 {
		return fmt.Errorf("burst.drag must be >= 0, got %v", b.Drag)
	}
	for name, r := range map[string]Range{
		"burst.speed": b.Speed, "burst.life": b.Life, "burst.size": b.Size,
		"stars.size": c.Stars.Size, "cloud.size": c.Cloud.Size,
	} {
		if r.Min > r.Max {
			return fmt.Errorf("%s: min %v > max %v", name, r.Min, r.Max)
		}
	}
	if b.Life.Min <= 0 {
		return fmt.Errorf("burst.life.min must be > 0, got %v", b.Life.Min)
	}
	return nil
}

// --- Colors ---

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' or "0x"
// is optional).
func ParseColor(s string) (Color, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want 3, 6 or 8 hex digits", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func mustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// UnmarshalYAML accepts either a hex string or a mapping with r, g, b and an
// optional a (defaulting to 1).
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	case yaml.MappingNode:
		raw := struct {
			R float64  `yaml:"r"`
			G float64  `yaml:"g"`
			B float64  `yaml:"b"`
			A *float64 `yaml:"a"`
		}{}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*c = Color{R: raw.R, G: raw.G, B: raw.B, A: 1}
		if raw.A != nil {
			c.A = *raw.A
		}
		return nil
	default:
		return fmt.Errorf("line %d: color must be a string or mapping", value.Line)
	}
}
