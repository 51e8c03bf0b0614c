package heartscene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ExitWhenScriptDone ends the game loop once an attached TestRunner has
	// executed every step.
	ExitWhenScriptDone bool
}

// RunConfigFrom returns the RunConfig matching cfg.Window.
func RunConfigFrom(cfg Config) RunConfig {
	return RunConfig{Title: cfg.Window.Title, Width: cfg.Window.Width, Height: cfg.Window.Height}
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout forwards the outside size and the monitor scale factor to
// Scene.Resize and renders at the resulting surface size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	g.scene.Resize(outsideWidth, outsideHeight, dpr)
	return g.scene.Viewport().SurfaceSize()
}

// Run opens a window and drives the scene from ebiten's game loop until the
// window is closed. The scene is disposed when Run returns.
func Run(scene *Scene, cfg RunConfig) error {
	defer scene.Dispose()
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(&game{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
