package heartscene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsPanel is the translucent backdrop behind the FPS text.
var fpsPanel *ebiten.Image

// drawFPS prints FPS, TPS and the live particle count in the top-left corner.
func (s *Scene) drawFPS(screen *ebiten.Image) {
	if fpsPanel == nil {
		// 140x48 is enough for three short lines of debug text.
		fpsPanel = ebiten.NewImage(140, 48)
		fpsPanel.Fill(color.RGBA{0, 0, 0, 128})
	}
	screen.DrawImage(fpsPanel, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nParticles: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.burst.ActiveCount()))
}
