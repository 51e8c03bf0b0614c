package heartscene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState tracks the single logical pointer (mouse or first touch).
type pointerState struct {
	down         bool
	lastX, lastY float64
	touchIDs     []ebiten.TouchID
}

// Key bindings.
const (
	keyClear      = ebiten.KeyC
	keyToggleFPS  = ebiten.KeyF
	keyScreenshot = ebiten.KeyP
)

// processInput is called from Scene.Update to handle keyboard, mouse, touch
// and wheel input.
func (s *Scene) processInput() {
	for _, k := range [...]ebiten.Key{keyClear, keyToggleFPS, keyScreenshot} {
		if inpututil.IsKeyJustPressed(k) {
			s.handleKey(k)
		}
	}

	x, y, pressed := s.readPointer()
	s.processPointer(x, y, pressed)

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.camera.Zoom(wy)
	}
}

// readPointer returns the primary pointer position in screen pixels and
// whether it is held. A touch takes priority over the mouse.
func (s *Scene) readPointer() (x, y float64, pressed bool) {
	s.input.touchIDs = ebiten.AppendTouchIDs(s.input.touchIDs[:0])
	if len(s.input.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(s.input.touchIDs[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// processPointer runs the pointer state machine. A press triggers a burst
// with a random boost; moving while held orbits the camera.
func (s *Scene) processPointer(x, y float64, pressed bool) {
	ps := &s.input
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		s.TriggerBurst(1 + s.rng.Float64()*s.cfg.Burst.Boost)
	case pressed:
		dx, dy := x-ps.lastX, y-ps.lastY
		if dx != 0 || dy != 0 {
			s.camera.RotateBy(dx, dy)
		}
		ps.lastX, ps.lastY = x, y
	case ps.down:
		ps.down = false
	}
}

// handleKey runs the action bound to k. Unbound keys are ignored.
func (s *Scene) handleKey(k ebiten.Key) {
	switch k {
	case keyClear:
		s.ClearBursts()
	case keyToggleFPS:
		s.showFPS = !s.showFPS
	case keyScreenshot:
		s.Screenshot("capture")
	}
}
