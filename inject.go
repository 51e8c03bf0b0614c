package heartscene

import "github.com/hajimehoshi/ebiten/v2"

type injectedKind uint8

const (
	injectPointer injectedKind = iota
	injectKey
	injectWheel
	injectResize
)

// injectedAction represents a single synthetic input event. Pointer
// coordinates are screen pixels, exactly as real mouse input reports them.
type injectedAction struct {
	kind    injectedKind
	x, y    float64
	pressed bool
	key     ebiten.Key
	width   int
	height  int
	ratio   float64
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedAction{kind: injectPointer, x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to orbit the camera.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedAction{kind: injectPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, injectedAction{kind: injectPointer, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), frames-2
// linearly interpolated moves ending at (toX, toY), and a release there. The
// total sequence consumes `frames` frames. Minimum frames is 3 (press, one
// move, release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues a key press. Only bound keys have an effect.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, injectedAction{kind: injectKey, key: k})
}

// InjectWheel queues a vertical wheel scroll of the given notches.
func (s *Scene) InjectWheel(notches float64) {
	s.injectQueue = append(s.injectQueue, injectedAction{kind: injectWheel, y: notches})
}

// InjectResize queues a viewport resize.
func (s *Scene) InjectResize(width, height int, pixelRatio float64) {
	s.injectQueue = append(s.injectQueue, injectedAction{kind: injectResize, width: width, height: height, ratio: pixelRatio})
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjected pops one event from the inject queue and runs it through
// the same handlers as real input. Returns true if an event was consumed
// (real input is skipped for that frame).
func (s *Scene) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch ev.kind {
	case injectPointer:
		s.processPointer(ev.x, ev.y, ev.pressed)
	case injectKey:
		s.handleKey(ev.key)
	case injectWheel:
		s.camera.Zoom(ev.y)
	case injectResize:
		s.Resize(ev.width, ev.height, ev.ratio)
	}
	return true
}
