package heartscene

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Power  float64 `json:"power,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// scriptKeys maps the key names accepted by the "key" action.
var scriptKeys = map[string]ebiten.Key{
	"c": keyClear,
	"f": keyToggleFPS,
	"p": keyScreenshot,
}

// TestRunner sequences injected input, direct scene operations and
// screenshots across frames for automated visual testing. Attach to a Scene
// via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st *testStep) validate() error {
	switch st.Action {
	case "screenshot", "click", "drag", "wait", "burst", "clear", "wheel":
		return nil
	case "key":
		if _, ok := scriptKeys[strings.ToLower(st.Key)]; !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	case "resize":
		if st.Width <= 0 || st.Height <= 0 {
			return fmt.Errorf("resize needs positive width and height")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input processing each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		s.InjectKey(scriptKeys[strings.ToLower(st.Key)])
	case "wheel":
		s.InjectWheel(st.Y)
	case "resize":
		s.InjectResize(st.Width, st.Height, st.Ratio)
	case "burst":
		s.TriggerBurst(st.Power)
	case "clear":
		s.ClearBursts()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
