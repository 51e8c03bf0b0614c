package heartscene

import (
	"strings"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"invalid json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "dance"}]}`, "unknown action"},
		{"unknown key", `{"steps": [{"action": "key", "key": "q"}]}`, "unknown key"},
		{"bad resize", `{"steps": [{"action": "resize", "width": 0, "height": 10}]}`, "resize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadTestScriptKeyCaseInsensitive(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "key", "key": "C"}]}`)); err != nil {
		t.Errorf("upper-case key rejected: %v", err)
	}
}

func TestTestRunnerSequence(t *testing.T) {
	s := newTestScene(t, testConfig())
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "burst", "power": 2},
		{"action": "click", "x": 50, "y": 50},
		{"action": "wait", "frames": 3},
		{"action": "resize", "width": 640, "height": 480, "ratio": 2},
		{"action": "clear"}
	]}`))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	s.SetTestRunner(runner)

	// Frame 1: burst runs directly.
	s.Update()
	if s.ActiveParticles() != 90 {
		t.Fatalf("after burst step active = %d, want 90", s.ActiveParticles())
	}
	// Frame 2: click queued, press consumed the same frame.
	s.Update()
	if s.ActiveParticles() != 180 {
		t.Errorf("after click press active = %d, want 180", s.ActiveParticles())
	}
	// Frame 3: release consumed; runner waits for the queue to drain.
	s.Update()
	if s.PendingInjections() != 0 {
		t.Fatalf("pending = %d, want 0", s.PendingInjections())
	}

	frames := 3
	for !runner.Done() && frames < 100 {
		s.Update()
		frames++
	}
	if !runner.Done() {
		t.Fatal("runner never finished")
	}
	if vp := s.Viewport(); vp.Width != 640 || vp.Height != 480 || vp.PixelRatio != 2 {
		t.Errorf("viewport = %+v", vp)
	}
	if s.ActiveParticles() != 0 {
		t.Errorf("active after clear = %d", s.ActiveParticles())
	}
	// wait(3) + resize inject + resize consume + clear
	if frames < 7 {
		t.Errorf("finished after %d frames, expected the wait to hold it", frames)
	}
}

func TestTestRunnerScreenshotAndKey(t *testing.T) {
	s := newTestScene(t, testConfig())
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "start"},
		{"action": "key", "key": "f"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)
	show := s.showFPS

	s.Update()
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "start" {
		t.Errorf("screenshot queue = %v", s.screenshotQueue)
	}
	s.screenshotQueue = nil
	s.Update()
	if s.showFPS == show {
		t.Error("key step should toggle the overlay")
	}
	for i := 0; i < 5 && !runner.Done(); i++ {
		s.Update()
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
