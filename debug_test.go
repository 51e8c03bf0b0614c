package heartscene

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFrameStatsLogsOncePerInterval(t *testing.T) {
	s := newTestScene(t, testConfig())
	var buf bytes.Buffer
	s.stats.out = &buf

	s.stats.tick(s, 0.5)
	if buf.Len() != 0 {
		t.Fatal("stats disabled when debug is off")
	}

	s.SetDebugMode(true)
	s.TriggerBurst(1)
	s.stats.recordDraw(2*time.Millisecond, 42, 3)
	s.stats.tick(s, 0.4)
	s.stats.tick(s, 0.4)
	if buf.Len() != 0 {
		t.Fatalf("logged before the interval: %q", buf.String())
	}
	s.stats.tick(s, 0.4)
	out := buf.String()
	for _, want := range []string{"frames: 3", "items: 42", "draw calls: 3", "particles: 90 active", "90 spawned"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if s.stats.frames != 0 || s.stats.out != &buf {
		t.Error("stats should reset but keep the writer")
	}
}
