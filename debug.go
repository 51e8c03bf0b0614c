package heartscene

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugInterval is how much simulated time passes between stats lines.
const debugInterval = 1.0

// frameStats accumulates per-frame metrics while debug mode is on and prints a
// summary to stderr roughly once per second.
type frameStats struct {
	out io.Writer // nil means os.Stderr

	acc      float64
	frames   int
	drawTime time.Duration
	items    int
	draws    int
}

// recordDraw stores the cost of one Draw call.
func (st *frameStats) recordDraw(d time.Duration, items, draws int) {
	st.drawTime += d
	st.items = items
	st.draws = draws
}

// tick counts one Update of dt seconds and logs when an interval has passed.
func (st *frameStats) tick(s *Scene, dt float64) {
	if !s.debug {
		return
	}
	st.frames++
	st.acc += dt
	if st.acc < debugInterval {
		return
	}
	st.log(s)
	*st = frameStats{out: st.out}
}

// log prints the accumulated stats.
func (st *frameStats) log(s *Scene) {
	out := st.out
	if out == nil {
		out = os.Stderr
	}
	var avg time.Duration
	if st.frames > 0 {
		avg = st.drawTime / time.Duration(st.frames)
	}
	spawned, retired := s.burst.Totals()
	_, _ = fmt.Fprintf(out,
		"[heartscene] frames: %d | draw avg: %v | items: %d | draw calls: %d\n",
		st.frames, avg, st.items, st.draws)
	_, _ = fmt.Fprintf(out,
		"[heartscene] particles: %d active | %d spawned | %d retired | camera dist: %.2f\n",
		s.burst.ActiveCount(), spawned, retired, s.camera.Distance())
}
