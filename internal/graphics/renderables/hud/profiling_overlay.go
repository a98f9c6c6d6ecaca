package hud

import (
	"fmt"
	"strings"
	"time"

	renderer "flightsim/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const historyLen = 60

// frameHistory is a ring of recent frame durations.
type frameHistory struct {
	times [historyLen]time.Duration
	next  int
	n     int
}

type frameSummary struct {
	min, avg, max time.Duration
}

func (f *frameHistory) add(d time.Duration) {
	f.times[f.next] = d
	f.next = (f.next + 1) % historyLen
	f.n = min(f.n+1, historyLen)
}

func (f *frameHistory) summary() frameSummary {
	if f.n == 0 {
		return frameSummary{}
	}
	s := frameSummary{min: f.times[0], max: f.times[0]}
	var total time.Duration
	for _, d := range f.times[:f.n] {
		total += d
		s.min = min(s.min, d)
		s.max = max(s.max, d)
	}
	s.avg = total / time.Duration(f.n)
	return s
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// statsLines formats the overlay text for one frame.
func statsLines(pos mgl32.Vec3, r renderer.FrameReport, frames frameSummary, last time.Duration) []string {
	t := r.Terrain
	c := r.Cache
	lines := make([]string, 0, 16)
	lines = append(lines,
		fmt.Sprintf("FPS: %d | Frame: %.2fms (min %.2f, avg %.2f, max %.2f)",
			r.FPS, ms(last), ms(frames.min), ms(frames.avg), ms(frames.max)),
		fmt.Sprintf("Pos: %.1f, %.1f, %.1f | Chunk: %d, %d",
			pos.X(), pos.Y(), pos.Z(), t.Active.X, t.Active.Z),
		fmt.Sprintf("Radius: %d (%d chunks) | Cache: %dx%d",
			r.Radius, t.Drawn+t.Missed+t.Pending, r.Dim, r.Dim),
		fmt.Sprintf("Drawn: %d | Pending: %d | Missed: %d | Uploaded: %t",
			t.Drawn, t.Pending, t.Missed, t.Uploaded),
		fmt.Sprintf("Builds: %d | Uploads: %d | Shifts: %d | Stale: %d | Misses: %d",
			c.Builds, c.Uploads, c.Shifts, c.Stale, c.Misses),
	)
	return lines
}

// subsystems are the profiling prefixes summed on the CPU line.
var subsystems = []string{"cache", "terrain", "world", "renderer"}

// cpuLine sums the frame's profiling buckets per subsystem.
func cpuLine(sum func(prefix string) time.Duration) string {
	parts := make([]string, 0, len(subsystems))
	for _, s := range subsystems {
		parts = append(parts, fmt.Sprintf("%s %.1f", s, ms(sum(s+"."))))
	}
	return "CPU ms: " + strings.Join(parts, " | ")
}

// topLines splits a profiling.TopN string into one line per bucket and
// drops buckets that rounded to nothing.
func topLines(top string) []string {
	var lines []string
	for line := range strings.SplitSeq(top, ", ") {
		if line != "" && !strings.HasSuffix(line, ":0ms") {
			lines = append(lines, line)
		}
	}
	return lines
}
