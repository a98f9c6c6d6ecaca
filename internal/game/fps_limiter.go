package game

import (
	"time"

	"flightsim/internal/config"
)

// idleFPS caps the loop while the window does not hold the mouse.
const idleFPS = 30

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next time.Time
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// Wait blocks until the next frame is due under config.GetFPSLimit, or
// under idleFPS when idle. It sleeps most of the interval and spins the
// rest.
func (f *FPSLimiter) Wait(idle bool) {
	limit := config.GetFPSLimit()
	if idle && (limit <= 0 || limit > idleFPS) {
		limit = idleFPS
	}
	f.wait(limit)
}

func (f *FPSLimiter) wait(limit int) {
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// a hitch longer than a frame resyncs instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
