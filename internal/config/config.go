package config

import "sync"

// RenderSettings holds runtime render configuration
type RenderSettings struct {
	mu           sync.RWMutex
	renderRadius int // in chunks
	wireframe    bool
	showStats    bool
	fpsLimit     int
}

var globalRenderSettings = &RenderSettings{
	renderRadius: 4,
	fpsLimit:     120,
}

// GetRenderRadius returns the current render radius in chunks
func GetRenderRadius() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderRadius
}

// SetRenderRadius sets the render radius in chunks.
// The radius is clamped so that the window of a cache with dimension dim can hold it.
func SetRenderRadius(radius, dim int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if radius < 0 {
		radius = 0
	}
	if maxRadius := (dim - 1) / 2; radius > maxRadius {
		radius = maxRadius
	}

	globalRenderSettings.renderRadius = radius
}

// GetWireframe reports whether terrain is drawn as lines
func GetWireframe() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// SetWireframe toggles line rendering
func SetWireframe(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = enabled
}

// GetShowStats reports whether the stats overlay is visible
func GetShowStats() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showStats
}

// SetShowStats shows or hides the stats overlay
func SetShowStats(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showStats = enabled
}

// GetFPSLimit returns the frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap; negative values disable it
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	globalRenderSettings.fpsLimit = limit
}
