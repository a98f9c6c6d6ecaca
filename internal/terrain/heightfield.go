package terrain

import (
	"math"

	"flightsim/internal/config"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"
)

// HeightField maps world-space (x, z) to terrain elevation. It only reads
// immutable state after construction and may be sampled from any goroutine.
//
// Heights come from a fractal sum of simplex octaves. The first octave is
// lifted into [0, 2] so the sum is mostly positive. The sum is normalised,
// raised to a power to flatten lowlands and sharpen peaks, and mapped to
// amplitude*e - amplitude/2.
type HeightField struct {
	noise      opensimplex.Noise
	frequency  float64
	octaves    []config.Octave
	normalizer float64
	exponent   float64
	amplitude  float64
	step       float32
}

// NewHeightField builds the height function described by t.
func NewHeightField(t config.Terrain) *HeightField {
	octaves := make([]config.Octave, len(t.Octaves))
	copy(octaves, t.Octaves)
	return &HeightField{
		noise:      opensimplex.New(t.Seed),
		frequency:  t.Frequency,
		octaves:    octaves,
		normalizer: t.Normalizer,
		exponent:   t.Exponent,
		amplitude:  t.Amplitude,
		step:       t.CellScale,
	}
}

// Height returns the terrain elevation at world position (x, z).
func (h *HeightField) Height(x, z float32) float32 {
	px := float64(x) * h.frequency
	pz := float64(z) * h.frequency

	base := h.octaves[0]
	e := base.Weight * (h.noise.Eval2(px*base.Frequency, pz*base.Frequency) + 1)
	for _, o := range h.octaves[1:] {
		e += o.Weight * h.noise.Eval2(px*o.Frequency, pz*o.Frequency)
	}
	e /= h.normalizer
	if e < 0 {
		e = 0
	}
	e = math.Pow(e, h.exponent)
	return float32(h.amplitude*e - h.amplitude/2)
}

// Normal returns the surface normal at (x, z), estimated from the heights one
// grid cell away along each axis.
func (h *HeightField) Normal(x, z float32) mgl32.Vec3 {
	s := h.step
	l := h.Height(x-s, z)
	r := h.Height(x+s, z)
	u := h.Height(x, z-s)
	d := h.Height(x, z+s)
	return normalFromDiffs(l, r, u, d, s)
}

// normalFromDiffs turns the four axis neighbours of a sample (left/right along
// X, up/down along -Z/+Z) taken at distance s into a unit normal.
func normalFromDiffs(l, r, u, d, s float32) mgl32.Vec3 {
	return mgl32.Vec3{l - r, 2 * s, u - d}.Normalize()
}
