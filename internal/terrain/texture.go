package terrain

import (
	"image"
	"image/color"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// GrassTexture paints a size x size grass texture that tiles seamlessly.
// Each axis is wrapped around a circle in 4D noise space, so opposite edges
// sample the same noise.
func GrassTexture(size int, seed int64) *image.RGBA {
	noise := opensimplex.New(seed)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	const (
		coarse = 1.5
		fine   = 6.0
	)
	dark := color.RGBA{R: 52, G: 92, B: 34, A: 255}
	light := color.RGBA{R: 118, G: 156, B: 64, A: 255}

	for y := range size {
		ty := 2 * math.Pi * float64(y) / float64(size)
		for x := range size {
			tx := 2 * math.Pi * float64(x) / float64(size)
			sample := func(r float64) float64 {
				return noise.Eval4(r*math.Cos(tx), r*math.Sin(tx), r*math.Cos(ty), r*math.Sin(ty))
			}
			v := 0.65*sample(coarse) + 0.35*sample(fine)
			t := min(max((v+1)/2, 0), 1)
			img.SetRGBA(x, y, lerpRGBA(dark, light, t))
		}
	}
	return img
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
