// Package colorutil provides shared color utilities for the preview renderer.
package colorutil

import (
	"image/color"
	"math"
)

// Preview colors.
var (
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Copper  = color.RGBA{R: 184, G: 115, B: 51, A: 255}
	Board   = color.RGBA{R: 16, G: 48, B: 24, A: 255}
)

// Lerp blends a toward b by t, clamped to [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
