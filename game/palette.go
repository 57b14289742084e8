package game

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// PlayerColor spreads n players evenly around the hue wheel.
func PlayerColor(i, n int) color.RGBA {
	if n < 1 {
		n = 1
	}
	hue := 360 * float64(i%n) / float64(n)
	r, g, b := colorful.Hsv(hue, 0.6, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
