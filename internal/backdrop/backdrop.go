// Package backdrop paints the dark hero background the particles float over.
package backdrop

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

// Gradient stops and glows
var (
	Deep     = color.NRGBA{R: 0x0a, G: 0x0e, B: 0x1a, A: 0xff}
	Midnight = color.NRGBA{R: 0x15, G: 0x1d, B: 0x32, A: 0xff}
	Purple   = color.NRGBA{R: 139, G: 92, B: 246, A: 0xff}
	Teal     = color.NRGBA{R: 63, G: 212, B: 217, A: 0xff}
)

// Noise parameters
const (
	NoiseAlpha  = 2.0
	NoiseBeta   = 2.0
	NoiseOctave = 3
	NoiseScale  = 0.01
	GrainAmount = 6.0 // max +/- per channel
)

// glow is an elliptical radial gradient fading to transparent at Reach
type glow struct {
	CX, CY   float64 // centre as a fraction of the surface
	Color    color.NRGBA
	Strength float64
	Reach    float64 // fraction of the half-diagonal
}

var glows = []glow{
	{CX: 0.5, CY: 0.5, Color: Purple, Strength: 0.3, Reach: 0.5},
	{CX: 0.8, CY: 0.2, Color: Teal, Strength: 0.2, Reach: 0.4},
}

// Generate renders a w x h backdrop; the grain pattern depends only on seed
func Generate(w, h int, seed int64) *image.RGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}

	noise := perlin.NewPerlin(NoiseAlpha, NoiseBeta, NoiseOctave, seed)
	fw, fh := float64(w), float64(h)
	halfDiag := math.Hypot(fw, fh) / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// 135deg linear gradient: deep -> midnight at 50% -> deep
			t := (float64(x)/fw + float64(y)/fh) / 2
			r, g, b := mix(Deep, Midnight, 1-math.Abs(t*2-1))

			for _, gl := range glows {
				d := math.Hypot(float64(x)-gl.CX*fw, float64(y)-gl.CY*fh) / (halfDiag * gl.Reach)
				if d >= 1 {
					continue
				}
				a := gl.Strength * (1 - d)
				r += (float64(gl.Color.R) - r) * a
				g += (float64(gl.Color.G) - g) * a
				b += (float64(gl.Color.B) - b) * a
			}

			grain := noise.Noise2D(float64(x)*NoiseScale, float64(y)*NoiseScale) * GrainAmount
			img.SetRGBA(x, y, color.RGBA{
				R: clampByte(r + grain),
				G: clampByte(g + grain),
				B: clampByte(b + grain),
				A: 0xff,
			})
		}
	}
	return img
}

// At returns the backdrop colour under (x, y), Deep outside the image
func At(img *image.RGBA, x, y int) color.RGBA {
	if img == nil || !image.Pt(x, y).In(img.Rect) {
		return color.RGBA{R: Deep.R, G: Deep.G, B: Deep.B, A: Deep.A}
	}
	return img.RGBAAt(x, y)
}

func mix(a, b color.NRGBA, t float64) (float64, float64, float64) {
	return float64(a.R) + (float64(b.R)-float64(a.R))*t,
		float64(a.G) + (float64(b.G)-float64(a.G))*t,
		float64(a.B) + (float64(b.B)-float64(a.B))*t
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
