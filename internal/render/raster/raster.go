// Package raster draws the particle field into an in-memory image, for
// headless rendering and PNG export.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// SurfaceID names the raster canvas in the animator host
const SurfaceID = "particles"

// kappa places cubic control points so four curves approximate a circle
const kappa = 0.5522847498

// Surface is an RGBA canvas. Clear restores the background, if any.
type Surface struct {
	img        *image.RGBA
	background image.Image
	z          *vector.Rasterizer
}

// New creates a w x h surface; background may be nil for transparent black
func New(w, h int, background image.Image) *Surface {
	return &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: background,
		z:          vector.NewRasterizer(w, h),
	}
}

// Image returns the backing image
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Bounds returns the surface size
func (s *Surface) Bounds() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// Clear implements field.Surface
func (s *Surface) Clear() {
	if s.background == nil {
		draw.Draw(s.img, s.img.Rect, image.Transparent, image.Point{}, draw.Src)
		return
	}
	draw.Draw(s.img, s.img.Rect, s.background, s.background.Bounds().Min, draw.Src)
}

// FillCircle implements field.Surface
func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	if r <= 0 || !s.touches(x-r, y-r, x+r, y+r) {
		return
	}
	w, h := s.Bounds()
	s.z.Reset(w, h)

	cx, cy, rr := float32(x), float32(y), float32(r)
	k := float32(kappa) * rr
	s.z.MoveTo(cx+rr, cy)
	s.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	s.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	s.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	s.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	s.z.ClosePath()
	s.fill(c)
}

// StrokeLine implements field.Surface
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	length := math.Hypot(x1-x0, y1-y0)
	if width <= 0 || length == 0 {
		return
	}
	half := width / 2
	if !s.touches(math.Min(x0, x1)-half, math.Min(y0, y1)-half, math.Max(x0, x1)+half, math.Max(y0, y1)+half) {
		return
	}
	w, h := s.Bounds()
	s.z.Reset(w, h)

	// unit normal scaled to half the stroke width
	nx := float32(-(y1 - y0) / length * half)
	ny := float32((x1 - x0) / length * half)
	ax, ay, bx, by := float32(x0), float32(y0), float32(x1), float32(y1)
	s.z.MoveTo(ax+nx, ay+ny)
	s.z.LineTo(bx+nx, by+ny)
	s.z.LineTo(bx-nx, by-ny)
	s.z.LineTo(ax-nx, ay-ny)
	s.z.ClosePath()
	s.fill(c)
}

// EncodePNG writes the current canvas as PNG
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

func (s *Surface) fill(c color.Color) {
	s.z.DrawOp = draw.Over
	s.z.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{})
}

// touches reports whether the box intersects the canvas
func (s *Surface) touches(minX, minY, maxX, maxY float64) bool {
	w, h := s.Bounds()
	return maxX >= 0 && maxY >= 0 && minX <= float64(w) && minY <= float64(h) && w > 0 && h > 0
}
