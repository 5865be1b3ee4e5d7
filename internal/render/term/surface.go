// Package term renders the particle field on a terminal through tcell.
package term

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/nexus-particles/internal/backdrop"
)

// Glyphs by particle radius
const (
	GlyphSmall  = '∙'
	GlyphMedium = '•'
	GlyphLarge  = '●'
	GlyphLink   = '·'
)

// Surface maps field coordinates onto terminal cells. One cell spans
// CellW x CellH field units; the backdrop is sampled one pixel per cell.
type Surface struct {
	screen       tcell.Screen
	cellW, cellH float64
	cols, rows   int
	background   *image.RGBA
	seed         int64
}

// NewSurface wraps an initialised screen
func NewSurface(screen tcell.Screen, cellW, cellH float64, seed int64) *Surface {
	s := &Surface{screen: screen, cellW: cellW, cellH: cellH, seed: seed}
	s.Sync()
	return s
}

// Sync re-reads the screen size and regenerates the backdrop
func (s *Surface) Sync() {
	s.cols, s.rows = s.screen.Size()
	s.background = backdrop.Generate(s.cols, s.rows, s.seed)
}

// Bounds returns the surface size in field units
func (s *Surface) Bounds() (int, int) {
	return int(float64(s.cols) * s.cellW), int(float64(s.rows) * s.cellH)
}

// ToField converts a cell position to the field coordinate of its centre
func (s *Surface) ToField(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// Clear implements field.Surface
func (s *Surface) Clear() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			bg := s.bg(col, row)
			s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

// FillCircle implements field.Surface
func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	col, row, ok := s.cell(x, y)
	if !ok {
		return
	}
	glyph := GlyphSmall
	switch {
	case r >= 3:
		glyph = GlyphLarge
	case r >= 2:
		glyph = GlyphMedium
	}
	s.put(col, row, glyph, c)
}

// StrokeLine implements field.Surface. Cells already holding a particle are kept.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	c0, r0 := int(math.Floor(x0/s.cellW)), int(math.Floor(y0/s.cellH))
	c1, r1 := int(math.Floor(x1/s.cellW)), int(math.Floor(y1/s.cellH))

	// Bresenham over cells
	dx := absInt(c1 - c0)
	dy := -absInt(r1 - r0)
	sx, sy := 1, 1
	if c0 > c1 {
		sx = -1
	}
	if r0 > r1 {
		sy = -1
	}
	err := dx + dy
	for {
		if s.inside(c0, r0) {
			if cur, _, _, _ := s.screen.GetContent(c0, r0); cur == ' ' || cur == GlyphLink {
				s.put(c0, r0, GlyphLink, c)
			}
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			c0 += sx
		}
		if e2 <= dx {
			err += dx
			r0 += sy
		}
	}
}

// put draws a glyph whose colour is c composited over the backdrop
func (s *Surface) put(col, row int, glyph rune, c color.Color) {
	bg := s.bg(col, row)
	fg := blend(c, backdrop.At(s.background, col, row))
	s.screen.SetContent(col, row, glyph, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
}

func (s *Surface) bg(col, row int) tcell.Color {
	px := backdrop.At(s.background, col, row)
	return tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B))
}

func (s *Surface) cell(x, y float64) (int, int, bool) {
	col, row := int(math.Floor(x/s.cellW)), int(math.Floor(y/s.cellH))
	return col, row, s.inside(col, row)
}

func (s *Surface) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.cols && row < s.rows
}

// blend composites a translucent colour over an opaque background
func blend(c color.Color, under color.RGBA) tcell.Color {
	r, g, b, a := c.RGBA() // premultiplied, 16-bit
	inv := 1 - float64(a)/0xffff
	mixc := func(src uint32, dst uint8) int32 {
		return int32(math.Round(float64(src>>8) + float64(dst)*inv))
	}
	return tcell.NewRGBColor(mixc(r, under.R), mixc(g, under.G), mixc(b, under.B))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
