// Package field simulates the ambient particle field: drifting particles that
// wrap around the surface edges, react to a pointer and are joined by faint
// lines when close to each other.
package field

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
)

// Surface is anything the field can paint onto
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Pointer is the tracked pointer position; Active is false when absent
type Pointer struct {
	X, Y   float64
	Active bool
}

// Link joins two particles closer than the connection distance
type Link struct {
	A, B     int
	Distance float64
	Opacity  float64
}

// Field struct: Holds the particle set and the shared surface/pointer state.
// It is not safe for concurrent use; hosts serialise access on one loop.
type Field struct {
	cfg           Config
	width, height float64
	particles     []Particle
	pointer       Pointer
	rng           *rand.Rand
}

// New creates a field of cfg.Count particles spread over width x height
func New(width, height float64, cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("field: nil random source")
	}
	cfg.Palette = append([]color.NRGBA(nil), cfg.Palette...)

	f := &Field{cfg: cfg, rng: rng}
	f.Resize(width, height)
	return f, nil
}

// Resize adopts new surface dimensions and regenerates every particle
func (f *Field) Resize(width, height float64) {
	f.width = math.Max(width, 0)
	f.height = math.Max(height, 0)

	f.particles = make([]Particle, f.cfg.Count)
	for i := range f.particles {
		f.particles[i] = newParticle(f.rng, f.width, f.height, &f.cfg)
	}
}

// SetPointer records the pointer position in surface coordinates
func (f *Field) SetPointer(x, y float64) {
	f.pointer = Pointer{X: x, Y: y, Active: true}
}

// ClearPointer marks the pointer as absent
func (f *Field) ClearPointer() {
	f.pointer = Pointer{}
}

// Pointer returns the tracked pointer
func (f *Field) Pointer() Pointer {
	return f.pointer
}

// Size returns the surface dimensions the field is laid out on
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Len returns the number of particles
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a snapshot of the particle set
func (f *Field) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}

// Step advances every particle by one frame without drawing
func (f *Field) Step() {
	for i := range f.particles {
		f.particles[i].update(f.width, f.height, f.pointer, &f.cfg)
	}
}

// Render clears s and draws the current state: particles first, links on top
func (f *Field) Render(s Surface) {
	s.Clear()
	for i := range f.particles {
		f.particles[i].draw(s)
	}
	f.drawLinks(s)
}

// Frame runs one animation frame: clear, update and draw each particle, then links
func (f *Field) Frame(s Surface) {
	s.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		p.update(f.width, f.height, f.pointer, &f.cfg)
		p.draw(s)
	}
	f.drawLinks(s)
}

// Links returns every particle pair closer than the connection distance.
// The scan is O(n²) in the particle count.
func (f *Field) Links() []Link {
	var links []Link
	f.eachLink(func(l Link) {
		links = append(links, l)
	})
	return links
}

func (f *Field) drawLinks(s Surface) {
	f.eachLink(func(l Link) {
		a, b := &f.particles[l.A], &f.particles[l.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, f.cfg.LineWidth, WithAlpha(f.cfg.LineColor, l.Opacity))
	})
}

func (f *Field) eachLink(fn func(Link)) {
	maxDist := f.cfg.ConnectionDistance
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			dx := f.particles[i].X - f.particles[j].X
			dy := f.particles[i].Y - f.particles[j].Y
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance < maxDist {
				fn(Link{
					A:        i,
					B:        j,
					Distance: distance,
					Opacity:  (1 - distance/maxDist) * f.cfg.LineOpacity,
				})
			}
		}
	}
}
