package field

import (
	"image/color"
	"math"
	"math/rand"
)

// Particle struct: a single drifting point of the field
type Particle struct {
	X, Y           float64 // Position
	SpeedX, SpeedY float64 // Constant velocity
	BaseSize       float64 // Radius at rest
	Size           float64 // Current radius
	Color          color.NRGBA
}

// newParticle places a particle uniformly over a width x height surface
func newParticle(rng *rand.Rand, width, height float64, cfg *Config) Particle {
	size := cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)
	return Particle{
		X:        rng.Float64() * width,
		Y:        rng.Float64() * height,
		SpeedX:   (rng.Float64()*2 - 1) * cfg.MaxSpeed,
		SpeedY:   (rng.Float64()*2 - 1) * cfg.MaxSpeed,
		BaseSize: size,
		Size:     size,
		Color:    cfg.Palette[rng.Intn(len(cfg.Palette))],
	}
}

// wrap teleports a coordinate that left [-margin, limit+margin] to the opposite edge
func wrap(v, limit, margin float64) float64 {
	if v > limit+margin {
		v = -margin
	}
	if v < -margin {
		v = limit + margin
	}
	return v
}

// update advances the particle one frame and applies pointer influence
func (p *Particle) update(width, height float64, ptr Pointer, cfg *Config) {
	p.X += p.SpeedX
	p.Y += p.SpeedY

	p.X = wrap(p.X, width, cfg.Margin)
	p.Y = wrap(p.Y, height, cfg.Margin)

	if !ptr.Active {
		p.Size = p.BaseSize
		return
	}

	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	distance := math.Sqrt(dx*dx + dy*dy)
	if distance >= cfg.InteractionRadius {
		p.Size = p.BaseSize
		return
	}

	force := (cfg.InteractionRadius - distance) / cfg.InteractionRadius
	p.X = clamp(p.X+dx*force*cfg.PointerPull, -cfg.Margin, width+cfg.Margin)
	p.Y = clamp(p.Y+dy*force*cfg.PointerPull, -cfg.Margin, height+cfg.Margin)
	p.Size = p.BaseSize + force*cfg.SizeBoost
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// draw paints the particle as a filled circle
func (p *Particle) draw(s Surface) {
	s.FillCircle(p.X, p.Y, p.Size, p.Color)
}
