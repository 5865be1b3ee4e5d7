// Package animator binds a particle field to a host drawing surface and the
// host's resize and pointer signals.
package animator

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/olivierh59500/nexus-particles/internal/field"
	"github.com/olivierh59500/nexus-particles/internal/frame"
)

// LargeFieldWarning is the particle count above which the O(n²) link scan is logged as a concern
const LargeFieldWarning = 200

// Surface is a drawing surface that knows its pixel size
type Surface interface {
	field.Surface
	Bounds() (width, height int)
}

// Host resolves drawing surfaces by identifier
type Host interface {
	Surface(id string) (Surface, bool)
}

// Surfaces is a map-backed Host
type Surfaces map[string]Surface

// Surface implements Host
func (s Surfaces) Surface(id string) (Surface, bool) {
	surf, ok := s[id]
	if !ok || surf == nil {
		return nil, false
	}
	return surf, true
}

// Option customises an Animator
type Option func(*Animator)

// WithConfig sets the field configuration
func WithConfig(cfg field.Config) Option {
	return func(a *Animator) { a.cfg = cfg }
}

// WithRand sets the random source used to populate the field
func WithRand(rng *rand.Rand) Option {
	return func(a *Animator) { a.rng = rng }
}

// WithPresent registers a hook run after every drawn frame, e.g. a buffer flip
func WithPresent(fn func()) Option {
	return func(a *Animator) { a.present = fn }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Animator) { a.logger = l }
}

// Animator drives one particle field on one surface. An Animator whose
// surface could not be found is inert: every method is a no-op.
type Animator struct {
	id      string
	surface Surface
	field   *field.Field
	cfg     field.Config
	rng     *rand.Rand
	logger  *zap.Logger
	present func()
	frames  atomic.Uint64
}

// syncer is implemented by surfaces that cache their size
type syncer interface {
	Sync()
}

// New looks up the surface id on host and builds the field sized to it.
// A missing surface or an unusable config leaves the animator inert.
func New(host Host, id string, opts ...Option) *Animator {
	a := &Animator{
		id:     id,
		cfg:    field.DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("animator").With(zap.String("surface", id))
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if host == nil {
		a.logger.Debug("no host; particle field disabled")
		return a
	}
	surface, ok := host.Surface(id)
	if !ok {
		a.logger.Debug("surface not found; particle field disabled")
		return a
	}

	w, h := surface.Bounds()
	f, err := field.New(float64(w), float64(h), a.cfg, a.rng)
	if err != nil {
		a.logger.Warn("particle field disabled", zap.Error(err))
		return a
	}
	if a.cfg.Count > LargeFieldWarning {
		a.logger.Warn("link scan is quadratic in particle count",
			zap.Int("count", a.cfg.Count),
			zap.Int("pairs_per_frame", a.cfg.Count*(a.cfg.Count-1)/2))
	}

	a.surface = surface
	a.field = f
	a.logger.Debug("particle field started", zap.Int("width", w), zap.Int("height", h), zap.Int("count", f.Len()))
	return a
}

// Active reports whether the animator has a surface to draw on
func (a *Animator) Active() bool {
	return a.field != nil
}

// Field exposes the underlying field, nil when inert
func (a *Animator) Field() *field.Field {
	return a.field
}

// Frames returns the number of frames drawn so far; safe to call while Run is active
func (a *Animator) Frames() uint64 {
	return a.frames.Load()
}

// Frame draws one animation frame onto the surface
func (a *Animator) Frame() {
	if a.field == nil {
		return
	}
	a.field.Frame(a.surface)
	a.frames.Add(1)
	if a.present != nil {
		a.present()
	}
}

// Step advances the field one frame without drawing, for hosts that
// separate update from draw
func (a *Animator) Step() {
	if a.field == nil {
		return
	}
	a.field.Step()
}

// Render draws the current field state without advancing it
func (a *Animator) Render() {
	if a.field == nil {
		return
	}
	a.field.Render(a.surface)
	a.frames.Add(1)
	if a.present != nil {
		a.present()
	}
}

// Resize re-reads the surface bounds and regenerates the particles
func (a *Animator) Resize() {
	if a.field == nil {
		return
	}
	if s, ok := a.surface.(syncer); ok {
		s.Sync()
	}
	w, h := a.surface.Bounds()
	a.field.Resize(float64(w), float64(h))
	a.logger.Debug("resized", zap.Int("width", w), zap.Int("height", h))
}

// PointerMove records the pointer position in surface coordinates
func (a *Animator) PointerMove(x, y float64) {
	if a.field == nil {
		return
	}
	a.field.SetPointer(x, y)
}

// PointerLeave marks the pointer as absent
func (a *Animator) PointerLeave() {
	if a.field == nil {
		return
	}
	a.field.ClearPointer()
}

// PointerAt tracks the pointer while inside is true and clears it otherwise
func (a *Animator) PointerAt(x, y float64, inside bool) {
	if inside {
		a.PointerMove(x, y)
		return
	}
	a.PointerLeave()
}

// Handle applies a host event
func (a *Animator) Handle(ev Event) {
	switch ev := ev.(type) {
	case ResizeEvent:
		a.Resize()
	case PointerMoveEvent:
		a.PointerMove(ev.X, ev.Y)
	case PointerLeaveEvent:
		a.PointerLeave()
	}
}

// Run draws a frame on every tick until the returned handle is stopped.
// Events are applied on the same goroutine, between frames. An inert
// animator returns an already finished handle.
func (a *Animator) Run(ctx context.Context, ticker frame.Ticker, events <-chan Event) *frame.Handle {
	if a.field == nil {
		ticker.Stop()
		return frame.Finished()
	}
	return frame.StartWith(ctx, ticker, events, a.Handle, a.Frame)
}
