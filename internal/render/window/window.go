// Package window hosts the particle field in a desktop window via Ebitengine.
package window

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/olivierh59500/nexus-particles/internal/animator"
	"github.com/olivierh59500/nexus-particles/internal/backdrop"
	"github.com/olivierh59500/nexus-particles/internal/config"
)

// SurfaceID names the window surface on the host
const SurfaceID = "particles"

// Surface adapts the screen image Ebitengine hands to Draw
type Surface struct {
	dst           *ebiten.Image
	background    *ebiten.Image
	width, height int
}

// Bounds returns the layout size
func (s *Surface) Bounds() (int, int) {
	return s.width, s.height
}

// Clear implements field.Surface
func (s *Surface) Clear() {
	if s.dst == nil {
		return
	}
	if s.background == nil {
		s.dst.Fill(backdrop.Deep)
		return
	}
	s.dst.DrawImage(s.background, nil)
}

// FillCircle implements field.Surface
func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

// StrokeLine implements field.Surface
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	if s.dst == nil {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

// Game struct: implements ebiten.Game around one animator
type Game struct {
	anim    *animator.Animator
	surface *Surface
	seed    int64
	logger  *zap.Logger
}

// NewGame builds the window host sized to cfg
func NewGame(cfg config.WindowConfig, seed int64, logger *zap.Logger, opts ...animator.Option) *Game {
	g := &Game{
		surface: &Surface{width: cfg.Width, height: cfg.Height},
		seed:    seed,
		logger:  logger.Named("window"),
	}
	g.surface.background = backgroundImage(cfg.Width, cfg.Height, seed)

	opts = append(opts, animator.WithLogger(logger))
	g.anim = animator.New(animator.Surfaces{SurfaceID: g.surface}, SurfaceID, opts...)
	return g
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	mx, my := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < g.surface.width && my < g.surface.height
	g.anim.PointerAt(float64(mx), float64(my), inside)

	g.anim.Step()
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.anim.Render()
	g.surface.dst = nil
}

// Layout follows the window size; a change regenerates the field
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	outsideWidth, outsideHeight = max(outsideWidth, 1), max(outsideHeight, 1)
	if outsideWidth != g.surface.width || outsideHeight != g.surface.height {
		g.surface.width, g.surface.height = outsideWidth, outsideHeight
		if g.surface.background != nil {
			g.surface.background.Deallocate()
		}
		g.surface.background = backgroundImage(outsideWidth, outsideHeight, g.seed)
		g.anim.Resize()
	}
	return g.surface.width, g.surface.height
}

func backgroundImage(w, h int, seed int64) *ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	return ebiten.NewImageFromImage(backdrop.Generate(w, h, seed))
}

// Run opens the window and blocks until it is closed
func Run(cfg config.WindowConfig, seed int64, logger *zap.Logger, opts ...animator.Option) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	g := NewGame(cfg, seed, logger, opts...)
	g.logger.Info("window host running", zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
