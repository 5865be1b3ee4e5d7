package term

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/olivierh59500/nexus-particles/internal/animator"
	"github.com/olivierh59500/nexus-particles/internal/config"
	"github.com/olivierh59500/nexus-particles/internal/frame"
)

// SurfaceID names the terminal surface on the host
const SurfaceID = "particles"

// NewScreen creates and initialises a tcell screen with mouse motion and focus reporting
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	return screen, nil
}

// Run animates the field on screen until ctx is done or the user quits.
// The caller owns the screen and must Fini it afterwards.
func Run(ctx context.Context, screen tcell.Screen, cfg config.TerminalConfig, seed int64, logger *zap.Logger, opts ...animator.Option) error {
	logger = logger.Named("term")
	surf := NewSurface(screen, cfg.CellWidth, cfg.CellHeight, seed)

	opts = append(opts, animator.WithLogger(logger), animator.WithPresent(screen.Show))
	anim := animator.New(animator.Surfaces{SurfaceID: surf}, SurfaceID, opts...)

	events := make(chan animator.Event, 64)
	quit := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)

	go poll(screen, surf, events, quit, stop)

	h := anim.Run(ctx, frame.NewFPSTicker(cfg.FPS), events)
	defer h.Stop()

	cols, rows := screen.Size()
	logger.Info("terminal host running", zap.Int("cols", cols), zap.Int("rows", rows), zap.Bool("active", anim.Active()))

	select {
	case <-ctx.Done():
	case <-quit:
	}
	return nil
}

// poll forwards screen events until the screen is finalised or stop closes
func poll(screen tcell.Screen, surf *Surface, events chan<- animator.Event, quit chan<- struct{}, stop <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		out, exit := Translate(ev, surf)
		if exit {
			close(quit)
			return
		}
		if out == nil {
			continue
		}
		select {
		case events <- out:
		case <-stop:
			return
		}
	}
}

// Translate maps a tcell event to an animator event; exit is true for quit keys
func Translate(ev tcell.Event, surf *Surface) (out animator.Event, exit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return nil, true
		case tcell.KeyRune:
			if ev.Rune() == 'q' || (ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
				return nil, true
			}
		}
	case *tcell.EventResize:
		return animator.ResizeEvent{}, false
	case *tcell.EventMouse:
		x, y := surf.ToField(ev.Position())
		return animator.PointerMoveEvent{X: x, Y: y}, false
	case *tcell.EventFocus:
		if !ev.Focused {
			return animator.PointerLeaveEvent{}, false
		}
	}
	return nil, false
}
