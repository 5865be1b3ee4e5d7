package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/olivierh59500/nexus-particles/internal/animator"
	"github.com/olivierh59500/nexus-particles/internal/config"
	"github.com/olivierh59500/nexus-particles/internal/field"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func glyphAt(screen tcell.Screen, col, row int) rune {
	r, _, _, _ := screen.GetContent(col, row)
	return r
}

func TestSurfaceBoundsInFieldUnits(t *testing.T) {
	s := NewSurface(newSimScreen(t, 40, 12), 8, 16, 1)
	w, h := s.Bounds()
	assert.Equal(t, 320, w)
	assert.Equal(t, 192, h)

	x, y := s.ToField(2, 3)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 56.0, y)
}

func TestSurfaceDrawsGlyphs(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	s := NewSurface(screen, 8, 16, 1)
	s.Clear()
	assert.Equal(t, ' ', glyphAt(screen, 0, 0))

	s.FillCircle(4, 8, 1.5, field.White)
	s.FillCircle(20, 8, 2.5, field.AccentGold)
	s.FillCircle(36, 8, 3.5, field.AccentTeal)
	s.FillCircle(-5, 8, 3.5, field.AccentTeal)

	assert.Equal(t, GlyphSmall, glyphAt(screen, 0, 0))
	assert.Equal(t, GlyphMedium, glyphAt(screen, 2, 0))
	assert.Equal(t, GlyphLarge, glyphAt(screen, 4, 0))
}

func TestStrokeLineKeepsParticles(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	s := NewSurface(screen, 8, 16, 1)
	s.Clear()
	s.FillCircle(4, 8, 3, field.AccentTeal)
	s.StrokeLine(4, 8, 4+8*5, 8, 1, field.WithAlpha(field.AccentTeal, 0.1))

	assert.Equal(t, GlyphLarge, glyphAt(screen, 0, 0))
	for col := 1; col <= 5; col++ {
		assert.Equal(t, GlyphLink, glyphAt(screen, col, 0), "col %d", col)
	}
	assert.Equal(t, ' ', glyphAt(screen, 6, 0))
}

func TestStrokeLineDiagonalAndClipped(t *testing.T) {
	screen := newSimScreen(t, 10, 10)
	s := NewSurface(screen, 1, 1, 1)
	s.Clear()
	s.StrokeLine(-3.5, -3.5, 3.5, 3.5, 1, field.White)

	for i := 0; i <= 3; i++ {
		assert.Equal(t, GlyphLink, glyphAt(screen, i, i))
	}
	assert.Equal(t, ' ', glyphAt(screen, 4, 4))
}

func TestSyncFollowsScreen(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	s := NewSurface(screen, 2, 4, 1)
	screen.SetSize(30, 6)
	s.Sync()

	w, h := s.Bounds()
	assert.Equal(t, 60, w)
	assert.Equal(t, 24, h)
}

func TestTranslate(t *testing.T) {
	s := NewSurface(newSimScreen(t, 10, 10), 8, 16, 1)

	tests := []struct {
		name string
		ev   tcell.Event
		out  animator.Event
		exit bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), nil, true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), nil, false},
		{"resize", tcell.NewEventResize(12, 4), animator.ResizeEvent{}, false},
		{"mouse", tcell.NewEventMouse(1, 2, tcell.ButtonNone, tcell.ModNone), animator.PointerMoveEvent{X: 12, Y: 40}, false},
		{"blur", tcell.NewEventFocus(false), animator.PointerLeaveEvent{}, false},
		{"focus", tcell.NewEventFocus(true), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, exit := Translate(tt.ev, s)
			assert.Equal(t, tt.out, out)
			assert.Equal(t, tt.exit, exit)
		})
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	cfg := config.TerminalConfig{CellWidth: 8, CellHeight: 16, FPS: 60}

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), screen, cfg, 1, zap.NewNop())
	}()

	screen.InjectMouse(5, 5, tcell.ButtonNone, tcell.ModNone)
	time.Sleep(50 * time.Millisecond)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after escape")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newSimScreen(t, 20, 6)
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.TerminalConfig{CellWidth: 8, CellHeight: 16, FPS: 30}

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, screen, cfg, 1, zap.NewNop())
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
