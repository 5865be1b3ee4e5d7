package field

import (
	"errors"
	"fmt"
	"image/color"
)

// Field constants
const (
	DefaultCount              = 60
	DefaultInteractionRadius  = 100.0
	DefaultConnectionDistance = 150.0
	DefaultMargin             = 10.0
	DefaultMinSize            = 1.0
	DefaultMaxSize            = 4.0
	DefaultMaxSpeed           = 0.25
	DefaultPointerPull        = 0.02
	DefaultSizeBoost          = 2.0
	DefaultLineOpacity        = 0.15
	DefaultLineWidth          = 1.0
)

// Accent colours
var (
	AccentTeal   = color.NRGBA{R: 63, G: 212, B: 217, A: 255}
	AccentGold   = color.NRGBA{R: 212, G: 160, B: 18, A: 255}
	AccentPurple = color.NRGBA{R: 139, G: 92, B: 246, A: 255}
	White        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// DefaultPalette returns the four translucent particle colours
func DefaultPalette() []color.NRGBA {
	return []color.NRGBA{
		WithAlpha(AccentTeal, 0.6),
		WithAlpha(AccentGold, 0.5),
		WithAlpha(AccentPurple, 0.4),
		WithAlpha(White, 0.3),
	}
}

// WithAlpha returns c with its alpha channel set to a (0..1)
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// Config holds the tunables of a field
type Config struct {
	Count              int           `mapstructure:"count"`
	InteractionRadius  float64       `mapstructure:"interaction_radius"`
	ConnectionDistance float64       `mapstructure:"connection_distance"`
	Margin             float64       `mapstructure:"margin"`
	MinSize            float64       `mapstructure:"min_size"`
	MaxSize            float64       `mapstructure:"max_size"`
	MaxSpeed           float64       `mapstructure:"max_speed"`
	PointerPull        float64       `mapstructure:"pointer_pull"`
	SizeBoost          float64       `mapstructure:"size_boost"`
	LineOpacity        float64       `mapstructure:"line_opacity"`
	LineWidth          float64       `mapstructure:"line_width"`
	LineColor          color.NRGBA   `mapstructure:"-"`
	Palette            []color.NRGBA `mapstructure:"-"`
}

// DefaultConfig returns the stock field configuration
func DefaultConfig() Config {
	return Config{
		Count:              DefaultCount,
		InteractionRadius:  DefaultInteractionRadius,
		ConnectionDistance: DefaultConnectionDistance,
		Margin:             DefaultMargin,
		MinSize:            DefaultMinSize,
		MaxSize:            DefaultMaxSize,
		MaxSpeed:           DefaultMaxSpeed,
		PointerPull:        DefaultPointerPull,
		SizeBoost:          DefaultSizeBoost,
		LineOpacity:        DefaultLineOpacity,
		LineWidth:          DefaultLineWidth,
		LineColor:          AccentTeal,
		Palette:            DefaultPalette(),
	}
}

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid field config")

// Validate checks that the configuration can drive a field
func (c Config) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	case c.InteractionRadius <= 0:
		return fmt.Errorf("%w: interaction radius must be positive, got %g", ErrInvalidConfig, c.InteractionRadius)
	case c.ConnectionDistance <= 0:
		return fmt.Errorf("%w: connection distance must be positive, got %g", ErrInvalidConfig, c.ConnectionDistance)
	case c.Margin < 0:
		return fmt.Errorf("%w: margin must not be negative, got %g", ErrInvalidConfig, c.Margin)
	case c.MinSize <= 0 || c.MinSize >= c.MaxSize:
		return fmt.Errorf("%w: size range [%g,%g) is empty", ErrInvalidConfig, c.MinSize, c.MaxSize)
	case c.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed must not be negative, got %g", ErrInvalidConfig, c.MaxSpeed)
	case c.PointerPull < 0 || c.PointerPull > 1:
		return fmt.Errorf("%w: pointer pull must be within [0,1], got %g", ErrInvalidConfig, c.PointerPull)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	return nil
}
