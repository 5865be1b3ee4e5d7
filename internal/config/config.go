// Package config loads application settings from an optional YAML file,
// NEXUS_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/olivierh59500/nexus-particles/internal/field"
)

// EnvPrefix is prepended to every environment override, e.g. NEXUS_FIELD_COUNT
const EnvPrefix = "NEXUS"

// LoggerConfig configures the zap logger
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name"`
	AddSource   bool   `mapstructure:"add_source"`
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size"` // megabytes
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"` // days
	Compress    bool   `mapstructure:"compress"`
}

// WindowConfig configures the desktop window host
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	TPS    int    `mapstructure:"tps"`
}

// TerminalConfig configures the terminal host. One cell covers
// CellWidth x CellHeight surface units.
type TerminalConfig struct {
	CellWidth  float64 `mapstructure:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height"`
	FPS        int     `mapstructure:"fps"`
}

// Config is the whole application configuration
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Field    field.Config   `mapstructure:"field"`
	Window   WindowConfig   `mapstructure:"window"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Seed     int64          `mapstructure:"seed"` // 0 picks a time-based seed
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "nexus-particles")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	fc := field.DefaultConfig()
	v.SetDefault("field.count", fc.Count)
	v.SetDefault("field.interaction_radius", fc.InteractionRadius)
	v.SetDefault("field.connection_distance", fc.ConnectionDistance)
	v.SetDefault("field.margin", fc.Margin)
	v.SetDefault("field.min_size", fc.MinSize)
	v.SetDefault("field.max_size", fc.MaxSize)
	v.SetDefault("field.max_speed", fc.MaxSpeed)
	v.SetDefault("field.pointer_pull", fc.PointerPull)
	v.SetDefault("field.size_boost", fc.SizeBoost)
	v.SetDefault("field.line_opacity", fc.LineOpacity)
	v.SetDefault("field.line_width", fc.LineWidth)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "NEXUS")
	v.SetDefault("window.tps", 60)

	v.SetDefault("terminal.cell_width", 8.0)
	v.SetDefault("terminal.cell_height", 16.0)
	v.SetDefault("terminal.fps", 30)

	v.SetDefault("seed", 0)
}

// NewViper returns a viper instance wired for env overrides and defaults.
// If path is empty, ./config.yaml is used when present.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads, decodes and validates the configuration
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Colours are not configurable.
	defaults := field.DefaultConfig()
	cfg.Field.LineColor = defaults.LineColor
	cfg.Field.Palette = defaults.Palette

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the decoded configuration
func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal: cell size must be positive, got %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger: unknown format %q", c.Logger.Format)
	}
	return nil
}
