package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/nexus-particles/internal/field"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)

	assert.Equal(t, field.DefaultConfig(), cfg.Field)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 60, cfg.Window.TPS)
	assert.Equal(t, 8.0, cfg.Terminal.CellWidth)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  format: json
field:
  count: 120
  interaction_radius: 80
window:
  width: 800
  height: 600
seed: 42
`)
	cfg, err := Load(NewViper(path))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 120, cfg.Field.Count)
	assert.Equal(t, 80.0, cfg.Field.InteractionRadius)
	assert.Equal(t, field.DefaultConnectionDistance, cfg.Field.ConnectionDistance)
	assert.Len(t, cfg.Field.Palette, 4)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NEXUS_FIELD_COUNT", "30")
	t.Setenv("NEXUS_LOGGER_LEVEL", "warn")

	cfg, err := Load(NewViper(writeConfig(t, "field:\n  count: 90\n")))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Field.Count)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(NewViper(writeConfig(t, "field:\n  count: 0\n")))
	assert.ErrorIs(t, err, field.ErrInvalidConfig)

	_, err = Load(NewViper(writeConfig(t, "logger:\n  format: xml\n")))
	assert.ErrorContains(t, err, "unknown format")

	_, err = Load(NewViper(writeConfig(t, "window: [")))
	assert.ErrorContains(t, err, "error reading config file")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
