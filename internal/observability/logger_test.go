package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olivierh59500/nexus-particles/internal/config"
)

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	assert.False(t, Initialized())
	l := GetLogger()
	require.NotNil(t, l)
	l.Info("dropped")
}

func TestInitializeJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "nexus"}, zapcore.AddSync(&buf))
	assert.True(t, Initialized())
	GetLogger().Named("animator").Debug("frame", zap.Int("particles", 60))
	Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "nexus.animator", entry["logger"])
	assert.Equal(t, "frame", entry["msg"])
	assert.EqualValues(t, 60, entry["particles"])
}

func TestInitializeLevelFilter(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "warn", Format: "console"}, zapcore.AddSync(&buf))
	GetLogger().Info("hidden")
	GetLogger().Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))
	GetLogger().Info("hello")

	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestInitializeLogFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "nexus.log")
	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}, zapcore.AddSync(&buf))
	GetLogger().Info("to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
}
