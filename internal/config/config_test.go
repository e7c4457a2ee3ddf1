package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pcb-transition/internal/units"
	"pcb-transition/internal/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Transition.MaxSegments)
	assert.Equal(t, 10.0, cfg.Corrections.ArcWidthScale)
	assert.Equal(t, units.MM, cfg.DisplayUnit())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
unit: mil
log_level: debug
transition:
  max_segments: 20
  min_segment_length_mm: 0.1
corrections:
  arc_width_scale: 1
  radian_threshold: 0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, units.Mil, cfg.DisplayUnit())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 20, cfg.Transition.MaxSegments)
	assert.Equal(t, 0.1, cfg.Transition.MinSegmentLengthMM)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 0.05, cfg.Transition.MinWidthChangeMM)
	assert.Equal(t, 10.0, cfg.Corrections.DefaultWidth)
	assert.Equal(t, 1.0, cfg.Corrections.ArcWidthScale)
	assert.Equal(t, 0.0, cfg.Corrections.RadianThreshold)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PCBT_MAX_SEGMENTS", "12")
	t.Setenv("PCBT_UNIT", "mil")
	t.Setenv("PCBT_LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Transition.MaxSegments)
	assert.Equal(t, units.Mil, cfg.DisplayUnit())
	assert.Equal(t, slog.LevelError, cfg.Level())
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("PCBT_MAX_SEGMENTS", "many")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad limit", func(t *testing.T) {
		t.Setenv("PCBT_MAX_SEGMENTS", "0")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad unit", func(t *testing.T) {
		t.Setenv("PCBT_UNIT", "inch")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("transition: [1, 2"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestNewLoggerLevels(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := newLogger(&stderr, &file, slog.LevelInfo)

	logger.Debug("selection converted")
	logger.Info("segment created", "index", 3)

	assert.Contains(t, stderr.String(), "segment created")
	assert.NotContains(t, stderr.String(), "selection converted")

	lines := bytes.Split(bytes.TrimSpace(file.Bytes()), []byte("\n"))
	require.Len(t, lines, 2, "the log file keeps debug records")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "segment created", rec["msg"])
	assert.Equal(t, float64(3), rec["index"])
	assert.Equal(t, version.Version, rec["version"])
}

func TestNewLoggerFile(t *testing.T) {
	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "pcbt.log")

	var stderr bytes.Buffer
	logger, cleanup := cfg.NewLogger(&stderr)
	logger.Info("hello")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, stderr.String(), "hello")
}

func TestNewLoggerFallback(t *testing.T) {
	cfg := Default()
	cfg.LogFile = t.TempDir() // a directory cannot be opened for writing

	var stderr bytes.Buffer
	logger, cleanup := cfg.NewLogger(&stderr)
	require.NotNil(t, logger)
	assert.NoError(t, cleanup())
	assert.Contains(t, stderr.String(), "PCBT_LOG_FILE")

	logger.Info("still logging")
	assert.Contains(t, stderr.String(), "still logging")
}
