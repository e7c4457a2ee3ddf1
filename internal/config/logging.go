package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"

	"pcb-transition/internal/version"
)

// NewLogger builds the logger for one pcbt run. Records at LogLevel and
// above go to stderr as text. The JSON log file keeps debug records too, so
// a failed transition can be traced after the fact. When LogFile cannot be
// opened the logger writes to stderr only.
func (c Config) NewLogger(stderr io.Writer) (*slog.Logger, func() error) {
	level := c.Level()

	file, err := openLogFile(c.LogFile)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		logger.Warn("cannot open PCBT_LOG_FILE, logging to stderr only", "file", c.LogFile, "error", err)
		return logger, func() error { return nil }
	}
	return newLogger(stderr, file, level), file.Close
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// newLogger fans records out to a text handler on stderr and a JSON handler
// on file tagged with the build version.
func newLogger(stderr, file io.Writer, level slog.Level) *slog.Logger {
	toStderr := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	toFile := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}).
		WithAttrs([]slog.Attr{slog.String("version", version.Version)})
	return slog.New(slogmulti.Fanout(toStderr, toFile))
}
