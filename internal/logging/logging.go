// Package logging builds the zap logger shared by the CLI and TUI.
//
// The TUI owns the terminal, so logs always go to a file inside the store
// directory rather than stderr.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const FileName = "ideabox.log"

// ParseLevel maps a level name to a zap level; unknown or empty names are info.
func ParseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// New returns a JSON logger appending to <dir>/ideabox.log. When the file
// cannot be opened it returns a no-op logger and the error.
func New(dir string, level string) (*zap.Logger, error) {
	if strings.TrimSpace(dir) == "" {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop(), err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.OutputPaths = []string{filepath.Join(dir, FileName)}
	cfg.ErrorOutputPaths = []string{filepath.Join(dir, FileName)}
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	return logger.Named("ideabox"), nil
}
