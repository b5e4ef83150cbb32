// Package logging builds the process logger. Standard output carries the
// protocol stream, so every log line goes to a daily-rotated file instead.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dusk-indust/houls/internal/config"
)

// New returns a logger writing to cfg.LogDir/cfg.LogFile and a function that
// flushes and closes the file.
func New(cfg *config.Config) (*zap.Logger, func(), error) {
	w, err := NewDailyWriter(cfg.LogDir, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, w)
	if err != nil {
		_ = w.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = logger.Sync()
		_ = w.Close()
	}
	return logger, cleanup, nil
}

func newLogger(cfg *config.Config, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.LogFormat {
	case "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, ws, level)
	return zap.New(core, zap.AddCaller()).Named("houls"), nil
}
