package utils

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// LogOptions configures NewLogger. Rotation fields apply only when File is
// set; zero values keep the lumberjack defaults.
type LogOptions struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger returns the process logger configured from LOG_FILE and LOG_LEVEL.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		logger = NewLogger(LogOptions{File: os.Getenv("LOG_FILE"), Level: os.Getenv("LOG_LEVEL")})
	})
	return logger
}

// NewLogger writes JSON to stdout and, when opts.File is set, to a rotating
// file as well. If the log directory cannot be created only stdout is used.
func NewLogger(opts LogOptions) *zap.Logger {
	lvl := zapcore.InfoLevel
	if opts.Level != "" {
		if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
			lvl = zapcore.InfoLevel
		}
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)
	consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
	if opts.File == "" {
		return zap.New(consoleCore)
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return zap.New(consoleCore)
	}
	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(zapcore.NewTee(fileCore, consoleCore))
}
