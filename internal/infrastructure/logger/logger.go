package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelLogger keeps the Printf call style on top of a zap sugared logger.
type LevelLogger struct {
	level zapcore.Level
}

func (l *LevelLogger) Printf(format string, args ...any) {
	s := sugar()
	switch l.level {
	case zapcore.DebugLevel:
		s.Debugf(format, args...)
	case zapcore.WarnLevel:
		s.Warnf(format, args...)
	case zapcore.ErrorLevel:
		s.Errorf(format, args...)
	default:
		s.Infof(format, args...)
	}
}

var (
	Info  = &LevelLogger{level: zapcore.InfoLevel}
	Error = &LevelLogger{level: zapcore.ErrorLevel}
	Debug = &LevelLogger{level: zapcore.DebugLevel}
	Warn  = &LevelLogger{level: zapcore.WarnLevel}
)

var (
	mu   sync.RWMutex
	base *zap.Logger
	sug  *zap.SugaredLogger
)

func init() {
	l, err := build("info", "auto")
	if err != nil {
		l = zap.NewNop()
	}
	replace(l)
}

// Setup rebuilds the process logger. format is console, json or auto.
func Setup(level, format string) error {
	l, err := build(level, format)
	if err != nil {
		return err
	}
	replace(l)
	return nil
}

// L returns the structured logger for call sites that attach fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Use installs l as the process logger and returns a func restoring the
// previous one.
func Use(l *zap.Logger) (restore func()) {
	prev := L()
	replace(l)
	return func() { replace(prev) }
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sug
}

func replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	// Printf wrappers add one frame.
	sug = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func build(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch resolveFormat(format) {
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	return cfg.Build()
}

func resolveFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "auto" {
		return format
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "console"
	}
	return "json"
}
