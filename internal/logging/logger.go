// Package logging builds the zap loggers used as the diagnostic channel.
// Loggers are injected and usually Named, e.g. lggr.Named("upload").
// Tests should use Test or TestObserved; New is for the running app.
package logging

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = zapcore.InfoLevel

// ParseLevel converts a textual level ("debug", "info", ...) into a zap level.
// An empty string yields DefaultLevel.
func ParseLevel(text string) (zapcore.Level, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(text))); err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", text, err)
	}
	return lvl, nil
}

// New returns a console logger writing to stderr at the given level
func New(lvl zapcore.Level) (*zap.SugaredLogger, error) {
	return NewWith(func(cfg *zap.Config) {
		cfg.Level.SetLevel(lvl)
	})
}

// NewWith returns a logger from a modified development-style [zap.Config]
func NewWith(cfgFn func(*zap.Config)) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.Sampling = nil
	cfgFn(&cfg)

	core, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return core.Sugar(), nil
}

// Test returns a logger that writes through tb.Log
func Test(tb testing.TB) *zap.SugaredLogger {
	tb.Helper()
	return zaptest.NewLogger(tb).Sugar()
}

// TestObserved returns a test logger and the entries it records at lvl or above
func TestObserved(tb testing.TB, lvl zapcore.Level) (*zap.SugaredLogger, *observer.ObservedLogs) {
	tb.Helper()
	oCore, logs := observer.New(lvl)
	observe := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, oCore)
	})

	return zaptest.NewLogger(tb, zaptest.WrapOptions(observe)).Sugar(), logs
}

// Nop returns a logger that discards everything
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
