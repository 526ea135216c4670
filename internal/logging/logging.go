/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging builds the logr.Logger used across the allocator.
// Loggers are backed by zap and travel through context.Context, so solvers
// pick them up with FromContext instead of a package-level logger.
package logging

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Verbosity levels passed to logr.Logger.V.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// Output formats accepted by NewLogger.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ParseLevel converts a level name ("info", "debug", "trace") or a plain
// verbosity number into a logr verbosity.
func ParseLevel(level string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	case "trace":
		return TRACE, nil
	}
	v, err := strconv.Atoi(level)
	if err != nil || v < 0 || v > math.MaxInt8 {
		return 0, fmt.Errorf("invalid log level %q: expected info, debug, trace or a non-negative integer", level)
	}
	return v, nil
}

// FileOptions configures a rotated log file.
type FileOptions struct {
	Path string

	// MaxSizeMB is the size at which the file is rotated. Zero means 100.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewLogger returns a zap-backed logr.Logger writing to stderr.
func NewLogger(level, format string) (logr.Logger, error) {
	return newLogger(level, format, zapcore.Lock(os.Stderr))
}

// NewFileLogger returns a zap-backed logr.Logger writing to a file rotated by
// lumberjack.
func NewFileLogger(level, format string, file FileOptions) (logr.Logger, error) {
	if file.Path == "" {
		return logr.Discard(), fmt.Errorf("log file path is required")
	}
	return newLogger(level, format, zapcore.AddSync(&lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
		MaxAge:     file.MaxAgeDays,
		Compress:   file.Compress,
	}))
}

func newLogger(level, format string, sink zapcore.WriteSyncer) (logr.Logger, error) {
	verbosity, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch format {
	case "", FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return logr.Discard(), fmt.Errorf("invalid log format %q: expected %s or %s", format, FormatConsole, FormatJSON)
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(zapcore.Level(-verbosity)))
	return zapr.NewLogger(zap.New(core)), nil
}

// NewTestLogger returns a development logger at TRACE verbosity for test suites.
func NewTestLogger() logr.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.Level(-TRACE)),
	)
	return zapr.NewLogger(zap.New(core))
}

// IntoContext stores logger in ctx.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}
