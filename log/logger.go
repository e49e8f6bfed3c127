// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package log builds the structured loggers used by the cordhttp
// command and accepted by cordhttp.Client.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a logger which writes JSON records of at least the
// given level to stderr.
func NewLogger(lvl string) (*zap.Logger, error) {
	sink, _, err := zap.Open("stderr")
	if err != nil {
		return nil, fmt.Errorf("open sink: %w", err)
	}
	return New(lvl, sink)
}

// New creates a logger which writes JSON records of at least the given
// level to w.
func New(lvl string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	zapLevel, err := zapLevelFromString(lvl)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "subsystem"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(
		"2006-01-02T15:04:05.999Z07:00",
	)

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig), w, zap.NewAtomicLevelAt(zapLevel),
	)
	return zap.New(core, zap.ErrorOutput(w)).Named("cordhttp"), nil
}

func zapLevelFromString(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zapcore.Level(0), fmt.Errorf("unsupported level: %s", s)
	}
}
