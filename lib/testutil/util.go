// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func NewNullLogger() *zap.Logger {
	c, _ := observer.New(zap.InfoLevel)
	return zap.New(c)
}

// NewObservedLogger returns logger which records entries of level and above.
func NewObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	c, logs := observer.New(level)
	return zap.New(c), logs
}
