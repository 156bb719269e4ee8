// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package ginkgoutil

import (
	"testing"

	"github.com/onsi/ginkgo"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func SetupSuite() {
	format.UseStringerRepresentation = true // Otherwise error stacks have binary format.
	ReplaceGlobalLogger()
	gomega.RegisterFailHandler(ginkgo.Fail)
}

func RunSuite(t *testing.T, description string) {
	SetupSuite()
	ginkgo.RunSpecs(t, description)
}

func ReplaceGlobalLogger() *zap.Logger {
	log := NewLogger()
	zap.ReplaceGlobals(log)
	zap.RedirectStdLog(log)
	return log
}

func NewLogger() *zap.Logger {
	conf := zap.NewDevelopmentConfig()
	enc := zapcore.NewConsoleEncoder(conf.EncoderConfig)
	core := zapcore.NewCore(enc, zapcore.AddSync(ginkgo.GinkgoWriter), zap.DebugLevel)
	log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.DPanicLevel))
	return log
}
