// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package generator

import (
	"time"

	"github.com/yandex/qpsgen/core/config"
	"github.com/yandex/qpsgen/core/scenario"
)

const DefaultOutputDir = "gen"

type Config struct {
	// Mode is required unless Clear is set.
	Mode          scenario.LimitMode `config:"mode"`
	UnaryLimit    int64              `config:"unary-limit" validate:"min=1"`
	StreamLimit   int64              `config:"stream-limit" validate:"min=1"`
	BenchmarkTime time.Duration      `config:"benchmark-time" validate:"min-time=1s"`
	Warmup        time.Duration      `config:"warmup" validate:"min-time=0s"`
	InputDir      string             `config:"input-dir" validate:"required"`
	OutputDir     string             `config:"output-dir" validate:"required"`
	Match         scenario.MatchKind `config:"match"`
	// FailFast aborts run on first failed file. By default failed file
	// is reported and remaining files are processed.
	FailFast bool `config:"fail-fast"`
	// Clear removes generated files from OutputDir instead of generation.
	Clear bool `config:"clear"`
}

func DefaultConfig() Config {
	return Config{
		UnaryLimit:    200000,
		StreamLimit:   200000,
		BenchmarkTime: 30 * time.Second,
		Warmup:        5 * time.Second,
		InputDir:      ".",
		OutputDir:     DefaultOutputDir,
		Match:         scenario.DumpMatch,
	}
}

var _ = config.RegisterCustom(validateConfig, Config{})

func validateConfig(h config.ValidateHandle) {
	conf := h.Value().(Config)
	if conf.Clear {
		return
	}
	switch conf.Mode {
	case scenario.TimeLimit, scenario.MessageLimit:
	default:
		h.ReportError("Mode", "limit mode should be time or message")
	}
}

// Policy returns termination policy selected by Mode.
// Returns nil if Mode is not set.
func (c Config) Policy() scenario.Policy {
	switch c.Mode {
	case scenario.TimeLimit:
		return scenario.TimeLimited{Seconds: seconds(c.BenchmarkTime)}
	case scenario.MessageLimit:
		return scenario.MessageLimited{Unary: c.UnaryLimit, Stream: c.StreamLimit}
	}
	return nil
}

func (c Config) Patcher() scenario.Patcher {
	return scenario.NewPatcher(c.Policy(), seconds(c.Warmup))
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
