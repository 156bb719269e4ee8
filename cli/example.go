// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package cli

import (
	"gopkg.in/yaml.v2"

	"github.com/yandex/qpsgen/core/generator"
	"github.com/yandex/qpsgen/core/scenario"
)

func exampleConfig() string {
	conf := generator.DefaultConfig()
	example := yaml.MapSlice{
		{Key: "mode", Value: scenario.MessageLimit.String()},
		{Key: "unary-limit", Value: conf.UnaryLimit},
		{Key: "stream-limit", Value: conf.StreamLimit},
		{Key: "benchmark-time", Value: conf.BenchmarkTime.String()},
		{Key: "warmup", Value: conf.Warmup.String()},
		{Key: "input-dir", Value: conf.InputDir},
		{Key: "output-dir", Value: conf.OutputDir},
		{Key: "match", Value: conf.Match.String()},
		{Key: "fail-fast", Value: conf.FailFast},
	}
	data, err := yaml.Marshal(example)
	if err != nil {
		panic(err)
	}
	return string(data)
}
