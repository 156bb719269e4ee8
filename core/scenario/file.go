// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	ScenariosKey        = "scenarios"
	ClientConfigKey     = "client_config"
	BenchmarkSecondsKey = "benchmark_seconds"
	WarmupSecondsKey    = "warmup_seconds"
	MessageLimitKey     = "message_limit"
)

// UseNumber keeps integers exact: they are written back as they were read.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Entry is one benchmark scenario.
type Entry map[string]interface{}

// File is a decoded scenario file.
type File struct {
	// Name identifies file in errors. Usually it's source path.
	Name      string
	Scenarios []Entry
	// extra holds top level keys other than scenarios.
	extra map[string]interface{}
}

// Unmarshal decodes scenario file named name.
func Unmarshal(name string, data []byte) (*File, error) {
	var doc map[string]interface{}
	err := jsonAPI.Unmarshal(data, &doc)
	if err != nil {
		return nil, errors.WithStack(&ParseError{File: name, Err: err})
	}
	raw, ok := doc[ScenariosKey]
	if !ok {
		return nil, schemaError(name, NoEntry, "$."+ScenariosKey, errors.New("key not found"))
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, schemaError(name, NoEntry, "$."+ScenariosKey, fmt.Errorf("expected array, got %T", raw))
	}
	f := &File{
		Name:      name,
		Scenarios: make([]Entry, len(list)),
		extra:     make(map[string]interface{}, len(doc)-1),
	}
	for i, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, schemaError(name, i, "$", fmt.Errorf("expected object, got %T", item))
		}
		f.Scenarios[i] = entry
	}
	for k, v := range doc {
		if k != ScenariosKey {
			f.extra[k] = v
		}
	}
	return f, nil
}

// Marshal encodes f in compact form.
func Marshal(f *File) ([]byte, error) {
	doc := make(map[string]interface{}, len(f.extra)+1)
	for k, v := range f.extra {
		doc[k] = v
	}
	scenarios := f.Scenarios
	if scenarios == nil {
		scenarios = []Entry{}
	}
	doc[ScenariosKey] = scenarios
	data, err := jsonAPI.Marshal(doc)
	return data, errors.WithStack(err)
}

// withScenarios returns shallow copy of f with replaced scenarios.
func (f *File) withScenarios(scenarios []Entry) *File {
	return &File{
		Name:      f.Name,
		Scenarios: scenarios,
		extra:     f.extra,
	}
}

func schemaError(file string, entry int, path string, err error) error {
	return errors.WithStack(&SchemaError{File: file, Entry: entry, Path: path, Err: err})
}
