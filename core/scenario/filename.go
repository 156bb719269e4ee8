// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"

	"github.com/pkg/errors"
)

var errNoScenarios = errors.New("file has no scenarios")

// FilenameDescriptor is everything output filename is built from.
type FilenameDescriptor struct {
	Descriptor
	Limit string
}

// Filename returns qps_{client}_{rpc}_{tls}_{size}b_{limit}.json.
func (d FilenameDescriptor) Filename() string {
	return fmt.Sprintf("qps_%s_%s_%s_%db_%s%s", d.Client, d.RPC, d.Transport, d.PayloadSize, d.Limit, JSONExt)
}

// Describe returns client shape of f. Only the first entry is inspected:
// all entries of a dump share client shape.
func Describe(f *File) (Descriptor, error) {
	if len(f.Scenarios) == 0 {
		return Descriptor{}, schemaError(f.Name, NoEntry, "$."+ScenariosKey, errNoScenarios)
	}
	d, err := f.Scenarios[0].Describe()
	if err != nil {
		return Descriptor{}, locate(err, f.Name, 0)
	}
	return d, nil
}

// Derive computes output filename descriptor of f under policy.
func Derive(f *File, policy Policy) (FilenameDescriptor, error) {
	d, err := Describe(f)
	if err != nil {
		return FilenameDescriptor{}, err
	}
	return FilenameDescriptor{Descriptor: d, Limit: policy.Token(d.RPC)}, nil
}

// DeriveFilename is shortcut for Derive(f, policy).Filename().
func DeriveFilename(f *File, policy Policy) (string, error) {
	d, err := Derive(f, policy)
	if err != nil {
		return "", err
	}
	return d.Filename(), nil
}
