// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import "github.com/pkg/errors"

// Patcher rewrites termination fields of every scenario entry.
type Patcher struct {
	Policy        Policy
	WarmupSeconds int64
}

func NewPatcher(policy Policy, warmupSeconds int64) Patcher {
	return Patcher{Policy: policy, WarmupSeconds: warmupSeconds}
}

// Patch returns patched copy of f. Input is left untouched.
// All entries are checked before any is patched, so on error
// nothing is produced.
func (p Patcher) Patch(f *File) (*File, error) {
	if p.Policy == nil {
		return nil, errors.New("termination policy is not set")
	}
	rpcs := make([]RPCType, len(f.Scenarios))
	for i, entry := range f.Scenarios {
		rpc, err := entry.RPCType()
		if err != nil {
			return nil, locate(err, f.Name, i)
		}
		rpcs[i] = rpc
	}
	set, drop := p.Policy.keys()
	scenarios := make([]Entry, len(f.Scenarios))
	for i, entry := range f.Scenarios {
		patched := entry.clone()
		delete(patched, drop)
		patched[set] = p.Policy.Limit(rpcs[i])
		patched[WarmupSecondsKey] = p.WarmupSeconds
		scenarios[i] = patched
	}
	return f.withScenarios(scenarios), nil
}
