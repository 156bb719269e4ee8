// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const JSONExt = ".json"

// MatchKind selects input file naming convention.
type MatchKind int

const (
	// DumpMatch accepts scenario_dump_cpp_protobuf_* QPS dumps only.
	DumpMatch MatchKind = iota
	// JSONMatch accepts any *.json except generated outputs.
	JSONMatch
)

func (k MatchKind) String() string {
	if k == JSONMatch {
		return "json"
	}
	return "dump"
}

func (k *MatchKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "dump":
		*k = DumpMatch
	case "json":
		*k = JSONMatch
	default:
		return fmt.Errorf("unknown match kind %q: expected dump or json", text)
	}
	return nil
}

// Match is a matched input file.
type Match struct {
	Stem string
	// Descriptor parsed from the name. Nil if naming convention doesn't encode it.
	Descriptor *Descriptor
}

type Matcher interface {
	Match(name string) (Match, bool)
}

func NewMatcher(kind MatchKind) Matcher {
	if kind == JSONMatch {
		return jsonMatcher{}
	}
	return newDumpMatcher()
}

var (
	dumpPattern = regexp.MustCompile(`^scenario_dump_cpp_protobuf_(?P<client>sync|async)_(?P<rpc>streaming|unary)_qps_unconstrained_(?P<tls>secure|insecure)_(?P<size>[0-9]+)b$`)

	// outputPattern matches FilenameDescriptor.Filename stems.
	outputPattern = regexp.MustCompile(`^qps_(sync|async)_(unary|streaming)_(secure|insecure)_[0-9]+b_-?[0-9]+[KMGs]?$`)
)

type dumpMatcher struct {
	pattern                *regexp.Regexp
	client, rpc, tls, size int
}

func newDumpMatcher() *dumpMatcher {
	return &dumpMatcher{
		pattern: dumpPattern,
		client:  dumpPattern.SubexpIndex("client"),
		rpc:     dumpPattern.SubexpIndex("rpc"),
		tls:     dumpPattern.SubexpIndex("tls"),
		size:    dumpPattern.SubexpIndex("size"),
	}
}

func (m *dumpMatcher) Match(name string) (Match, bool) {
	stem, ok := jsonStem(name)
	if !ok {
		return Match{}, false
	}
	groups := m.pattern.FindStringSubmatch(stem)
	if groups == nil {
		return Match{}, false
	}
	d, err := m.descriptor(groups)
	if err != nil {
		return Match{}, false
	}
	return Match{Stem: stem, Descriptor: &d}, true
}

func (m *dumpMatcher) descriptor(groups []string) (d Descriptor, err error) {
	if d.Client, err = parseClientType(groups[m.client]); err != nil {
		return
	}
	if d.RPC, err = parseRPCType(groups[m.rpc]); err != nil {
		return
	}
	if d.Transport, err = parseTransport(groups[m.tls]); err != nil {
		return
	}
	d.PayloadSize, err = strconv.ParseInt(groups[m.size], 10, 64)
	return
}

type jsonMatcher struct{}

func (jsonMatcher) Match(name string) (Match, bool) {
	stem, ok := jsonStem(name)
	if !ok || IsOutputName(name) {
		return Match{}, false
	}
	return Match{Stem: stem}, true
}

// IsOutputName reports whether name looks like generated scenario filename.
func IsOutputName(name string) bool {
	stem, ok := jsonStem(name)
	return ok && outputPattern.MatchString(stem)
}

func jsonStem(name string) (string, bool) {
	if !strings.HasSuffix(name, JSONExt) {
		return "", false
	}
	stem := strings.TrimSuffix(name, JSONExt)
	return stem, stem != ""
}
