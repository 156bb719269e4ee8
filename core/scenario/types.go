// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import "fmt"

type ClientType int

const (
	SyncClient ClientType = iota
	AsyncClient
)

func (c ClientType) String() string {
	if c == AsyncClient {
		return "async"
	}
	return "sync"
}

func parseClientType(s string) (ClientType, error) {
	switch s {
	case "sync":
		return SyncClient, nil
	case "async":
		return AsyncClient, nil
	}
	return 0, fmt.Errorf("unknown client type %q", s)
}

type RPCType int

const (
	UnaryRPC RPCType = iota
	StreamingRPC
)

func (r RPCType) String() string {
	if r == StreamingRPC {
		return "streaming"
	}
	return "unary"
}

func parseRPCType(s string) (RPCType, error) {
	switch s {
	case "unary":
		return UnaryRPC, nil
	case "streaming":
		return StreamingRPC, nil
	}
	return 0, fmt.Errorf("unknown rpc type %q", s)
}

type Transport int

const (
	InsecureTransport Transport = iota
	SecureTransport
)

func (t Transport) String() string {
	if t == SecureTransport {
		return "secure"
	}
	return "insecure"
}

func parseTransport(s string) (Transport, error) {
	switch s {
	case "insecure":
		return InsecureTransport, nil
	case "secure":
		return SecureTransport, nil
	}
	return 0, fmt.Errorf("unknown transport %q", s)
}

// Descriptor is a client shape of scenario: everything that output
// filename encodes except the limit.
type Descriptor struct {
	Client      ClientType
	RPC         RPCType
	Transport   Transport
	PayloadSize int64
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s_%s_%s_%db", d.Client, d.RPC, d.Transport, d.PayloadSize)
}
