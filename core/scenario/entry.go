// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/yandex/qpsgen/lib/numbers"
)

const (
	ClientTypePath     = "$.client_config.client_type"
	RPCTypePath        = "$.client_config.rpc_type"
	SecurityParamsPath = "$.client_config.security_params"
	PayloadSizePath    = "$.client_config.payload_config.simple_params.req_size"
)

const (
	asyncClientValue = "ASYNC_CLIENT"
	unaryRPCValue    = "UNARY"
)

// Lookup returns value by JSONPath. Explicit null is returned as nil value
// without error; absent key is an error.
func (e Entry) Lookup(path string) (interface{}, error) {
	val, err := jsonpath.Get(path, map[string]interface{}(e))
	if err != nil {
		return nil, schemaError("", NoEntry, path, err)
	}
	return val, nil
}

func (e Entry) lookupString(path string) (string, error) {
	val, err := e.Lookup(path)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", schemaError("", NoEntry, path, fmt.Errorf("expected string, got %T", val))
	}
	return s, nil
}

// ClientType is async for ASYNC_CLIENT, sync for anything else.
func (e Entry) ClientType() (ClientType, error) {
	s, err := e.lookupString(ClientTypePath)
	if err != nil {
		return 0, err
	}
	if s == asyncClientValue {
		return AsyncClient, nil
	}
	return SyncClient, nil
}

// RPCType is unary for UNARY, streaming for anything else.
func (e Entry) RPCType() (RPCType, error) {
	s, err := e.lookupString(RPCTypePath)
	if err != nil {
		return 0, err
	}
	if s == unaryRPCValue {
		return UnaryRPC, nil
	}
	return StreamingRPC, nil
}

// Transport is secure when security_params present and not null.
func (e Entry) Transport() (Transport, error) {
	val, err := e.Lookup(SecurityParamsPath)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return InsecureTransport, nil
	}
	return SecureTransport, nil
}

func (e Entry) PayloadSize() (int64, error) {
	val, err := e.Lookup(PayloadSizePath)
	if err != nil {
		return 0, err
	}
	size, err := numbers.ParseInt(val)
	if err != nil {
		return 0, schemaError("", NoEntry, PayloadSizePath, err)
	}
	return size, nil
}

func (e Entry) Describe() (d Descriptor, err error) {
	if d.Client, err = e.ClientType(); err != nil {
		return
	}
	if d.RPC, err = e.RPCType(); err != nil {
		return
	}
	if d.Transport, err = e.Transport(); err != nil {
		return
	}
	d.PayloadSize, err = e.PayloadSize()
	return
}

func (e Entry) clone() Entry {
	c := make(Entry, len(e)+1)
	for k, v := range e {
		c[k] = v
	}
	return c
}
