// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yandex/qpsgen/lib/str"
)

// LimitMode selects termination policy kind.
type LimitMode int

const (
	UnsetLimit LimitMode = iota
	TimeLimit
	MessageLimit
)

func (m LimitMode) String() string {
	switch m {
	case TimeLimit:
		return "time"
	case MessageLimit:
		return "message"
	}
	return ""
}

func (m *LimitMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "":
		*m = UnsetLimit
	case "time":
		*m = TimeLimit
	case "message", "msg":
		*m = MessageLimit
	default:
		return fmt.Errorf("unknown limit mode %q: expected time or message", text)
	}
	return nil
}

// Policy is scenario termination condition. Implemented by TimeLimited and
// MessageLimited only.
type Policy interface {
	Mode() LimitMode
	// Limit is the value set to the limit field of entry with given rpc type.
	Limit(rpc RPCType) int64
	// Token is the limit representation in output filename.
	Token(rpc RPCType) string
	// keys returns field to set and field to remove.
	keys() (set, drop string)
}

// TimeLimited terminates benchmark after fixed wall-clock duration.
type TimeLimited struct {
	Seconds int64
}

var _ Policy = TimeLimited{}

func (TimeLimited) Mode() LimitMode { return TimeLimit }

func (p TimeLimited) Limit(RPCType) int64 { return p.Seconds }

func (p TimeLimited) Token(RPCType) string {
	return strconv.FormatInt(p.Seconds, 10) + "s"
}

func (TimeLimited) keys() (string, string) { return BenchmarkSecondsKey, MessageLimitKey }

// MessageLimited terminates benchmark after fixed count of messages.
type MessageLimited struct {
	Unary  int64
	Stream int64
}

var _ Policy = MessageLimited{}

func (MessageLimited) Mode() LimitMode { return MessageLimit }

func (p MessageLimited) Limit(rpc RPCType) int64 {
	if rpc == UnaryRPC {
		return p.Unary
	}
	return p.Stream
}

func (p MessageLimited) Token(rpc RPCType) string {
	return str.FormatCount(p.Limit(rpc))
}

func (MessageLimited) keys() (string, string) { return MessageLimitKey, BenchmarkSecondsKey }
