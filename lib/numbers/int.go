// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package numbers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ParseInt converts decoded JSON or config value to int64.
// Floats are accepted only when they hold an integral value.
func ParseInt(input any) (int64, error) {
	switch v := input.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if v > uint(math.MaxInt64) {
			return 0, fmt.Errorf("uint value overflows int64")
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > uint64(math.MaxInt64) {
			return 0, fmt.Errorf("uint64 value overflows int64")
		}
		return int64(v), nil
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("cannot parse number '%v' as int64: %w", v, err)
		}
		return i, nil
	case string:
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse '%v' as int64: %w", v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type: %T", input)
	}
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("float value %v is not an int64", f)
	}
	return int64(f), nil
}
