// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package str

import (
	"strconv"
	"strings"
)

var countUnits = []struct {
	zeros  int
	suffix string
}{
	{9, "G"},
	{6, "M"},
	{3, "K"},
}

// FormatCount formats n in decimal, replacing the largest complete group of
// trailing zeros with a unit suffix: 200000 -> 200K, 1000000000 -> 1G.
// Values are never rounded: 1500000000 -> 1500M.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n == 0 {
		return s
	}
	zeros := len(s) - len(strings.TrimRight(s, "0"))
	for _, u := range countUnits {
		if zeros >= u.zeros {
			return s[:len(s)-u.zeros] + u.suffix
		}
	}
	return s
}
