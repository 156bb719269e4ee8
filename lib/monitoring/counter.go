// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package monitoring

import (
	"expvar"
	"strconv"

	"go.uber.org/atomic"
)

type Counter struct {
	i atomic.Int64
}

var _ expvar.Var = (*Counter)(nil)

func (c *Counter) String() string {
	return strconv.FormatInt(c.i.Load(), 10)
}

func (c *Counter) Inc() {
	c.i.Inc()
}

func (c *Counter) Get() int64 {
	return c.i.Load()
}
