// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package main

import "github.com/yandex/qpsgen/cli"

func main() {
	cli.Run()
}
