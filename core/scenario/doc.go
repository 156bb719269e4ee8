// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

// Package scenario reads, patches and names gRPC QPS benchmark scenario dumps.
//
// Scenario files are JSON documents with single "scenarios" array. Only
// termination fields of each entry and a few client_config fields are
// interpreted, everything else is carried through as is.
package scenario
