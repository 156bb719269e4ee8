// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package testutil

import (
	"sort"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestingT interface {
	require.TestingT
	Helper()
}

func ReadFileString(t TestingT, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

func AssertFileEqual(t TestingT, fs afero.Fs, name string, expected string) {
	t.Helper()
	actual := ReadFileString(t, fs, name)
	assert.Equal(t, expected, actual)
}

func WriteFileString(t TestingT, fs afero.Fs, name string, data string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(data), 0644))
}

// DirNames returns sorted names of dir entries.
func DirNames(t TestingT, fs afero.Fs, dir string) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names
}
