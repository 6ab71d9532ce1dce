// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/util"
)

func TestCanonical(t *testing.T) {
	items := []struct {
		in  string
		out string
		err error
	}{
		{"127.0.0.1:1234", "127.0.0.1:1234", nil},
		{" 10.0.0.1:80 ", "10.0.0.1:80", nil},
		{"[::1]:1234", "[::1]:1234", nil},
		{"[0:0::1]:443", "[::1]:443", nil},
		{"*:2130", "[::]:2130", nil},
		{"[::ffff:127.0.0.1]:99", "127.0.0.1:99", nil},
		{"localhost:1234", "", fault.ErrInvalidIPAddress},
		{"127.0.0.1", "", fault.ErrInvalidIPAddress},
		{"127.0.0.1:0", "", fault.ErrInvalidPortNumber},
		{"127.0.0.1:65536", "", fault.ErrInvalidPortNumber},
		{"127.0.0.1:http", "", fault.ErrInvalidPortNumber},
	}

	for i, item := range items {
		c, err := util.CanonicalIPandPort(item.in)
		assert.Equal(t, item.err, err, "%d: wrong error for: %q", i, item.in)
		assert.Equal(t, item.out, c, "%d: wrong canonical for: %q", i, item.in)
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/var/data/x.db", util.EnsureAbsolute("/var/data", "x.db"), "relative")
	assert.Equal(t, "/tmp/x.db", util.EnsureAbsolute("/var/data", "/tmp/../tmp/x.db"), "absolute")

	dir := t.TempDir()
	name := filepath.Join(dir, "present")
	assert.False(t, util.EnsureFileExists(name), "missing file found")
	assert.Nil(t, os.WriteFile(name, []byte("x"), 0600), "write error")
	assert.True(t, util.EnsureFileExists(name), "file not found")
}
