// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Devnet  = "devnet"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Devnet, Testing, Local:
		return true
	default:
		return false
	}
}

// DatabaseName - default database name for a chain
func DatabaseName(name string) string {
	return "disperse-" + name + ".leveldb"
}
