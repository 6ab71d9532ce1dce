// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - the accounts, assets and balances the ledger moves
// value between
//
// Every state change happens inside World.Apply, which runs a function
// inside the single storage transaction. Either all of its writes are
// committed or none are. Code called back from a transfer (a Receiver)
// gets the same context and so joins the enclosing transition.
package chain
