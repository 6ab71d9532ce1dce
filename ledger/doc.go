// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a self custodial fund distribution ledger
//
// The ledger holds value in its own account and pays it out either
// immediately (disperse) or from distribution pools: schedules of
// (claimer, amount) pairs that are funded, then claimed by each claimer
// or pushed by the pool's distributor, and may be cancelled with a
// refund outside of their active window.
//
// Every entry point that moves value runs as one atomic transition of
// the chain world and holds the reentrancy guard for its whole
// duration. Any error discards every effect of the call.
package ledger
