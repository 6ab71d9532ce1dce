// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queues for passing committed ledger events to
// the parts of the daemon that report or stream them
//
// a BroadcastQueue copies every message to each listener; a listener
// that falls behind loses messages rather than stalling the sender
package messagebus
