// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package watcher - background processes that observe the ledger
//
// the event logger records every committed event from the message
// bus, the expiry watcher reports funded pools whose deadline has
// passed while they still hold value the distributor can recover
package watcher
