// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// All writes are staged in a single process-wide transaction and only
// reach LevelDB as one batch on commit.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++       = concatenation of byte data
// 3. pool id  = big endian uint64 (8 bytes)
// 4. sequence = big endian uint64 (8 bytes)
// 5. account  = 20 byte address
// 6. asset    = 20 byte address, all zero for the native asset
// 7. amount   = big endian 256 bit unsigned (32 bytes)
// 8. count    = big endian uint64 (8 bytes)
//
// Pools:
//
//   P ++ pool id               - pool record
//                                data: packed pool (see package pool)
//   C ++ account ++ pool id    - paid claims
//                                data: amount
//
// Events:
//
//   E ++ sequence              - committed ledger events
//                                data: packed event (see package ledger)
//
// Ledger:
//
//   L ++ name                  - ledger singletons: owner, next pool id, next event sequence
//                                data: account or count
//
// Chain world:
//
//   B ++ asset ++ account            - balance
//                                      data: amount
//   A ++ asset ++ owner ++ spender   - allowance
//                                      data: amount
//   R ++ asset ++ owner              - permit nonce
//                                      data: count
//   N ++ account                     - signed request nonce
//                                      data: count
//
// Testing:
//   Z ++ key                   - testing data
package storage
