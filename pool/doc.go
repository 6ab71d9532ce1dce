// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pool - distribution pool records and the claims paid from them
//
// Pool ids start at 1 and are never reused. An id that was never
// allocated reads back as a pool with status None.
package pool
