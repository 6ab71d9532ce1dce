// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

//go:generate mockgen -source=reader.go -destination=mocks/reader.go -package=mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/pool"
)

// Reader - the queries of a ledger
type Reader interface {
	Address() common.Address
	Owner(ctx context.Context) (common.Address, error)
	NextPoolId(ctx context.Context) (uint64, error)
	Pool(ctx context.Context, id uint64) (*pool.Pool, error)
	Pools(ctx context.Context, start uint64, count int) ([]pool.Stored, error)
	Claimed(ctx context.Context, claimer common.Address, id uint64) (*uint256.Int, error)
	Events(ctx context.Context, start uint64, count int) ([]Event, error)
	LastEvent(ctx context.Context) (uint64, error)
}

var _ Reader = (*Ledger)(nil)
