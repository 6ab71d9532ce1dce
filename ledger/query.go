// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/pool"
)

// these are callable at any time, including from a receiver while a
// guarded call is running

// Owner - the owner account, zero address before Initialise
func (l *Ledger) Owner(ctx context.Context) (common.Address, error) {
	owner := common.Address{}
	err := l.world.View(ctx, func(ctx context.Context) error {
		owner = l.owner()
		return nil
	})
	return owner, err
}

// NextPoolId - the id the next created pool will receive
func (l *Ledger) NextPoolId(ctx context.Context) (uint64, error) {
	id := uint64(0)
	err := l.world.View(ctx, func(ctx context.Context) error {
		id = l.registry.NextId()
		return nil
	})
	return id, err
}

// Pool - read a pool, unused ids have status None
func (l *Ledger) Pool(ctx context.Context, id uint64) (*pool.Pool, error) {
	var p *pool.Pool
	err := l.world.View(ctx, func(ctx context.Context) error {
		var err error
		p, err = l.registry.Get(id)
		return err
	})
	return p, err
}

// Claimed - the amount paid to claimer from a pool
func (l *Ledger) Claimed(ctx context.Context, claimer common.Address, id uint64) (*uint256.Int, error) {
	var claimed *uint256.Int
	err := l.world.View(ctx, func(ctx context.Context) error {
		claimed = l.registry.Claimed(claimer, id)
		return nil
	})
	return claimed, err
}

// Pools - read up to count committed pools starting at id start
func (l *Ledger) Pools(ctx context.Context, start uint64, count int) ([]pool.Stored, error) {
	var stored []pool.Stored
	err := l.world.View(ctx, func(ctx context.Context) error {
		var err error
		stored, err = l.registry.Scan(start, count)
		return err
	})
	return stored, err
}
