// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
)

// Permit - a signed allowance for the ledger to pull from the caller
type Permit struct {
	Asset     common.Address `json:"asset"`
	Amount    *uint256.Int   `json:"amount"`
	Expiry    uint64         `json:"expiry"`
	Signature []byte         `json:"signature"`
}

// forward a permit to its asset naming the ledger as spender
func (l *Ledger) authorise(ctx context.Context, f *frame, p Permit) error {
	if nil == p.Amount {
		return fault.ErrInvalidAmount
	}
	return l.world.Permit(ctx, p.Asset, f.call.Sender, l.address, p.Amount, p.Expiry, p.Signature, f.call.Time)
}

func (l *Ledger) authoriseAll(ctx context.Context, f *frame, permits []Permit) error {
	for _, p := range permits {
		err := l.authorise(ctx, f, p)
		if nil != err {
			return err
		}
	}
	return nil
}

// Permit - apply a sequence of permits, the first failure aborts all
func (l *Ledger) Permit(ctx context.Context, call chain.Call, permits []Permit) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		return l.authoriseAll(ctx, f, permits)
	})
}
