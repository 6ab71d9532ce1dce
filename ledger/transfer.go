// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
)

// push native value from custody
//
// a recipient that cannot take native value within the stipend is paid
// in the wrapped native asset instead
func (l *Ledger) sendNative(ctx context.Context, to common.Address, value *uint256.Int) error {
	if value.IsZero() {
		return nil
	}

	err := l.world.SendNative(ctx, l.address, to, value, true)
	if nil == err {
		return nil
	}
	l.log.Debugf("native push to: %s  amount: %s  failed: %s", to.Hex(), value.Dec(), err)

	wrapped, err := l.world.WrappedNative()
	if nil != err {
		return err
	}
	err = l.world.Wrap(ctx, l.address, value)
	if nil != err {
		return err
	}
	l.log.Infof("paid: %s  amount: %s as wrapped native", to.Hex(), value.Dec())
	return l.world.Transfer(ctx, wrapped, l.address, to, value)
}

// push any asset from custody
func (l *Ledger) pay(ctx context.Context, asset common.Address, to common.Address, value *uint256.Int) error {
	if value.IsZero() {
		return nil
	}
	if chain.Native == asset {
		return l.sendNative(ctx, to, value)
	}
	return l.world.Transfer(ctx, asset, l.address, to, value)
}

// take want of an asset from the caller into custody
//
// native value must be attached exactly, an asset must arrive in full
// so that fee-on-transfer assets are rejected
func (l *Ledger) collect(ctx context.Context, f *frame, asset common.Address, want *uint256.Int) (*uint256.Int, error) {
	if chain.Native == asset {
		if !f.value.Eq(want) {
			return nil, fault.ErrValueMismatch
		}
		f.value = amount.Zero()
		return new(uint256.Int).Set(want), nil
	}

	before := l.world.BalanceOf(asset, l.address)
	err := l.world.TransferFrom(ctx, asset, l.address, f.call.Sender, l.address, want)
	if nil != err {
		return nil, err
	}
	after := l.world.BalanceOf(asset, l.address)

	received, err := amount.Sub(after, before)
	if nil != err {
		received = amount.Zero()
	}
	if received.Lt(want) {
		l.log.Warnf("asset: %s  requested: %s  received: %s", asset.Hex(), want.Dec(), received.Dec())
		return nil, fault.ErrFeeOnTransfer
	}
	return received, nil
}
