// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/storage"
)

// asset ++ account
func balanceKey(asset common.Address, account common.Address) []byte {
	key := make([]byte, 0, 2*common.AddressLength)
	key = append(key, asset[:]...)
	return append(key, account[:]...)
}

// asset ++ owner ++ spender
func allowanceKey(asset common.Address, owner common.Address, spender common.Address) []byte {
	key := make([]byte, 0, 3*common.AddressLength)
	key = append(key, asset[:]...)
	key = append(key, owner[:]...)
	return append(key, spender[:]...)
}

func getAmount(p *storage.PoolHandle, key []byte) *uint256.Int {
	data := p.Get(key)
	if nil == data {
		return amount.Zero()
	}
	v, err := amount.Unpack(data)
	if nil != err {
		return amount.Zero()
	}
	return v
}

// zero values are removed rather than stored
func putAmount(trx storage.Transaction, p *storage.PoolHandle, key []byte, value *uint256.Int) {
	if value.IsZero() {
		trx.Delete(p, key)
		return
	}
	trx.Put(p, key, amount.Pack(value))
}

// BalanceOf - the balance of an account, Native for the native value
func (w *World) BalanceOf(asset common.Address, account common.Address) *uint256.Int {
	return getAmount(storage.Pool.Balances, balanceKey(asset, account))
}

// Allowance - what spender may still pull from owner
func (w *World) Allowance(asset common.Address, owner common.Address, spender common.Address) *uint256.Int {
	return getAmount(storage.Pool.Allowances, allowanceKey(asset, owner, spender))
}

func (w *World) credit(trx storage.Transaction, asset common.Address, account common.Address, value *uint256.Int) error {
	key := balanceKey(asset, account)
	balance, err := amount.Add(getAmount(storage.Pool.Balances, key), value)
	if nil != err {
		return err
	}
	putAmount(trx, storage.Pool.Balances, key, balance)
	return nil
}

func (w *World) debit(trx storage.Transaction, asset common.Address, account common.Address, value *uint256.Int) error {
	key := balanceKey(asset, account)
	balance, err := amount.Sub(getAmount(storage.Pool.Balances, key), value)
	if nil != err {
		return fault.ErrInsufficientBalance
	}
	putAmount(trx, storage.Pool.Balances, key, balance)
	return nil
}

func (w *World) move(trx storage.Transaction, asset common.Address, from common.Address, to common.Address, value *uint256.Int) error {
	err := w.debit(trx, asset, from, value)
	if nil != err {
		return err
	}
	return w.credit(trx, asset, to, value)
}

// Mint - create new value for an account
//
// minting the wrapped native asset also creates its native backing
func (w *World) Mint(ctx context.Context, asset common.Address, to common.Address, value *uint256.Int) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	if Native != asset {
		if _, ok := w.assets[asset]; !ok {
			return fault.ErrUnknownAsset
		}
	}
	if asset == w.wrapped && Native != w.wrapped {
		err = w.credit(trx, Native, w.wrapped, value)
		if nil != err {
			return err
		}
	}
	return w.credit(trx, asset, to, value)
}

// Attach - move the value attached to a call from its sender to the callee
func (w *World) Attach(ctx context.Context, call Call, callee common.Address) error {
	value := call.AttachedValue()
	if value.IsZero() {
		return nil
	}
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	err = w.move(trx, Native, call.Sender, callee, value)
	if fault.ErrInsufficientBalance == err {
		return fault.ErrInsufficientValue
	}
	return err
}

// SendNative - push native value and notify the receiver
//
// if the receiver rejects the value nothing is moved and
// ErrNativeTransferRejected is returned
func (w *World) SendNative(ctx context.Context, from common.Address, to common.Address, value *uint256.Int, limited bool) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}

	snap := w.snapshot(ctx)

	err = w.move(trx, Native, from, to, value)
	if nil != err {
		w.revert(ctx, snap)
		return err
	}

	r := w.receiver(to)
	if nil == r {
		return nil
	}

	err = w.notify(ctx, r, Receipt{
		Asset:   Native,
		From:    from,
		To:      to,
		Amount:  new(uint256.Int).Set(value),
		Limited: limited,
	})
	if nil != err {
		w.log.Debugf("native transfer: %s -> %s  amount: %s  rejected: %s", from.Hex(), to.Hex(), value.Dec(), err)
		w.revert(ctx, snap)
		return fault.ErrNativeTransferRejected
	}
	return nil
}

// Transfer - move an asset between accounts
//
// fee-on-transfer assets deliver value less the fee to the recipient
func (w *World) Transfer(ctx context.Context, asset common.Address, from common.Address, to common.Address, value *uint256.Int) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	info, err := w.transferable(asset)
	if nil != err {
		return err
	}

	err = w.debit(trx, asset, from, value)
	if nil != err {
		return err
	}

	fee := amount.BasisPoints(value, info.FeeBasisPoints)
	delivered, err := amount.Sub(value, fee)
	if nil != err {
		return err
	}
	if !fee.IsZero() {
		err = w.credit(trx, asset, asset, fee)
		if nil != err {
			return err
		}
	}
	err = w.credit(trx, asset, to, delivered)
	if nil != err {
		return err
	}

	if !info.Hooks {
		return nil
	}
	r := w.receiver(to)
	if nil == r {
		return nil
	}
	return w.notify(ctx, r, Receipt{
		Asset:  asset,
		From:   from,
		To:     to,
		Amount: delivered,
	})
}

// TransferFrom - spender moves an asset out of from's balance
//
// an allowance of the maximum value is never decreased
func (w *World) TransferFrom(ctx context.Context, asset common.Address, spender common.Address, from common.Address, to common.Address, value *uint256.Int) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	if _, err := w.transferable(asset); nil != err {
		return err
	}

	key := allowanceKey(asset, from, spender)
	allowance := getAmount(storage.Pool.Allowances, key)
	if !allowance.Eq(amount.Max()) {
		remaining, err := amount.Sub(allowance, value)
		if nil != err {
			return fault.ErrInsufficientAllowance
		}
		putAmount(trx, storage.Pool.Allowances, key, remaining)
	}

	return w.Transfer(ctx, asset, from, to, value)
}

// Approve - set what spender may pull from owner
func (w *World) Approve(ctx context.Context, asset common.Address, owner common.Address, spender common.Address, value *uint256.Int) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	if _, err := w.transferable(asset); nil != err {
		return err
	}
	putAmount(trx, storage.Pool.Allowances, allowanceKey(asset, owner, spender), value)
	return nil
}

// Wrap - convert native value of account into the wrapped asset
func (w *World) Wrap(ctx context.Context, account common.Address, value *uint256.Int) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	wrapped, err := w.WrappedNative()
	if nil != err {
		return err
	}
	err = w.move(trx, Native, account, wrapped, value)
	if nil != err {
		return err
	}
	return w.credit(trx, wrapped, account, value)
}

// Unwrap - convert the wrapped asset of account back to native value
func (w *World) Unwrap(ctx context.Context, account common.Address, value *uint256.Int) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	wrapped, err := w.WrappedNative()
	if nil != err {
		return err
	}
	err = w.debit(trx, wrapped, account, value)
	if nil != err {
		return err
	}
	return w.SendNative(ctx, wrapped, account, value, false)
}
