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
)

// Execute - an arbitrary call made by the ledger for its owner
//
// value is taken from the attached value first and then from custody,
// nothing here is checked against pool balances
func (l *Ledger) Execute(ctx context.Context, call chain.Call, target common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	var result []byte
	err := l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}

		if nil == value {
			value = amount.Zero()
		}
		if value.Lt(f.value) {
			f.value = new(uint256.Int).Sub(f.value, value)
		} else {
			f.value = amount.Zero()
		}

		l.log.Warnf("execute: target: %s  value: %s  data: %d bytes", target.Hex(), value.Dec(), len(data))
		result, err = l.world.Invoke(ctx, l.address, target, value, data)
		return err
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}
