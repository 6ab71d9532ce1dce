// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/storage"
)

// RequestNonce - the nonce the next signed request from account must carry
func (w *World) RequestNonce(account common.Address) uint64 {
	n, _ := storage.Pool.Nonces.GetN(account[:])
	return n
}

// UseRequestNonce - check and advance the request nonce of an account
func (w *World) UseRequestNonce(ctx context.Context, account common.Address, nonce uint64) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	current, _ := trx.GetN(storage.Pool.Nonces, account[:])
	if nonce != current {
		return fault.ErrInvalidNonce
	}
	trx.PutN(storage.Pool.Nonces, account[:], current+1)
	return nil
}
