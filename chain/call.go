// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/storage"
)

// Native - the asset identifier of the chain's own value unit
var Native = common.Address{}

// Call - the context of one entry point invocation
type Call struct {
	Sender common.Address // the account making the call
	Value  *uint256.Int   // attached native value, nil is zero
	Time   uint64         // unix seconds
}

// AttachedValue - the attached value, never nil
func (c Call) AttachedValue() *uint256.Int {
	if nil == c.Value {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(c.Value)
}

// an open state transition
type transition struct {
	trx   storage.Transaction
	hooks []func()
}

type transitionKey struct{}

func transitionFrom(ctx context.Context) (*transition, bool) {
	t, ok := ctx.Value(transitionKey{}).(*transition)
	return t, ok
}

// InTransition - true if ctx belongs to a running Apply
func InTransition(ctx context.Context) bool {
	_, ok := transitionFrom(ctx)
	return ok
}

// Transaction - the storage transaction of the transition ctx belongs to
func Transaction(ctx context.Context) (storage.Transaction, error) {
	return writer(ctx)
}
