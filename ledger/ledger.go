// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

//go:generate mockgen -source=ledger.go -destination=mocks/sink.go -package=mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/disperse/storage"
	"github.com/bitmark-inc/logger"
)

// key in the ledger pool of the owner account
var ownerKey = []byte("owner")

// Sink - receives each event after it is committed
type Sink interface {
	Send(command string, parameters ...[]byte)
}

// Ledger - one ledger instance bound to its own custody account
type Ledger struct {
	log      *logger.L
	world    *chain.World
	registry *pool.Registry
	address  common.Address
	sink     Sink

	// reentrancy guard, only changed while the world is locked
	locked bool
}

// the state of one guarded call
type frame struct {
	call  chain.Call
	value *uint256.Int // attached value not yet used
}

// New - create a ledger holding value at address
func New(world *chain.World, registry *pool.Registry, address common.Address, sink Sink) *Ledger {
	return &Ledger{
		log:      logger.New("ledger"),
		world:    world,
		registry: registry,
		address:  address,
		sink:     sink,
	}
}

// Address - the custody account
func (l *Ledger) Address() common.Address {
	return l.address
}

// Initialise - bind the ledger to its owner, only possible once
func (l *Ledger) Initialise(ctx context.Context, call chain.Call, owner common.Address) error {
	if !call.AttachedValue().IsZero() {
		return fault.ErrValueMismatch
	}
	if (common.Address{}) == owner {
		return fault.ErrInvalidOwner
	}

	return l.world.Apply(ctx, func(ctx context.Context) error {
		trx, err := chain.Transaction(ctx)
		if nil != err {
			return err
		}
		if trx.Has(storage.Pool.Ledger, ownerKey) {
			return fault.ErrAlreadyInitialised
		}
		trx.Put(storage.Pool.Ledger, ownerKey, owner[:])
		l.locked = false

		l.log.Infof("initialised by: %s  owner: %s", call.Sender.Hex(), owner.Hex())
		return nil
	})
}

// the owner, zero address if not initialised
func (l *Ledger) owner() common.Address {
	return common.BytesToAddress(storage.Pool.Ledger.Get(ownerKey))
}

func (l *Ledger) onlyOwner(call chain.Call) error {
	if call.Sender != l.owner() {
		return fault.ErrNotOwner
	}
	return nil
}

// run fn as a guarded atomic call
//
// the attached value is moved into custody first and must be used up
// by fn
func (l *Ledger) enter(ctx context.Context, call chain.Call, fn func(ctx context.Context, f *frame) error) error {
	return l.world.Apply(ctx, func(ctx context.Context) error {
		if l.locked {
			return fault.ErrReentrantCall
		}
		l.locked = true
		defer func() {
			l.locked = false
		}()

		if (common.Address{}) == l.owner() {
			return fault.ErrNotInitialised
		}

		err := l.world.Attach(ctx, call, l.address)
		if nil != err {
			return err
		}

		f := &frame{
			call:  call,
			value: call.AttachedValue(),
		}
		err = fn(ctx, f)
		if nil != err {
			return err
		}

		if !f.value.IsZero() {
			return fault.ErrValueMismatch
		}
		return nil
	})
}

// use part of the attached value
func (f *frame) spend(value *uint256.Int) error {
	remaining, err := amount.Sub(f.value, value)
	if nil != err {
		return fault.ErrInsufficientValue
	}
	f.value = remaining
	return nil
}
