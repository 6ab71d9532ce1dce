// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

//go:generate mockgen -source=world.go -destination=mocks/receiver.go -package=mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/storage"
	"github.com/bitmark-inc/logger"
)

// Receipt - notification of value arriving at an account
type Receipt struct {
	Asset   common.Address
	From    common.Address
	To      common.Address
	Amount  *uint256.Int
	Limited bool // only a minimal stipend is available to the receiver
}

// Receiver - code that runs when an account receives value
//
// returning an error rejects the value, any call back into the world
// must use the ctx passed to Receive: Apply and View with any other
// context fail with ErrReentrantCall while a receiver runs
type Receiver interface {
	Receive(ctx context.Context, receipt Receipt) error
}

// World - the state of all accounts
type World struct {
	sync.RWMutex // serialises transitions

	log     *logger.L
	assets  map[common.Address]AssetInfo
	wrapped common.Address

	receiversLock sync.RWMutex
	receivers     map[common.Address]Receiver
	receiving     atomic.Int32 // receivers currently running
}

// New - create a world with a set of assets
//
// wrapped names the wrapped native asset, the zero address if none
func New(assets []AssetInfo, wrapped common.Address) (*World, error) {
	w := &World{
		log:       logger.New("world"),
		assets:    make(map[common.Address]AssetInfo),
		wrapped:   wrapped,
		receivers: make(map[common.Address]Receiver),
	}

	for _, a := range assets {
		err := a.validate()
		if nil != err {
			return nil, err
		}
		if _, ok := w.assets[a.Address]; ok {
			return nil, fault.ErrAssetAlreadyRegistered
		}
		w.assets[a.Address] = a
		w.log.Infof("asset: %s  %s  decimals: %d  fee: %d bp", a.Address.Hex(), a.Symbol, a.Decimals, a.FeeBasisPoints)
	}

	if Native != wrapped {
		a, ok := w.assets[wrapped]
		if !ok {
			return nil, fault.ErrUnknownAsset
		}
		if 0 != a.FeeBasisPoints {
			return nil, fault.ErrInvalidFeeBasisPoints
		}
	}

	return w, nil
}

// SetReceiver - install code to run when account receives value,
// nil removes it
func (w *World) SetReceiver(account common.Address, r Receiver) {
	w.receiversLock.Lock()
	defer w.receiversLock.Unlock()
	if nil == r {
		delete(w.receivers, account)
		return
	}
	w.receivers[account] = r
}

func (w *World) receiver(account common.Address) Receiver {
	w.receiversLock.RLock()
	defer w.receiversLock.RUnlock()
	return w.receivers[account]
}

// run a receiver inside the transition of ctx, which holds the world lock
func (w *World) notify(ctx context.Context, r Receiver, receipt Receipt) error {
	w.receiving.Add(1)
	defer w.receiving.Add(-1)
	return r.Receive(ctx, receipt)
}

// Apply - run fn as one atomic state transition
//
// if fn returns an error every write made by fn is discarded, if ctx
// already belongs to a transition fn joins it and only its own writes
// are discarded on error
func (w *World) Apply(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := transitionFrom(ctx); ok {
		snap := w.snapshot(ctx)
		err := fn(ctx)
		if nil != err {
			w.revert(ctx, snap)
		}
		return err
	}

	if 0 != w.receiving.Load() {
		return fault.ErrReentrantCall
	}

	w.Lock()
	defer w.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	t := &transition{
		trx: trx,
	}

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	err = fn(context.WithValue(ctx, transitionKey{}, t))
	if nil != err {
		return err
	}

	err = trx.Commit()
	committed = true
	if nil != err {
		w.log.Criticalf("commit error: %s", err)
		return err
	}

	for _, hook := range t.hooks {
		hook()
	}
	return nil
}

// View - run fn against a consistent view of the state
func (w *World) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := transitionFrom(ctx); ok {
		return fn(ctx)
	}

	if 0 != w.receiving.Load() {
		return fault.ErrReentrantCall
	}

	w.RLock()
	defer w.RUnlock()
	return fn(ctx)
}

// AfterCommit - run f once the transition ctx belongs to is committed
func AfterCommit(ctx context.Context, f func()) error {
	t, ok := transitionFrom(ctx)
	if !ok {
		return fault.ErrTransactionNotInUse
	}
	t.hooks = append(t.hooks, f)
	return nil
}

type snapshot struct {
	journal int
	hooks   int
}

func (w *World) snapshot(ctx context.Context) snapshot {
	t, _ := transitionFrom(ctx)
	return snapshot{
		journal: t.trx.Snapshot(),
		hooks:   len(t.hooks),
	}
}

func (w *World) revert(ctx context.Context, s snapshot) {
	t, _ := transitionFrom(ctx)
	t.trx.RevertToSnapshot(s.journal)
	t.hooks = t.hooks[:s.hooks]
}

// the transaction of the transition, writes outside Apply are rejected
func writer(ctx context.Context) (storage.Transaction, error) {
	t, ok := transitionFrom(ctx)
	if !ok {
		return nil, fault.ErrTransactionNotInUse
	}
	return t.trx, nil
}
