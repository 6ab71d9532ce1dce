// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/pool"
)

// Claim - pay the caller its scheduled amount from a pool
//
// a claim that was already paid succeeds without paying again
func (l *Ledger) Claim(ctx context.Context, call chain.Call, id uint64, index uint64) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		return l.claim(ctx, f, id, index)
	})
}

// BatchClaim - Claim for each (id, index) pair
func (l *Ledger) BatchClaim(ctx context.Context, call chain.Call, ids []uint64, indices []uint64) error {
	if len(ids) != len(indices) {
		return fault.ErrLengthMismatch
	}
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		for i, id := range ids {
			err := l.claim(ctx, f, id, indices[i])
			if nil != err {
				return err
			}
		}
		return nil
	})
}

// Distribute - the distributor pushes every unpaid amount of a pool,
// funding it first if needed
func (l *Ledger) Distribute(ctx context.Context, call chain.Call, id uint64) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		return l.distribute(ctx, f, id)
	})
}

// BatchDistribute - Distribute each pool, at most one may need native funding
func (l *Ledger) BatchDistribute(ctx context.Context, call chain.Call, ids []uint64) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		natives := 0
		for _, id := range ids {
			p, err := l.registry.Get(id)
			if nil != err {
				return err
			}
			if pool.Initialised == p.Status && chain.Native == p.Asset {
				natives += 1
				if natives > 1 {
					return fault.ErrMultipleNativePools
				}
			}
		}

		for _, id := range ids {
			err := l.distribute(ctx, f, id)
			if nil != err {
				return err
			}
		}
		return nil
	})
}

// Cancel - close pools outside of their active window and refund the
// unclaimed funds to the owner
func (l *Ledger) Cancel(ctx context.Context, call chain.Call, ids []uint64) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		for _, id := range ids {
			err := l.cancel(ctx, f, id)
			if nil != err {
				return err
			}
		}
		return nil
	})
}

func (l *Ledger) claim(ctx context.Context, f *frame, id uint64, index uint64) error {
	p, err := l.registry.Get(id)
	if nil != err {
		return err
	}
	if pool.None == p.Status {
		return fault.ErrPoolNotFound
	}
	if index >= uint64(len(p.Entries)) {
		return fault.ErrClaimIndexOutOfRange
	}
	e := p.Entries[index]
	if f.call.Sender != e.Claimer {
		return fault.ErrNotClaimer
	}

	if !l.registry.Claimed(e.Claimer, id).IsZero() {
		return nil
	}

	switch p.Status {
	case pool.Funded:
	case pool.Closed:
		return fault.ErrPoolClosed
	default:
		return fault.ErrPoolNotFunded
	}
	if !p.Active(f.call.Time) {
		return fault.ErrClaimOutsideWindow
	}

	err = l.payEntry(ctx, f, id, p, e)
	if nil != err {
		return err
	}

	trx, err := chain.Transaction(ctx)
	if nil != err {
		return err
	}
	return l.registry.Put(trx, id, p)
}

func (l *Ledger) distribute(ctx context.Context, f *frame, id uint64) error {
	p, err := l.registry.Get(id)
	if nil != err {
		return err
	}
	if pool.None == p.Status {
		return fault.ErrPoolNotFound
	}
	if f.call.Sender != p.Distributor {
		return fault.ErrNotDistributor
	}
	if pool.Closed == p.Status {
		return fault.ErrPoolClosed
	}

	if pool.Initialised == p.Status {
		err := l.fund(ctx, f, id)
		if nil != err {
			return err
		}
		p, err = l.registry.Get(id)
		if nil != err {
			return err
		}
	}
	if pool.Funded != p.Status {
		return fault.ErrPoolNotFunded
	}

	for _, e := range p.Entries {
		if !l.registry.Claimed(e.Claimer, id).IsZero() {
			continue
		}
		err := l.payEntry(ctx, f, id, p, e)
		if nil != err {
			return err
		}
	}

	trx, err := chain.Transaction(ctx)
	if nil != err {
		return err
	}
	err = l.registry.Put(trx, id, p)
	if nil != err {
		return err
	}

	l.log.Infof("distributed pool: %d  claimed: %s of %s", id, p.Claimed.Dec(), p.Total.Dec())
	return l.emit(ctx, f, Event{
		Kind:    Distributed,
		Pool:    id,
		Account: f.call.Sender,
		Asset:   p.Asset,
		Amount:  p.Claimed,
	})
}

// record and make one payment, closing the pool once all is claimed
//
// the caller stores p
func (l *Ledger) payEntry(ctx context.Context, f *frame, id uint64, p *pool.Pool, e pool.Entry) error {
	trx, err := chain.Transaction(ctx)
	if nil != err {
		return err
	}

	claimed, err := amount.Add(p.Claimed, e.Amount)
	if nil != err {
		return err
	}
	if claimed.Gt(p.Total) {
		l.log.Criticalf("pool: %d  claimed: %s exceeds total: %s", id, claimed.Dec(), p.Total.Dec())
		return fault.ErrAmountOverflow
	}

	err = l.registry.MarkClaimed(trx, e.Claimer, id, e.Amount)
	if nil != err {
		return err
	}
	p.Claimed = claimed
	if p.Claimed.Eq(p.Total) {
		p.Status = pool.Closed
	}

	err = l.pay(ctx, p.Asset, e.Claimer, e.Amount)
	if nil != err {
		return err
	}

	return l.emit(ctx, f, Event{
		Kind:    Claimed,
		Pool:    id,
		Account: e.Claimer,
		Asset:   p.Asset,
		Amount:  e.Amount,
	})
}

func (l *Ledger) cancel(ctx context.Context, f *frame, id uint64) error {
	p, err := l.registry.Get(id)
	if nil != err {
		return err
	}
	switch p.Status {
	case pool.None:
		return fault.ErrPoolNotFound
	case pool.Closed:
		return fault.ErrPoolClosed
	}
	if p.InWindow(f.call.Time) {
		return fault.ErrPoolActive
	}

	refund := p.Refundable()
	p.Status = pool.Closed

	trx, err := chain.Transaction(ctx)
	if nil != err {
		return err
	}
	err = l.registry.Put(trx, id, p)
	if nil != err {
		return err
	}

	err = l.emit(ctx, f, Event{
		Kind:    Canceled,
		Pool:    id,
		Account: f.call.Sender,
		Asset:   p.Asset,
		Amount:  refund,
	})
	if nil != err {
		return err
	}

	l.log.Infof("cancelled pool: %d  refund: %s", id, refund.Dec())
	return l.pay(ctx, p.Asset, f.call.Sender, refund)
}
