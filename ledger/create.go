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

// CreateRequest - one pool of a batch create
type CreateRequest struct {
	Info pool.Info `json:"info"`
	Fund bool      `json:"fund"` // fund from the caller as part of creation
}

// Create - register a new pool, optionally funding it at once
func (l *Ledger) Create(ctx context.Context, call chain.Call, info pool.Info, fund bool) (uint64, error) {
	id := uint64(0)
	err := l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		id, err = l.create(ctx, f, info, fund)
		return err
	})
	if nil != err {
		return 0, err
	}
	return id, nil
}

// CreateWithPermit - Create after applying a permit
func (l *Ledger) CreateWithPermit(ctx context.Context, call chain.Call, info pool.Info, fund bool, permit Permit) (uint64, error) {
	id := uint64(0)
	err := l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		err = l.authorise(ctx, f, permit)
		if nil != err {
			return err
		}
		id, err = l.create(ctx, f, info, fund)
		return err
	})
	if nil != err {
		return 0, err
	}
	return id, nil
}

// BatchCreate - create several pools, at most one may be funded with
// native value
func (l *Ledger) BatchCreate(ctx context.Context, call chain.Call, requests []CreateRequest) ([]uint64, error) {
	ids := make([]uint64, 0, len(requests))
	err := l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}

		natives := 0
		for _, r := range requests {
			if r.Fund && chain.Native == r.Info.Asset {
				natives += 1
				if natives > 1 {
					return fault.ErrMultipleNativePools
				}
			}
			id, err := l.create(ctx, f, r.Info, r.Fund)
			if nil != err {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return ids, nil
}

// Fund - supply the total of an initialised pool, any caller may fund
func (l *Ledger) Fund(ctx context.Context, call chain.Call, id uint64) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		return l.fund(ctx, f, id)
	})
}

// FundWithPermit - Fund after applying a permit
func (l *Ledger) FundWithPermit(ctx context.Context, call chain.Call, id uint64, permit Permit) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.authorise(ctx, f, permit)
		if nil != err {
			return err
		}
		return l.fund(ctx, f, id)
	})
}

// BatchFund - fund several pools, at most one may be native
func (l *Ledger) BatchFund(ctx context.Context, call chain.Call, ids []uint64) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		natives := 0
		for _, id := range ids {
			p, err := l.registry.Get(id)
			if nil != err {
				return err
			}
			if chain.Native == p.Asset && pool.None != p.Status {
				natives += 1
				if natives > 1 {
					return fault.ErrMultipleNativePools
				}
			}
			err = l.fund(ctx, f, id)
			if nil != err {
				return err
			}
		}
		return nil
	})
}

func (l *Ledger) create(ctx context.Context, f *frame, info pool.Info, fund bool) (uint64, error) {
	total, err := info.Validate(f.call.Time)
	if nil != err {
		return 0, err
	}

	trx, err := chain.Transaction(ctx)
	if nil != err {
		return 0, err
	}

	info.Entries = append([]pool.Entry(nil), info.Entries...)
	p := &pool.Pool{
		Info:    info,
		Status:  pool.Initialised,
		Total:   total,
		Funded:  amount.Zero(),
		Claimed: amount.Zero(),
	}

	id := l.registry.Allocate(trx)
	err = l.emit(ctx, f, Event{
		Kind:    Created,
		Pool:    id,
		Account: f.call.Sender,
		Asset:   info.Asset,
		Amount:  total,
	})
	if nil != err {
		return 0, err
	}

	if fund {
		received, err := l.collect(ctx, f, info.Asset, total)
		if nil != err {
			return 0, err
		}
		p.Funded = received
		p.Status = pool.Funded
		err = l.emit(ctx, f, Event{
			Kind:    Funded,
			Pool:    id,
			Account: f.call.Sender,
			Asset:   info.Asset,
			Amount:  received,
		})
		if nil != err {
			return 0, err
		}
	}

	err = l.registry.Put(trx, id, p)
	if nil != err {
		return 0, err
	}

	l.log.Infof("created pool: %d  %q  claimers: %d  total: %s  status: %s", id, info.Name, len(info.Entries), total.Dec(), p.Status)
	return id, nil
}

func (l *Ledger) fund(ctx context.Context, f *frame, id uint64) error {
	p, err := l.registry.Get(id)
	if nil != err {
		return err
	}
	switch p.Status {
	case pool.None:
		return fault.ErrPoolNotFound
	case pool.Initialised:
	default:
		return fault.ErrPoolNotInitialised
	}

	trx, err := chain.Transaction(ctx)
	if nil != err {
		return err
	}

	received, err := l.collect(ctx, f, p.Asset, p.Total)
	if nil != err {
		return err
	}
	p.Funded = received
	p.Status = pool.Funded

	err = l.registry.Put(trx, id, p)
	if nil != err {
		return err
	}

	l.log.Infof("funded pool: %d  by: %s  amount: %s", id, f.call.Sender.Hex(), received.Dec())
	return l.emit(ctx, f, Event{
		Kind:    Funded,
		Pool:    id,
		Account: f.call.Sender,
		Asset:   p.Asset,
		Amount:  received,
	})
}
