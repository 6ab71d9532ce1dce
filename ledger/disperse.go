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

// Group - one immediate send of an asset to a list of recipients
type Group struct {
	Asset      common.Address   `json:"asset"`
	Recipients []common.Address `json:"recipients"`
	Amounts    []*uint256.Int   `json:"amounts"`
}

func (g *Group) total() (*uint256.Int, error) {
	if len(g.Recipients) != len(g.Amounts) {
		return nil, fault.ErrLengthMismatch
	}
	return amount.Sum(g.Amounts)
}

// DisperseNative - pay the attached native value out to recipients,
// any excess is returned to the caller
func (l *Ledger) DisperseNative(ctx context.Context, call chain.Call, recipients []common.Address, amounts []*uint256.Int) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		return l.disperseNative(ctx, f, Group{Asset: chain.Native, Recipients: recipients, Amounts: amounts})
	})
}

// DisperseToken - pull the total once from the caller then pay each
// recipient from custody
func (l *Ledger) DisperseToken(ctx context.Context, call chain.Call, asset common.Address, recipients []common.Address, amounts []*uint256.Int) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		return l.disperseToken(ctx, f, Group{Asset: asset, Recipients: recipients, Amounts: amounts})
	})
}

// DisperseTokenSimple - pull from the caller directly to each recipient
func (l *Ledger) DisperseTokenSimple(ctx context.Context, call chain.Call, asset common.Address, recipients []common.Address, amounts []*uint256.Int) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		return l.disperseTokenSimple(ctx, f, Group{Asset: asset, Recipients: recipients, Amounts: amounts})
	})
}

// BatchDisperse - run groups in order, at most one may be native
func (l *Ledger) BatchDisperse(ctx context.Context, call chain.Call, groups []Group) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		return l.batchDisperse(ctx, f, groups)
	})
}

// DisperseTokenWithPermit - DisperseToken after applying a permit
func (l *Ledger) DisperseTokenWithPermit(ctx context.Context, call chain.Call, asset common.Address, recipients []common.Address, amounts []*uint256.Int, permit Permit) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		err = l.authorise(ctx, f, permit)
		if nil != err {
			return err
		}
		return l.disperseToken(ctx, f, Group{Asset: asset, Recipients: recipients, Amounts: amounts})
	})
}

// DisperseTokenSimpleWithPermit - DisperseTokenSimple after applying a permit
func (l *Ledger) DisperseTokenSimpleWithPermit(ctx context.Context, call chain.Call, asset common.Address, recipients []common.Address, amounts []*uint256.Int, permit Permit) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		err = l.authorise(ctx, f, permit)
		if nil != err {
			return err
		}
		return l.disperseTokenSimple(ctx, f, Group{Asset: asset, Recipients: recipients, Amounts: amounts})
	})
}

// BatchDisperseWithPermits - BatchDisperse after applying permits
func (l *Ledger) BatchDisperseWithPermits(ctx context.Context, call chain.Call, groups []Group, permits []Permit) error {
	return l.enter(ctx, call, func(ctx context.Context, f *frame) error {
		err := l.onlyOwner(call)
		if nil != err {
			return err
		}
		err = l.authoriseAll(ctx, f, permits)
		if nil != err {
			return err
		}
		return l.batchDisperse(ctx, f, groups)
	})
}

func (l *Ledger) disperseNative(ctx context.Context, f *frame, g Group) error {
	total, err := g.total()
	if nil != err {
		return err
	}
	err = f.spend(total)
	if nil != err {
		return err
	}

	for i, to := range g.Recipients {
		err := l.sendNative(ctx, to, g.Amounts[i])
		if nil != err {
			return err
		}
	}

	excess := f.value
	f.value = amount.Zero()
	err = l.sendNative(ctx, f.call.Sender, excess)
	if nil != err {
		return err
	}

	l.log.Infof("dispersed native: %s to %d recipients", total.Dec(), len(g.Recipients))
	return l.emit(ctx, f, Event{
		Kind:    Dispersed,
		Account: f.call.Sender,
		Asset:   chain.Native,
		Amount:  total,
	})
}

func (l *Ledger) disperseToken(ctx context.Context, f *frame, g Group) error {
	if chain.Native == g.Asset {
		return fault.ErrNativeAssetNotAllowed
	}
	total, err := g.total()
	if nil != err {
		return err
	}

	_, err = l.collect(ctx, f, g.Asset, total)
	if nil != err {
		return err
	}

	for i, to := range g.Recipients {
		err := l.world.Transfer(ctx, g.Asset, l.address, to, g.Amounts[i])
		if nil != err {
			return err
		}
	}

	l.log.Infof("dispersed asset: %s  total: %s to %d recipients", g.Asset.Hex(), total.Dec(), len(g.Recipients))
	return l.emit(ctx, f, Event{
		Kind:    Dispersed,
		Account: f.call.Sender,
		Asset:   g.Asset,
		Amount:  total,
	})
}

func (l *Ledger) disperseTokenSimple(ctx context.Context, f *frame, g Group) error {
	if chain.Native == g.Asset {
		return fault.ErrNativeAssetNotAllowed
	}
	total, err := g.total()
	if nil != err {
		return err
	}

	for i, to := range g.Recipients {
		err := l.world.TransferFrom(ctx, g.Asset, l.address, f.call.Sender, to, g.Amounts[i])
		if nil != err {
			return err
		}
	}

	// no aggregate event, each pull pays its recipient directly
	l.log.Infof("dispersed asset: %s  total: %s to %d recipients without aggregation", g.Asset.Hex(), total.Dec(), len(g.Recipients))
	return nil
}

func (l *Ledger) batchDisperse(ctx context.Context, f *frame, groups []Group) error {
	natives := 0
	for _, g := range groups {
		var err error
		if chain.Native == g.Asset {
			natives += 1
			if natives > 1 {
				return fault.ErrMultipleNativeGroups
			}
			err = l.disperseNative(ctx, f, g)
		} else {
			err = l.disperseToken(ctx, f, g)
		}
		if nil != err {
			return err
		}
	}
	return nil
}
