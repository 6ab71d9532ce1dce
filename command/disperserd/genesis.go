// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/logger"
)

const nativeName = "native"

// blank or "native" is the zero address
func parseAddress(s string, allowNative bool) (common.Address, error) {
	s = strings.TrimSpace(s)
	if "" == s || nativeName == strings.ToLower(s) {
		if allowNative {
			return chain.Native, nil
		}
		return common.Address{}, fault.ErrInvalidAddress
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fault.ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// create the world from the configured assets
func newWorld(options *Configuration) (*chain.World, error) {
	assets := make([]chain.AssetInfo, 0, len(options.Assets))
	for _, a := range options.Assets {
		address, err := parseAddress(a.Address, false)
		if nil != err {
			return nil, err
		}
		assets = append(assets, chain.AssetInfo{
			Address:        address,
			Symbol:         a.Symbol,
			Decimals:       a.Decimals,
			FeeBasisPoints: a.FeeBasisPoints,
			Permit:         a.Permit,
			Hooks:          a.Hooks,
		})
	}

	wrapped, err := parseAddress(options.WrappedNative, true)
	if nil != err {
		return nil, err
	}

	return chain.New(assets, wrapped)
}

// create the ledger and, on first start, the genesis balances and its owner
func newLedger(log *logger.L, world *chain.World, options *Configuration, sink ledger.Sink) (*ledger.Ledger, error) {
	custody, err := parseAddress(options.Custody, false)
	if nil != err {
		return nil, err
	}
	owner, err := parseAddress(options.Owner, false)
	if nil != err {
		return nil, fault.ErrInvalidOwner
	}

	l := ledger.New(world, pool.NewRegistry(), custody, sink)

	ctx := context.Background()
	current, err := l.Owner(ctx)
	if nil != err {
		return nil, err
	}
	if chain.Native != current {
		if current != owner {
			log.Warnf("configured owner: %s  differs from ledger owner: %s", owner.Hex(), current.Hex())
		}
		return l, nil
	}

	log.Infof("genesis: custody: %s  owner: %s", custody.Hex(), owner.Hex())

	err = world.Apply(ctx, func(ctx context.Context) error {
		for _, g := range options.Genesis {
			asset, err := parseAddress(g.Asset, true)
			if nil != err {
				return err
			}
			account, err := parseAddress(g.Account, false)
			if nil != err {
				return err
			}
			value, err := amount.Parse(g.Amount)
			if nil != err {
				return err
			}
			err = world.Mint(ctx, asset, account, value)
			if nil != err {
				return err
			}
			log.Infof("genesis: %s  asset: %s  amount: %s", account.Hex(), asset.Hex(), value.Dec())
		}
		return l.Initialise(ctx, chain.Call{Sender: owner}, owner)
	})
	if nil != err {
		return nil, err
	}
	return l, nil
}
