// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fixtures"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/ledger/mocks"
	"github.com/bitmark-inc/disperse/pool"
)

// time of every call unless a test moves it
const now = 1700000000

var (
	custody     = fixtures.Address(0xcc)
	token       = fixtures.Address(0x11)
	feeToken    = fixtures.Address(0x22)
	wrapped     = fixtures.Address(0x33)
	hookedToken = fixtures.Address(0x44)

	owner    = fixtures.Account1
	funder   = fixtures.Account2
	outsider = fixtures.Account3

	claimerA = fixtures.Address(0x0a)
	claimerB = fixtures.Address(0x0b)
	claimerC = fixtures.Address(0x0c)

	recipientX = fixtures.Address(0x5a)
	recipientY = fixtures.Address(0x5b)

	background = context.Background()
)

const initialBalance = 1000

type testEnv struct {
	world  *chain.World
	ledger *ledger.Ledger
	ctl    *gomock.Controller
}

// storage, world with funded accounts and an initialised ledger
// whose sink accepts any event
func setup(t *testing.T) *testEnv {
	ctl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctl)
	sink.EXPECT().Send(ledger.EventCommand, gomock.Any()).AnyTimes()
	return setupWithSink(t, ctl, sink)
}

func setupWithSink(t *testing.T, ctl *gomock.Controller, sink ledger.Sink) *testEnv {
	err := fixtures.SetupTestStorage()
	require.Nil(t, err, "storage setup error")

	w, err := chain.New([]chain.AssetInfo{
		{Address: token, Symbol: "TKN", Decimals: 18, Permit: true},
		{Address: feeToken, Symbol: "FEE", Decimals: 18, FeeBasisPoints: 100},
		{Address: wrapped, Symbol: "WNAT", Decimals: 18},
		{Address: hookedToken, Symbol: "HKD", Decimals: 18, Hooks: true},
	}, wrapped)
	require.Nil(t, err, "world error")

	err = w.Apply(background, func(ctx context.Context) error {
		for _, account := range []common.Address{owner, funder} {
			for _, asset := range []common.Address{chain.Native, token, feeToken, hookedToken} {
				err := w.Mint(ctx, asset, account, n(initialBalance))
				if nil != err {
					return err
				}
				if chain.Native == asset || funder == account {
					continue
				}
				err = w.Approve(ctx, asset, account, custody, amount.Max())
				if nil != err {
					return err
				}
			}
		}
		return w.Approve(ctx, token, funder, custody, amount.Max())
	})
	require.Nil(t, err, "mint error")

	l := ledger.New(w, pool.NewRegistry(), custody, sink)
	err = l.Initialise(background, chain.Call{Sender: outsider, Time: now}, owner)
	require.Nil(t, err, "initialise error")

	return &testEnv{
		world:  w,
		ledger: l,
		ctl:    ctl,
	}
}

func (env *testEnv) teardown() {
	env.ctl.Finish()
	fixtures.TeardownTestStorage()
}

// signing key of a test account
func keyOf(account common.Address) *ecdsa.PrivateKey {
	switch account {
	case fixtures.Account1:
		return fixtures.Key1
	case fixtures.Account2:
		return fixtures.Key2
	default:
		return fixtures.Key3
	}
}

func n(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func amounts(values ...uint64) []*uint256.Int {
	result := make([]*uint256.Int, len(values))
	for i, v := range values {
		result[i] = n(v)
	}
	return result
}

// a call at time now
func call(sender common.Address, value uint64) chain.Call {
	return chain.Call{
		Sender: sender,
		Value:  n(value),
		Time:   now,
	}
}

// a call at a given time
func callAt(sender common.Address, value uint64, at uint64) chain.Call {
	c := call(sender, value)
	c.Time = at
	return c
}

// a schedule paying claimerA 10 and claimerB 20 within the hour after next
func schedule(asset common.Address) pool.Info {
	return pool.Info{
		Name:        "schedule",
		Distributor: funder,
		Asset:       asset,
		Start:       now + 3600,
		Deadline:    now + 7200,
		Entries: []pool.Entry{
			{Claimer: claimerA, Amount: n(10)},
			{Claimer: claimerB, Amount: n(20)},
		},
	}
}

func (env *testEnv) balance(t *testing.T, asset common.Address, account common.Address) uint64 {
	var v *uint256.Int
	err := env.world.View(background, func(ctx context.Context) error {
		v = env.world.BalanceOf(asset, account)
		return nil
	})
	require.Nil(t, err, "view error")
	require.True(t, v.IsUint64(), "balance too large")
	return v.Uint64()
}

func (env *testEnv) pool(t *testing.T, id uint64) *pool.Pool {
	p, err := env.ledger.Pool(background, id)
	require.Nil(t, err, "pool read error")
	return p
}

func (env *testEnv) nextPoolId(t *testing.T) uint64 {
	id, err := env.ledger.NextPoolId(background)
	require.Nil(t, err, "next pool id error")
	return id
}

// custody holds exactly the unpaid value of all pools
func (env *testEnv) assertCustody(t *testing.T, asset common.Address, expected uint64) {
	assert.Equal(t, expected, env.balance(t, asset, custody), "wrong custody balance for: %s", asset.Hex())
}
