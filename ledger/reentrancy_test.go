// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/chain"
	chainmocks "github.com/bitmark-inc/disperse/chain/mocks"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/pool"
)

// a claimer receiving a hooked asset calls back into the ledger
func TestReentrantClaimFromAssetHook(t *testing.T) {
	env := setup(t)
	defer env.teardown()

	first, err := env.ledger.Create(background, call(owner, 0), schedule(hookedToken), true)
	require.Nil(t, err, "create error")
	second, err := env.ledger.Create(background, call(owner, 0), schedule(hookedToken), true)
	require.Nil(t, err, "create error")

	var inner error
	r := chainmocks.NewMockReceiver(env.ctl)
	env.world.SetReceiver(claimerA, r)
	r.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt chain.Receipt) error {
		inner = env.ledger.Claim(ctx, callAt(claimerA, 0, inWindow), second, 0)
		return inner
	}).Times(1)

	err = env.ledger.Claim(background, callAt(claimerA, 0, inWindow), first, 0)
	assert.Equal(t, fault.ErrReentrantCall, inner, "inner call not rejected")
	assert.Equal(t, fault.ErrReentrantCall, err, "outer call did not fail")

	assert.Equal(t, uint64(0), env.balance(t, hookedToken, claimerA), "paid despite failure")
	p := env.pool(t, first)
	assert.True(t, p.Claimed.IsZero(), "claim recorded")
	env.assertCustody(t, hookedToken, 60)

	// guard is released after the failed call
	env.world.SetReceiver(claimerA, nil)
	err = env.ledger.Claim(background, callAt(claimerA, 0, inWindow), first, 0)
	require.Nil(t, err, "claim after failure")
	assert.Equal(t, uint64(10), env.balance(t, hookedToken, claimerA), "not paid")
}

// a hook calling back with a new context is refused rather than blocking
func TestReentrantClaimWithFreshContext(t *testing.T) {
	env := setup(t)
	defer env.teardown()

	first, err := env.ledger.Create(background, call(owner, 0), schedule(hookedToken), true)
	require.Nil(t, err, "create error")
	second, err := env.ledger.Create(background, call(owner, 0), schedule(hookedToken), true)
	require.Nil(t, err, "create error")

	var inner, view error
	r := chainmocks.NewMockReceiver(env.ctl)
	env.world.SetReceiver(claimerA, r)
	r.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt chain.Receipt) error {
		_, view = env.ledger.Owner(context.Background())
		inner = env.ledger.Claim(context.Background(), callAt(claimerA, 0, inWindow), second, 0)
		return inner
	}).Times(1)

	err = env.ledger.Claim(background, callAt(claimerA, 0, inWindow), first, 0)
	assert.Equal(t, fault.ErrReentrantCall, view, "view not refused")
	assert.Equal(t, fault.ErrReentrantCall, inner, "inner call not refused")
	assert.Equal(t, fault.ErrReentrantCall, err, "outer call did not fail")

	assert.Equal(t, uint64(0), env.balance(t, hookedToken, claimerA), "paid despite failure")
	assert.True(t, env.pool(t, second).Claimed.IsZero(), "inner claim recorded")
	env.assertCustody(t, hookedToken, 60)
}

// a native receiver that re-enters rejects the push, the ledger falls
// back to the wrapped asset
func TestReentrantNativeReceiverGetsWrapped(t *testing.T) {
	env := setup(t)
	defer env.teardown()

	first, err := env.ledger.Create(background, call(owner, 30), schedule(chain.Native), true)
	require.Nil(t, err, "create error")

	attempts := 0
	r := chainmocks.NewMockReceiver(env.ctl)
	env.world.SetReceiver(claimerA, r)
	r.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt chain.Receipt) error {
		attempts += 1
		return env.ledger.Cancel(ctx, callAt(owner, 0, afterEnd), []uint64{first})
	}).AnyTimes()

	err = env.ledger.Claim(background, callAt(claimerA, 0, inWindow), first, 0)
	require.Nil(t, err, "claim error")

	assert.Equal(t, 1, attempts, "wrong number of native attempts")
	assert.Equal(t, uint64(0), env.balance(t, chain.Native, claimerA), "native delivered")
	assert.Equal(t, uint64(10), env.balance(t, wrapped, claimerA), "wrapped not delivered")
	assert.Equal(t, pool.Funded, env.pool(t, first).Status, "pool changed by inner call")

	// custody keeps the native backing for the remaining claim and
	// the wrapped asset holds the backing for what was paid
	env.assertCustody(t, chain.Native, 20)
	assert.Equal(t, uint64(10), env.balance(t, chain.Native, wrapped), "wrapped not backed")
}

// reads are allowed while a call is in progress
func TestViewsFromReceiver(t *testing.T) {
	env := setup(t)
	defer env.teardown()

	id, err := env.ledger.Create(background, call(owner, 0), schedule(hookedToken), true)
	require.Nil(t, err, "create error")

	r := chainmocks.NewMockReceiver(env.ctl)
	env.world.SetReceiver(claimerB, r)
	r.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt chain.Receipt) error {
		claimed, err := env.ledger.Claimed(ctx, claimerB, id)
		if nil != err {
			return err
		}
		assert.Equal(t, n(20), claimed, "claim not visible to receiver")

		current, err := env.ledger.Owner(ctx)
		if nil != err {
			return err
		}
		assert.Equal(t, owner, current, "wrong owner seen by receiver")

		assert.Equal(t, n(20), receipt.Amount, "wrong receipt amount")
		return nil
	}).Times(1)

	err = env.ledger.Claim(background, callAt(claimerB, 0, inWindow), id, 1)
	require.Nil(t, err, "claim error")
	assert.Equal(t, uint64(20), env.balance(t, hookedToken, claimerB), "not paid")
}
