// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/chain/mocks"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/fixtures"
)

var (
	plainToken  = fixtures.Address(0x11)
	feeToken    = fixtures.Address(0x22)
	wrapped     = fixtures.Address(0x33)
	hookedToken = fixtures.Address(0x44)

	alice = fixtures.Account1
	bob   = fixtures.Account2
	carol = fixtures.Account3
)

func setupWorld(t *testing.T) *chain.World {
	err := fixtures.SetupTestStorage()
	require.Nil(t, err, "storage setup error")

	w, err := chain.New([]chain.AssetInfo{
		{Address: plainToken, Symbol: "PLN", Decimals: 18, Permit: true},
		{Address: feeToken, Symbol: "FEE", Decimals: 6, FeeBasisPoints: 100},
		{Address: wrapped, Symbol: "WNAT", Decimals: 18},
		{Address: hookedToken, Symbol: "HKD", Decimals: 0, Hooks: true},
	}, wrapped)
	require.Nil(t, err, "world error")
	return w
}

func teardownWorld() {
	fixtures.TeardownTestStorage()
}

func n(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func apply(t *testing.T, w *chain.World, fn func(ctx context.Context) error) {
	err := w.Apply(context.Background(), fn)
	require.Nil(t, err, "apply error")
}

func TestNewRejectsBadAssets(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := chain.New([]chain.AssetInfo{{Address: chain.Native}}, chain.Native)
	assert.Equal(t, fault.ErrNativeAssetNotAllowed, err, "native registered as asset")

	_, err = chain.New([]chain.AssetInfo{{Address: plainToken}, {Address: plainToken}}, chain.Native)
	assert.Equal(t, fault.ErrAssetAlreadyRegistered, err, "duplicate asset")

	_, err = chain.New([]chain.AssetInfo{{Address: plainToken, FeeBasisPoints: 10001}}, chain.Native)
	assert.Equal(t, fault.ErrInvalidFeeBasisPoints, err, "fee over 100%")

	_, err = chain.New([]chain.AssetInfo{{Address: plainToken}}, wrapped)
	assert.Equal(t, fault.ErrUnknownAsset, err, "unregistered wrapped asset")

	w, err := chain.New(nil, chain.Native)
	require.Nil(t, err, "empty world error")
	_, err = w.WrappedNative()
	assert.Equal(t, fault.ErrNotWrappedNative, err, "wrapped native without configuration")
}

func TestApplyCommitAndAbort(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	hooks := 0
	apply(t, w, func(ctx context.Context) error {
		_ = chain.AfterCommit(ctx, func() { hooks += 1 })
		return w.Mint(ctx, chain.Native, alice, n(100))
	})
	assert.Equal(t, 1, hooks, "after commit hook not run")
	assert.Equal(t, n(100), w.BalanceOf(chain.Native, alice), "mint not committed")

	failure := errors.New("failure")
	err := w.Apply(context.Background(), func(ctx context.Context) error {
		_ = chain.AfterCommit(ctx, func() { hooks += 1 })
		err := w.Mint(ctx, chain.Native, alice, n(50))
		require.Nil(t, err, "mint error")
		assert.Equal(t, n(150), w.BalanceOf(chain.Native, alice), "pending mint not visible")
		return failure
	})
	assert.Equal(t, failure, err, "wrong apply error")
	assert.Equal(t, 1, hooks, "hook run for aborted transition")
	assert.Equal(t, n(100), w.BalanceOf(chain.Native, alice), "aborted mint committed")
}

func TestApplyPanicReleasesTransaction(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	assert.Panics(t, func() {
		_ = w.Apply(context.Background(), func(ctx context.Context) error {
			_ = w.Mint(ctx, chain.Native, alice, n(1))
			panic("boom")
		})
	}, "panic not propagated")

	apply(t, w, func(ctx context.Context) error {
		return w.Mint(ctx, chain.Native, bob, n(1))
	})
	assert.True(t, w.BalanceOf(chain.Native, alice).IsZero(), "write of panicking transition kept")
	assert.Equal(t, n(1), w.BalanceOf(chain.Native, bob), "later transition failed")
}

func TestNestedApplyDiscardsOwnWrites(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	failure := errors.New("inner failure")
	hooks := 0

	apply(t, w, func(ctx context.Context) error {
		err := w.Mint(ctx, chain.Native, alice, n(10))
		require.Nil(t, err, "outer mint error")

		err = w.Apply(ctx, func(ctx context.Context) error {
			_ = chain.AfterCommit(ctx, func() { hooks += 1 })
			_ = w.Mint(ctx, chain.Native, bob, n(20))
			return failure
		})
		assert.Equal(t, failure, err, "wrong inner error")
		return nil
	})

	assert.Equal(t, n(10), w.BalanceOf(chain.Native, alice), "outer write lost")
	assert.True(t, w.BalanceOf(chain.Native, bob).IsZero(), "inner write kept")
	assert.Equal(t, 0, hooks, "hook of failed inner transition run")
}

func TestWriteOutsideApply(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	ctx := context.Background()
	assert.Equal(t, fault.ErrTransactionNotInUse, w.Mint(ctx, chain.Native, alice, n(1)), "mint outside apply")
	assert.Equal(t, fault.ErrTransactionNotInUse, chain.AfterCommit(ctx, func() {}), "hook outside apply")
	assert.False(t, chain.InTransition(ctx), "background context in transition")

	err := w.View(ctx, func(ctx context.Context) error {
		assert.True(t, w.BalanceOf(chain.Native, alice).IsZero(), "wrong balance")
		return nil
	})
	assert.Nil(t, err, "view error")
}

func TestSendNativeRejected(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReceiver(ctl)
	w.SetReceiver(bob, r)

	r.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt chain.Receipt) error {
		assert.True(t, receipt.Limited, "stipend flag not passed")
		assert.Equal(t, n(40), receipt.Amount, "wrong receipt amount")
		// writes made by the rejecting receiver are undone too
		_ = w.Mint(ctx, chain.Native, carol, n(5))
		return errors.New("not accepting")
	}).Times(1)

	apply(t, w, func(ctx context.Context) error {
		err := w.Mint(ctx, chain.Native, alice, n(100))
		require.Nil(t, err, "mint error")

		err = w.SendNative(ctx, alice, bob, n(40), true)
		assert.Equal(t, fault.ErrNativeTransferRejected, err, "rejection not reported")
		return nil
	})

	assert.Equal(t, n(100), w.BalanceOf(chain.Native, alice), "sender debited")
	assert.True(t, w.BalanceOf(chain.Native, bob).IsZero(), "receiver credited")
	assert.True(t, w.BalanceOf(chain.Native, carol).IsZero(), "receiver side effect kept")
}

// a receiver that drops its context is refused instead of waiting on
// the transition that is running it
func TestReceiverWithForeignContext(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReceiver(ctl)
	w.SetReceiver(bob, r)

	var applyErr, viewErr error
	r.EXPECT().Receive(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, receipt chain.Receipt) error {
		applyErr = w.Apply(context.Background(), func(ctx context.Context) error {
			return w.Mint(ctx, chain.Native, carol, n(5))
		})
		viewErr = w.View(context.Background(), func(ctx context.Context) error {
			return nil
		})
		return nil
	}).Times(1)

	apply(t, w, func(ctx context.Context) error {
		err := w.Mint(ctx, chain.Native, alice, n(100))
		require.Nil(t, err, "mint error")
		return w.SendNative(ctx, alice, bob, n(40), false)
	})

	assert.Equal(t, fault.ErrReentrantCall, applyErr, "foreign apply not refused")
	assert.Equal(t, fault.ErrReentrantCall, viewErr, "foreign view not refused")
	assert.Equal(t, n(40), w.BalanceOf(chain.Native, bob), "receiver not paid")
	assert.True(t, w.BalanceOf(chain.Native, carol).IsZero(), "foreign apply wrote")

	// once the receiver has returned a fresh context works again
	apply(t, w, func(ctx context.Context) error {
		return w.Mint(ctx, chain.Native, carol, n(5))
	})
	assert.Equal(t, n(5), w.BalanceOf(chain.Native, carol), "mint after receiver failed")
}

func TestSendNativeAccepted(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReceiver(ctl)
	w.SetReceiver(bob, r)
	r.EXPECT().Receive(gomock.Any(), chain.Receipt{
		Asset:  chain.Native,
		From:   alice,
		To:     bob,
		Amount: n(40),
	}).Return(nil).Times(1)

	apply(t, w, func(ctx context.Context) error {
		_ = w.Mint(ctx, chain.Native, alice, n(100))
		return w.SendNative(ctx, alice, bob, n(40), false)
	})

	assert.Equal(t, n(60), w.BalanceOf(chain.Native, alice), "wrong sender balance")
	assert.Equal(t, n(40), w.BalanceOf(chain.Native, bob), "wrong receiver balance")

	err := w.Apply(context.Background(), func(ctx context.Context) error {
		return w.SendNative(ctx, alice, carol, n(61), false)
	})
	assert.Equal(t, fault.ErrInsufficientBalance, err, "overdraft allowed")
}

func TestAttach(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	apply(t, w, func(ctx context.Context) error {
		_ = w.Mint(ctx, chain.Native, alice, n(10))
		return w.Attach(ctx, chain.Call{Sender: alice, Value: n(7)}, bob)
	})
	assert.Equal(t, n(3), w.BalanceOf(chain.Native, alice), "wrong sender balance")
	assert.Equal(t, n(7), w.BalanceOf(chain.Native, bob), "wrong callee balance")

	err := w.Apply(context.Background(), func(ctx context.Context) error {
		return w.Attach(ctx, chain.Call{Sender: alice, Value: n(4)}, bob)
	})
	assert.Equal(t, fault.ErrInsufficientValue, err, "attached more than balance")

	apply(t, w, func(ctx context.Context) error {
		return w.Attach(ctx, chain.Call{Sender: carol}, bob)
	})
}

func TestTransferWithFee(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	apply(t, w, func(ctx context.Context) error {
		_ = w.Mint(ctx, feeToken, alice, n(1000))
		return w.Transfer(ctx, feeToken, alice, bob, n(500))
	})

	assert.Equal(t, n(500), w.BalanceOf(feeToken, alice), "wrong sender balance")
	assert.Equal(t, n(495), w.BalanceOf(feeToken, bob), "fee not deducted")
	assert.Equal(t, n(5), w.BalanceOf(feeToken, feeToken), "fee not kept by asset")

	err := w.Apply(context.Background(), func(ctx context.Context) error {
		return w.Transfer(ctx, chain.Native, alice, bob, n(1))
	})
	assert.Equal(t, fault.ErrNativeAssetNotAllowed, err, "native transferred as asset")

	err = w.Apply(context.Background(), func(ctx context.Context) error {
		return w.Transfer(ctx, fixtures.Address(0x99), alice, bob, n(1))
	})
	assert.Equal(t, fault.ErrUnknownAsset, err, "unknown asset transferred")
}

func TestTransferHooks(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReceiver(ctl)
	w.SetReceiver(bob, r)

	// plain asset does not notify
	r.EXPECT().Receive(gomock.Any(), gomock.Any()).Return(errors.New("rejected")).Times(1)

	apply(t, w, func(ctx context.Context) error {
		_ = w.Mint(ctx, plainToken, alice, n(10))
		return w.Transfer(ctx, plainToken, alice, bob, n(10))
	})
	assert.Equal(t, n(10), w.BalanceOf(plainToken, bob), "plain transfer failed")

	err := w.Apply(context.Background(), func(ctx context.Context) error {
		_ = w.Mint(ctx, hookedToken, alice, n(10))
		return w.Transfer(ctx, hookedToken, alice, bob, n(10))
	})
	assert.EqualError(t, err, "rejected", "hook error not returned")
	assert.True(t, w.BalanceOf(hookedToken, bob).IsZero(), "rejected transfer kept")
}

func TestTransferFrom(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	apply(t, w, func(ctx context.Context) error {
		_ = w.Mint(ctx, plainToken, alice, n(100))
		_ = w.Approve(ctx, plainToken, alice, bob, n(30))
		return w.TransferFrom(ctx, plainToken, bob, alice, carol, n(20))
	})
	assert.Equal(t, n(10), w.Allowance(plainToken, alice, bob), "allowance not decreased")
	assert.Equal(t, n(20), w.BalanceOf(plainToken, carol), "wrong recipient balance")

	err := w.Apply(context.Background(), func(ctx context.Context) error {
		return w.TransferFrom(ctx, plainToken, bob, alice, carol, n(11))
	})
	assert.Equal(t, fault.ErrInsufficientAllowance, err, "allowance exceeded")

	apply(t, w, func(ctx context.Context) error {
		_ = w.Approve(ctx, plainToken, alice, bob, amount.Max())
		return w.TransferFrom(ctx, plainToken, bob, alice, carol, n(80))
	})
	assert.Equal(t, amount.Max(), w.Allowance(plainToken, alice, bob), "unlimited allowance decreased")
	assert.True(t, w.BalanceOf(plainToken, alice).IsZero(), "wrong sender balance")
}

func TestWrapUnwrap(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	apply(t, w, func(ctx context.Context) error {
		_ = w.Mint(ctx, chain.Native, alice, n(50))
		return w.Wrap(ctx, alice, n(30))
	})
	assert.Equal(t, n(20), w.BalanceOf(chain.Native, alice), "native not taken")
	assert.Equal(t, n(30), w.BalanceOf(wrapped, alice), "wrapped not credited")
	assert.Equal(t, n(30), w.BalanceOf(chain.Native, wrapped), "backing not held")

	apply(t, w, func(ctx context.Context) error {
		return w.Unwrap(ctx, alice, n(10))
	})
	assert.Equal(t, n(30), w.BalanceOf(chain.Native, alice), "native not returned")
	assert.Equal(t, n(20), w.BalanceOf(wrapped, alice), "wrapped not burned")
	assert.Equal(t, n(20), w.BalanceOf(chain.Native, wrapped), "backing not released")

	apply(t, w, func(ctx context.Context) error {
		return w.Mint(ctx, wrapped, bob, n(5))
	})
	assert.Equal(t, n(25), w.BalanceOf(chain.Native, wrapped), "minted wrapped not backed")
}

func TestRequestNonce(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	assert.Equal(t, uint64(0), w.RequestNonce(alice), "wrong initial nonce")

	apply(t, w, func(ctx context.Context) error {
		return w.UseRequestNonce(ctx, alice, 0)
	})
	assert.Equal(t, uint64(1), w.RequestNonce(alice), "nonce not advanced")

	err := w.Apply(context.Background(), func(ctx context.Context) error {
		return w.UseRequestNonce(ctx, alice, 0)
	})
	assert.Equal(t, fault.ErrInvalidNonce, err, "replayed nonce accepted")
}
