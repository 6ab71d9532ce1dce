// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package submit_test

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/fixtures"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/disperse/rpc/request"
	"github.com/bitmark-inc/disperse/rpc/submit"
	"github.com/bitmark-inc/logger"
)

const now = 1700000000

var (
	custody = fixtures.Address(0xcc)
	token   = fixtures.Address(0x11)
	wrapped = fixtures.Address(0x33)

	owner = fixtures.Account1

	background = context.Background()
)

type testEnv struct {
	world   *chain.World
	ledger  *ledger.Ledger
	service *submit.Ledger
	clock   uint64
}

func setup(t *testing.T) *testEnv {
	err := fixtures.SetupTestStorage()
	require.Nil(t, err, "storage setup error")

	w, err := chain.New([]chain.AssetInfo{
		{Address: token, Symbol: "TKN", Decimals: 18, Permit: true},
		{Address: wrapped, Symbol: "WNAT", Decimals: 18},
	}, wrapped)
	require.Nil(t, err, "world error")

	err = w.Apply(background, func(ctx context.Context) error {
		for _, account := range []common.Address{fixtures.Account1, fixtures.Account2, fixtures.Account3} {
			for _, asset := range []common.Address{chain.Native, token} {
				err := w.Mint(ctx, asset, account, n(1000))
				if nil != err {
					return err
				}
			}
		}
		return nil
	})
	require.Nil(t, err, "mint error")

	l := ledger.New(w, pool.NewRegistry(), custody, nil)
	err = l.Initialise(background, chain.Call{Sender: fixtures.Account3, Time: now}, owner)
	require.Nil(t, err, "initialise error")

	env := &testEnv{
		world:  w,
		ledger: l,
		clock:  now,
	}
	env.service = submit.New(logger.New(fixtures.LogCategory), w, l, func() uint64 {
		return env.clock
	})
	return env
}

func teardown() {
	fixtures.TeardownTestStorage()
}

func n(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

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

func envelope(t *testing.T, key *ecdsa.PrivateKey, nonce uint64, value uint64, method string, params interface{}) *request.Envelope {
	var v *uint256.Int
	if 0 != value {
		v = n(value)
	}
	r, err := request.New(crypto.PubkeyToAddress(key.PublicKey), nonce, v, method, params)
	require.Nil(t, err, "request error")
	e, err := r.Sign(key)
	require.Nil(t, err, "sign error")
	return e
}

func (env *testEnv) submit(t *testing.T, key *ecdsa.PrivateKey, nonce uint64, value uint64, method string, params interface{}) (submit.SubmitReply, error) {
	var reply submit.SubmitReply
	err := env.service.Submit(envelope(t, key, nonce, value, method, params), &reply)
	return reply, err
}

func (env *testEnv) balance(t *testing.T, asset common.Address, account common.Address) uint64 {
	var v *uint256.Int
	err := env.world.View(background, func(ctx context.Context) error {
		v = env.world.BalanceOf(asset, account)
		return nil
	})
	require.Nil(t, err, "view error")
	return v.Uint64()
}

func (env *testEnv) nonce(t *testing.T, account common.Address) uint64 {
	var nonce uint64
	err := env.world.View(background, func(ctx context.Context) error {
		nonce = env.world.RequestNonce(account)
		return nil
	})
	require.Nil(t, err, "view error")
	return nonce
}

func TestSubmitCreateAndClaim(t *testing.T) {
	env := setup(t)
	defer teardown()

	a, b := fixtures.Account2, fixtures.Account3
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	info := pool.Info{
		Name:        "payroll",
		Distributor: owner,
		Asset:       chain.Native,
		Start:       now + 3600,
		Deadline:    now + 7200,
		Entries: []pool.Entry{
			{Claimer: a, Amount: n(10)},
			{Claimer: b, Amount: n(20)},
		},
	}

	reply, err := env.submit(t, fixtures.Key1, 0, 30, request.Create, request.CreateParams{Info: info, Fund: true})
	require.Nil(t, err, "create error")
	assert.Equal(t, request.Create, reply.Method, "wrong method")
	assert.Equal(t, []uint64{1}, reply.Ids, "wrong ids")
	assert.Equal(t, uint64(970), env.balance(t, chain.Native, owner), "value not attached")
	assert.Equal(t, uint64(30), env.balance(t, chain.Native, custody), "value not in custody")

	// before the window
	_, err = env.submit(t, keyOf(a), 0, 0, request.Claim, request.ClaimParams{Id: 1, Index: 0})
	assert.Equal(t, fault.ErrClaimOutsideWindow, err, "claimed before start")

	env.clock = now + 3601
	_, err = env.submit(t, keyOf(a), 1, 0, request.Claim, request.ClaimParams{Id: 1, Index: 0})
	require.Nil(t, err, "claim a error")
	assert.Equal(t, uint64(1010), env.balance(t, chain.Native, a), "a not paid")

	_, err = env.submit(t, keyOf(b), 0, 0, request.Claim, request.ClaimParams{Id: 1, Index: 1})
	require.Nil(t, err, "claim b error")

	p, err := env.ledger.Pool(background, 1)
	require.Nil(t, err, "pool error")
	assert.Equal(t, pool.Closed, p.Status, "pool not closed")
	assert.Equal(t, n(30), p.Claimed, "wrong claimed")
	assert.Equal(t, uint64(0), env.balance(t, chain.Native, custody), "custody not empty")
}

func TestSubmitNonce(t *testing.T) {
	env := setup(t)
	defer teardown()

	e := envelope(t, fixtures.Key2, 0, 0, request.Approve, request.AssetParams{Asset: token, Account: custody, Amount: n(5)})

	var reply submit.SubmitReply
	err := env.service.Submit(e, &reply)
	require.Nil(t, err, "approve error")
	assert.Equal(t, uint64(0), reply.Nonce, "wrong nonce")

	err = env.service.Submit(e, &reply)
	assert.Equal(t, fault.ErrInvalidNonce, err, "replay accepted")

	_, err = env.submit(t, fixtures.Key2, 5, 0, request.Approve, request.AssetParams{Asset: token, Account: custody, Amount: n(5)})
	assert.Equal(t, fault.ErrInvalidNonce, err, "future nonce accepted")

	assert.Equal(t, uint64(1), env.nonce(t, fixtures.Account2), "wrong next nonce")
}

func TestSubmitFailureUsesNonce(t *testing.T) {
	env := setup(t)
	defer teardown()

	_, err := env.submit(t, fixtures.Key2, 0, 0, request.Cancel, request.PoolsParams{Ids: []uint64{1}})
	assert.Equal(t, fault.ErrNotOwner, err, "non owner cancel")
	assert.Equal(t, uint64(1), env.nonce(t, fixtures.Account2), "nonce not used")

	// rolled back value does not leave the sender
	_, err = env.submit(t, fixtures.Key2, 1, 12, request.DisperseNative, request.DisperseParams{
		Recipients: []common.Address{fixtures.Address(0x5a)},
		Amounts:    []*uint256.Int{n(12)},
	})
	assert.Equal(t, fault.ErrNotOwner, err, "non owner disperse")
	assert.Equal(t, uint64(1000), env.balance(t, chain.Native, fixtures.Account2), "value lost")
	assert.Equal(t, uint64(2), env.nonce(t, fixtures.Account2), "nonce not used")
}

func TestSubmitRejectsBeforeNonce(t *testing.T) {
	env := setup(t)
	defer teardown()

	_, err := env.submit(t, fixtures.Key2, 0, 0, "mint", nil)
	assert.Equal(t, fault.ErrUnknownMethod, err, "unknown method accepted")

	e := envelope(t, fixtures.Key2, 0, 0, request.Claim, request.ClaimParams{Id: 1})
	e.Signature = e.Signature[1:]
	var reply submit.SubmitReply
	err = env.service.Submit(e, &reply)
	assert.Equal(t, fault.ErrInvalidSignature, err, "bad signature accepted")

	err = env.service.Submit(nil, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "nil envelope accepted")

	assert.Equal(t, uint64(0), env.nonce(t, fixtures.Account2), "nonce used")
	assert.True(t, submit.Known(request.BatchClaim), "batch claim unknown")
	assert.False(t, submit.Known("mint"), "mint known")
}

func TestSubmitAssetOperations(t *testing.T) {
	env := setup(t)
	defer teardown()

	sender := fixtures.Account2
	other := fixtures.Account3

	_, err := env.submit(t, fixtures.Key2, 0, 0, request.Approve, request.AssetParams{Asset: token, Account: custody, Amount: n(40)})
	require.Nil(t, err, "approve error")

	_, err = env.submit(t, fixtures.Key2, 1, 0, request.Transfer, request.AssetParams{Asset: token, Account: other, Amount: n(15)})
	require.Nil(t, err, "token transfer error")

	_, err = env.submit(t, fixtures.Key2, 2, 0, request.Transfer, request.AssetParams{Asset: chain.Native, Account: other, Amount: n(7)})
	require.Nil(t, err, "native transfer error")

	_, err = env.submit(t, fixtures.Key2, 3, 0, request.Wrap, request.AssetParams{Amount: n(20)})
	require.Nil(t, err, "wrap error")

	_, err = env.submit(t, fixtures.Key2, 4, 0, request.Unwrap, request.AssetParams{Amount: n(5)})
	require.Nil(t, err, "unwrap error")

	err = env.world.View(background, func(ctx context.Context) error {
		assert.Equal(t, n(40), env.world.Allowance(token, sender, custody), "wrong allowance")
		return nil
	})
	require.Nil(t, err, "view error")
	assert.Equal(t, uint64(985), env.balance(t, token, sender), "wrong sender token")
	assert.Equal(t, uint64(1015), env.balance(t, token, other), "wrong recipient token")
	assert.Equal(t, uint64(1007), env.balance(t, chain.Native, other), "wrong recipient native")
	assert.Equal(t, uint64(978), env.balance(t, chain.Native, sender), "wrong sender native")
	assert.Equal(t, uint64(15), env.balance(t, wrapped, sender), "wrong wrapped")

	_, err = env.submit(t, fixtures.Key2, 5, 3, request.Approve, request.AssetParams{Asset: token, Account: custody, Amount: n(1)})
	assert.Equal(t, fault.ErrValueMismatch, err, "value attached to approve")

	_, err = env.submit(t, fixtures.Key2, 6, 0, request.Wrap, request.AssetParams{})
	assert.Equal(t, fault.ErrInvalidAmount, err, "missing amount")

	_, err = env.submit(t, fixtures.Key2, 7, 0, request.Wrap, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing params")
}

func TestSubmitDisperseTokenWithPermit(t *testing.T) {
	env := setup(t)
	defer teardown()

	x := fixtures.Address(0x5a)
	y := fixtures.Address(0x5b)

	signature, err := chain.SignPermit(fixtures.Key1, token, custody, n(30), 0, now+100)
	require.Nil(t, err, "sign permit error")

	_, err = env.submit(t, fixtures.Key1, 0, 0, request.DisperseToken, request.DisperseParams{
		Asset:      token,
		Recipients: []common.Address{x, y},
		Amounts:    []*uint256.Int{n(10), n(20)},
		Permit: &ledger.Permit{
			Asset:     token,
			Amount:    n(30),
			Expiry:    now + 100,
			Signature: signature,
		},
	})
	require.Nil(t, err, "disperse error")
	assert.Equal(t, uint64(10), env.balance(t, token, x), "x not paid")
	assert.Equal(t, uint64(20), env.balance(t, token, y), "y not paid")
	assert.Equal(t, uint64(970), env.balance(t, token, owner), "owner not charged")
	assert.Equal(t, uint64(0), env.balance(t, token, custody), "custody kept tokens")
}

func TestSubmitExecute(t *testing.T) {
	env := setup(t)
	defer teardown()

	err := env.world.Apply(background, func(ctx context.Context) error {
		return env.world.Mint(ctx, token, custody, n(50))
	})
	require.Nil(t, err, "mint error")

	to := fixtures.Address(0x77)
	data, err := chain.EncodeTransfer(to, n(50))
	require.Nil(t, err, "encode error")

	reply, err := env.submit(t, fixtures.Key1, 0, 0, request.Execute, request.ExecuteParams{Target: token, Data: data})
	require.Nil(t, err, "execute error")
	assert.Equal(t, 32, len(reply.Result), "wrong result length")
	assert.Equal(t, byte(1), reply.Result[31], "result is not true")
	assert.Equal(t, uint64(50), env.balance(t, token, to), "not transferred")

	_, err = env.submit(t, fixtures.Key2, 0, 0, request.Execute, request.ExecuteParams{Target: token, Data: data})
	assert.Equal(t, fault.ErrNotOwner, err, "non owner execute")
}
