// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/fixtures"
)

func TestPermit(t *testing.T) {
	w := setupWorld(t)
	defer teardownWorld()

	const now = 1000
	const expiry = 2000

	signature, err := chain.SignPermit(fixtures.Key1, plainToken, bob, n(25), 0, expiry)
	require.Nil(t, err, "sign error")

	apply(t, w, func(ctx context.Context) error {
		return w.Permit(ctx, plainToken, alice, bob, n(25), expiry, signature, now)
	})
	assert.Equal(t, n(25), w.Allowance(plainToken, alice, bob), "allowance not granted")
	assert.Equal(t, uint64(1), w.PermitNonce(plainToken, alice), "nonce not advanced")

	items := []struct {
		name      string
		asset     common.Address
		owner     common.Address
		expiry    uint64
		signature func() []byte
		err       error
	}{
		{
			name:   "replay",
			asset:  plainToken,
			owner:  alice,
			expiry: expiry,
			signature: func() []byte {
				return signature
			},
			err: fault.ErrInvalidPermitSignature,
		},
		{
			name:   "expired",
			asset:  plainToken,
			owner:  alice,
			expiry: now - 1,
			signature: func() []byte {
				s, _ := chain.SignPermit(fixtures.Key1, plainToken, bob, n(25), 1, now-1)
				return s
			},
			err: fault.ErrPermitExpired,
		},
		{
			name:   "wrong signer",
			asset:  plainToken,
			owner:  alice,
			expiry: expiry,
			signature: func() []byte {
				s, _ := chain.SignPermit(fixtures.Key2, plainToken, bob, n(25), 1, expiry)
				return s
			},
			err: fault.ErrInvalidPermitSignature,
		},
		{
			name:   "short signature",
			asset:  plainToken,
			owner:  alice,
			expiry: expiry,
			signature: func() []byte {
				return []byte{1, 2, 3}
			},
			err: fault.ErrInvalidPermitSignature,
		},
		{
			name:   "unsupported",
			asset:  feeToken,
			owner:  alice,
			expiry: expiry,
			signature: func() []byte {
				s, _ := chain.SignPermit(fixtures.Key1, feeToken, bob, n(25), 0, expiry)
				return s
			},
			err: fault.ErrPermitUnsupported,
		},
	}

	for _, item := range items {
		err := w.Apply(context.Background(), func(ctx context.Context) error {
			return w.Permit(ctx, item.asset, item.owner, bob, n(25), item.expiry, item.signature(), now)
		})
		assert.Equal(t, item.err, err, "%s: wrong error", item.name)
	}

	assert.Equal(t, uint64(1), w.PermitNonce(plainToken, alice), "failed permit advanced nonce")
}
