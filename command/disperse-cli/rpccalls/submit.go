// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/rpc/request"
	"github.com/bitmark-inc/disperse/rpc/submit"
)

// Submit - sign a request with the next nonce of key and send it
func (c *Client) Submit(key *ecdsa.PrivateKey, value *uint256.Int, method string, params interface{}) (*submit.SubmitReply, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := c.Nonce(from)
	if nil != err {
		return nil, err
	}

	r, err := request.New(from, nonce, value, method, params)
	if nil != err {
		return nil, err
	}

	envelope, err := r.Sign(key)
	if nil != err {
		return nil, err
	}

	var reply submit.SubmitReply
	if err := c.call("Ledger.Submit", envelope, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Permit - sign an allowance of amount of asset for spender using
// the next permit nonce of key
func (c *Client) Permit(key *ecdsa.PrivateKey, spender common.Address, asset common.Address, amount *uint256.Int, expiry uint64) (*ledger.Permit, error) {
	owner := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := c.PermitNonce(asset, owner)
	if nil != err {
		return nil, err
	}

	signature, err := chain.SignPermit(key, asset, spender, amount, nonce, expiry)
	if nil != err {
		return nil, err
	}

	return &ledger.Permit{
		Asset:     asset,
		Amount:    amount,
		Expiry:    expiry,
		Signature: signature,
	}, nil
}
