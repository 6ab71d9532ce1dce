// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"crypto/ecdsa"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/storage"
)

const permitTag = "disperse permit:"

// asset ++ owner
func permitKey(asset common.Address, owner common.Address) []byte {
	key := make([]byte, 0, 2*common.AddressLength)
	key = append(key, asset[:]...)
	return append(key, owner[:]...)
}

// PermitNonce - the nonce the next permit from owner must carry
func (w *World) PermitNonce(asset common.Address, owner common.Address) uint64 {
	n, _ := storage.Pool.Permits.GetN(permitKey(asset, owner))
	return n
}

// PermitDigest - the hash an owner signs to grant spender an allowance
//
//   keccak256(tag ++ asset ++ owner ++ spender ++ amount ++ nonce ++ expiry)
func PermitDigest(asset common.Address, owner common.Address, spender common.Address, value *uint256.Int, nonce uint64, expiry uint64) []byte {
	buffer := make([]byte, 0, len(permitTag)+3*common.AddressLength+amount.Size+16)
	buffer = append(buffer, permitTag...)
	buffer = append(buffer, asset[:]...)
	buffer = append(buffer, owner[:]...)
	buffer = append(buffer, spender[:]...)
	buffer = append(buffer, amount.Pack(value)...)
	buffer = binary.BigEndian.AppendUint64(buffer, nonce)
	buffer = binary.BigEndian.AppendUint64(buffer, expiry)
	return crypto.Keccak256(buffer)
}

// SignPermit - produce the 65 byte signature for a permit
func SignPermit(key *ecdsa.PrivateKey, asset common.Address, spender common.Address, value *uint256.Int, nonce uint64, expiry uint64) ([]byte, error) {
	owner := crypto.PubkeyToAddress(key.PublicKey)
	return crypto.Sign(PermitDigest(asset, owner, spender, value, nonce, expiry), key)
}

// Permit - grant spender an allowance from a signature made by owner
func (w *World) Permit(ctx context.Context, asset common.Address, owner common.Address, spender common.Address, value *uint256.Int, expiry uint64, signature []byte, now uint64) error {
	trx, err := writer(ctx)
	if nil != err {
		return err
	}
	info, err := w.transferable(asset)
	if nil != err {
		return err
	}
	if !info.Permit {
		return fault.ErrPermitUnsupported
	}
	if expiry < now {
		return fault.ErrPermitExpired
	}
	if crypto.SignatureLength != len(signature) {
		return fault.ErrInvalidPermitSignature
	}

	key := permitKey(asset, owner)
	nonce, _ := trx.GetN(storage.Pool.Permits, key)

	digest := PermitDigest(asset, owner, spender, value, nonce, expiry)
	publicKey, err := crypto.SigToPub(digest, signature)
	if nil != err {
		return fault.ErrInvalidPermitSignature
	}
	if crypto.PubkeyToAddress(*publicKey) != owner {
		return fault.ErrInvalidPermitSignature
	}

	putAmount(trx, storage.Pool.Allowances, allowanceKey(asset, owner, spender), value)
	trx.PutN(storage.Pool.Permits, key, nonce+1)
	return nil
}
