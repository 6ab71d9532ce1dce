// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package request - signed envelopes for state changing RPC calls
//
// the signature covers the exact payload bytes so the server never
// needs to re-encode anything to verify it:
//
//   signature = secp256k1(keccak256("disperse request:" ++ payload))
package request

import (
	"crypto/ecdsa"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/fault"
)

var signingTag = []byte("disperse request:")

// Request - one state changing call
type Request struct {
	From   common.Address  `json:"from"`
	Nonce  uint64          `json:"nonce"`
	Value  *uint256.Int    `json:"value,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Envelope - what is actually sent to the server
type Envelope struct {
	Payload   []byte `json:"payload"`
	Signature []byte `json:"signature"`
}

// New - build a request with params encoded as JSON
func New(from common.Address, nonce uint64, value *uint256.Int, method string, params interface{}) (*Request, error) {
	r := &Request{
		From:   from,
		Nonce:  nonce,
		Value:  value,
		Method: method,
	}
	if nil != params {
		buffer, err := json.Marshal(params)
		if nil != err {
			return nil, err
		}
		r.Params = buffer
	}
	return r, nil
}

func digest(payload []byte) []byte {
	return crypto.Keccak256(signingTag, payload)
}

// Sign - encode and sign, the key must belong to From
func (r *Request) Sign(key *ecdsa.PrivateKey) (*Envelope, error) {
	if crypto.PubkeyToAddress(key.PublicKey) != r.From {
		return nil, fault.ErrInvalidSignature
	}
	payload, err := json.Marshal(r)
	if nil != err {
		return nil, err
	}
	signature, err := crypto.Sign(digest(payload), key)
	if nil != err {
		return nil, err
	}
	return &Envelope{
		Payload:   payload,
		Signature: signature,
	}, nil
}

// Open - verify the signature and decode the request
func (e *Envelope) Open() (*Request, error) {
	if crypto.SignatureLength != len(e.Signature) {
		return nil, fault.ErrInvalidSignature
	}
	publicKey, err := crypto.SigToPub(digest(e.Payload), e.Signature)
	if nil != err {
		return nil, fault.ErrInvalidSignature
	}

	r := &Request{}
	err = json.Unmarshal(e.Payload, r)
	if nil != err {
		return nil, fault.ErrInvalidCalldata
	}
	if crypto.PubkeyToAddress(*publicKey) != r.From {
		return nil, fault.ErrInvalidSignature
	}
	if "" == r.Method {
		return nil, fault.ErrMissingParameters
	}
	return r, nil
}

// Decode - unpack the params into a method's parameter structure
func (r *Request) Decode(params interface{}) error {
	if 0 == len(r.Params) {
		return fault.ErrMissingParameters
	}
	if err := json.Unmarshal(r.Params, params); nil != err {
		return fault.ErrInvalidCalldata
	}
	return nil
}
