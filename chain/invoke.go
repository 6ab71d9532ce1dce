// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/fault"
)

// the calls an asset understands
const assetABI = `[
  {"type":"function","name":"transfer","stateMutability":"nonpayable",
   "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"approve","stateMutability":"nonpayable",
   "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
   "outputs":[{"name":"","type":"bool"}]}
]`

var assetMethods abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(assetABI))
	if nil != err {
		panic(err)
	}
	assetMethods = parsed
}

// EncodeTransfer - calldata for an asset transfer
func EncodeTransfer(to common.Address, value *uint256.Int) ([]byte, error) {
	return assetMethods.Pack("transfer", to, value.ToBig())
}

// EncodeApprove - calldata for an asset approval
func EncodeApprove(spender common.Address, value *uint256.Int) ([]byte, error) {
	return assetMethods.Pack("approve", spender, value.ToBig())
}

// Invoke - an arbitrary call from one account to a target
//
// attached value is pushed to the target first, then calldata, if
// any, is executed by the target asset
func (w *World) Invoke(ctx context.Context, from common.Address, target common.Address, value *uint256.Int, data []byte) ([]byte, error) {
	if nil != value && !value.IsZero() {
		err := w.SendNative(ctx, from, target, value, false)
		if nil != err {
			return nil, err
		}
	}

	if 0 == len(data) {
		return nil, nil
	}

	if _, ok := w.assets[target]; !ok {
		return nil, fault.ErrUnknownAsset
	}

	if len(data) < 4 {
		return nil, fault.ErrInvalidCalldata
	}
	method, err := assetMethods.MethodById(data[:4])
	if nil != err {
		return nil, fault.ErrInvalidCalldata
	}
	args, err := method.Inputs.Unpack(data[4:])
	if nil != err || 2 != len(args) {
		return nil, fault.ErrInvalidCalldata
	}

	account, ok := args[0].(common.Address)
	if !ok {
		return nil, fault.ErrInvalidCalldata
	}
	n, ok := args[1].(*big.Int)
	if !ok {
		return nil, fault.ErrInvalidCalldata
	}
	v, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fault.ErrAmountOverflow
	}

	switch method.Name {
	case "transfer":
		err = w.Transfer(ctx, target, from, account, v)
	case "approve":
		err = w.Approve(ctx, target, from, account, v)
	default:
		err = fault.ErrInvalidCalldata
	}
	if nil != err {
		return nil, err
	}

	w.log.Infof("invoke: %s  %s -> %s  amount: %s", method.Name, from.Hex(), account.Hex(), v.Dec())
	return method.Outputs.Pack(true)
}
