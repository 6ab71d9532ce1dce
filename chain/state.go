// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

//go:generate mockgen -source=state.go -destination=mocks/state.go -package=mocks

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// State - read only access to assets, balances and nonces
//
// the getters must be called inside View
type State interface {
	View(ctx context.Context, fn func(ctx context.Context) error) error
	Asset(address common.Address) (AssetInfo, bool)
	Assets() []AssetInfo
	BalanceOf(asset common.Address, account common.Address) *uint256.Int
	Allowance(asset common.Address, owner common.Address, spender common.Address) *uint256.Int
	PermitNonce(asset common.Address, owner common.Address) uint64
	RequestNonce(account common.Address) uint64
}

var _ State = (*World)(nil)
