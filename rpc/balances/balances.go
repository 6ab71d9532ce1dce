// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balances

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitBalances = 200
	rateBurstBalances = 100
)

// Balances - type for the RPC
type Balances struct {
	Log     *logger.L
	Limiter *rate.Limiter
	State   chain.State
}

func New(log *logger.L, state chain.State) *Balances {
	return &Balances{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitBalances, rateBurstBalances),
		State:   state,
	}
}

// known asset or native
func (b *Balances) check(asset common.Address) error {
	if chain.Native == asset {
		return nil
	}
	if _, ok := b.State.Asset(asset); !ok {
		return fault.ErrUnknownAsset
	}
	return nil
}

// GetArguments - arguments for RPC
type GetArguments struct {
	Asset   common.Address `json:"asset"` // zero address for native
	Account common.Address `json:"account"`
}

// GetReply - result of balance RPC
type GetReply struct {
	Amount *uint256.Int `json:"amount"`
}

// Get - the balance of one account
func (b *Balances) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := b.check(arguments.Asset); nil != err {
		return err
	}

	return b.State.View(context.Background(), func(ctx context.Context) error {
		reply.Amount = b.State.BalanceOf(arguments.Asset, arguments.Account)
		return nil
	})
}

// AllowanceArguments - arguments for RPC
type AllowanceArguments struct {
	Asset   common.Address `json:"asset"`
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
}

// Allowance - how much spender may still pull from owner
func (b *Balances) Allowance(arguments *AllowanceArguments, reply *GetReply) error {

	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if chain.Native == arguments.Asset {
		return fault.ErrNativeAssetNotAllowed
	}
	if err := b.check(arguments.Asset); nil != err {
		return err
	}

	return b.State.View(context.Background(), func(ctx context.Context) error {
		reply.Amount = b.State.Allowance(arguments.Asset, arguments.Owner, arguments.Spender)
		return nil
	})
}

// NonceArguments - arguments for RPC
//
// Asset is only used for permit nonces
type NonceArguments struct {
	Asset   common.Address `json:"asset"`
	Account common.Address `json:"account"`
}

// NonceReply - result of the nonce RPCs
type NonceReply struct {
	Nonce uint64 `json:"nonce"`
}

// Nonce - the nonce the next signed request from an account must carry
func (b *Balances) Nonce(arguments *NonceArguments, reply *NonceReply) error {

	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	return b.State.View(context.Background(), func(ctx context.Context) error {
		reply.Nonce = b.State.RequestNonce(arguments.Account)
		return nil
	})
}

// PermitNonce - the nonce the next permit of an account for an asset must carry
func (b *Balances) PermitNonce(arguments *NonceArguments, reply *NonceReply) error {

	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if chain.Native == arguments.Asset {
		return fault.ErrNativeAssetNotAllowed
	}
	if err := b.check(arguments.Asset); nil != err {
		return err
	}

	return b.State.View(context.Background(), func(ctx context.Context) error {
		reply.Nonce = b.State.PermitNonce(arguments.Asset, arguments.Account)
		return nil
	})
}
