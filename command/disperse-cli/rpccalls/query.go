// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/rpc/balances"
	"github.com/bitmark-inc/disperse/rpc/events"
	"github.com/bitmark-inc/disperse/rpc/node"
	"github.com/bitmark-inc/disperse/rpc/pools"
)

// Info - request status from disperserd
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Pool - one pool
func (c *Client) Pool(id uint64) (*pools.GetReply, error) {
	var reply pools.GetReply
	if err := c.call("Pools.Get", &pools.GetArguments{Id: id}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Pools - a page of pools
func (c *Client) Pools(start uint64, count int) (*pools.ListReply, error) {
	var reply pools.ListReply
	if err := c.call("Pools.List", &pools.ListArguments{Start: start, Count: count}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Claimed - amount claimer has received from a pool
func (c *Client) Claimed(id uint64, claimer common.Address) (*uint256.Int, error) {
	var reply pools.ClaimedReply
	if err := c.call("Pools.Claimed", &pools.ClaimedArguments{Id: id, Claimer: claimer}, &reply); err != nil {
		return nil, err
	}
	return reply.Amount, nil
}

// Events - a page of events
func (c *Client) Events(start uint64, count int) (*events.ListReply, error) {
	var reply events.ListReply
	if err := c.call("Events.List", &events.ListArguments{Start: start, Count: count}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Balance - balance of account, zero asset for native
func (c *Client) Balance(asset common.Address, account common.Address) (*uint256.Int, error) {
	var reply balances.GetReply
	if err := c.call("Balances.Get", &balances.GetArguments{Asset: asset, Account: account}, &reply); err != nil {
		return nil, err
	}
	return reply.Amount, nil
}

// Allowance - how much spender may pull from owner
func (c *Client) Allowance(asset common.Address, owner common.Address, spender common.Address) (*uint256.Int, error) {
	var reply balances.GetReply
	arguments := &balances.AllowanceArguments{
		Asset:   asset,
		Owner:   owner,
		Spender: spender,
	}
	if err := c.call("Balances.Allowance", arguments, &reply); err != nil {
		return nil, err
	}
	return reply.Amount, nil
}

// Nonce - next request nonce of account
func (c *Client) Nonce(account common.Address) (uint64, error) {
	var reply balances.NonceReply
	if err := c.call("Balances.Nonce", &balances.NonceArguments{Account: account}, &reply); err != nil {
		return 0, err
	}
	return reply.Nonce, nil
}

// PermitNonce - next permit nonce of account for asset
func (c *Client) PermitNonce(asset common.Address, account common.Address) (uint64, error) {
	var reply balances.NonceReply
	if err := c.call("Balances.PermitNonce", &balances.NonceArguments{Asset: asset, Account: account}, &reply); err != nil {
		return 0, err
	}
	return reply.Nonce, nil
}
