// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pools

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/disperse/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

// Pools
// -----

const (
	MaximumPoolCount = 100
	rateLimitPools   = 200
	rateBurstPools   = 100
)

// Pools - type for the RPC
type Pools struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  ledger.Reader
}

func New(log *logger.L, l ledger.Reader) *Pools {
	return &Pools{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitPools, rateBurstPools),
		Ledger:  l,
	}
}

// Get a single pool
// -----------------

// GetArguments - arguments for RPC
type GetArguments struct {
	Id uint64 `json:"id,string"`
}

// GetReply - result of get pool RPC
type GetReply struct {
	Id   uint64     `json:"id,string"`
	Pool *pool.Pool `json:"pool"`
}

// Get - read one pool, an unused id is not found
func (p *Pools) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments || 0 == arguments.Id {
		return fault.ErrPoolNotFound
	}

	result, err := p.Ledger.Pool(context.Background(), arguments.Id)
	if nil != err {
		return err
	}
	if pool.None == result.Status {
		return fault.ErrPoolNotFound
	}

	reply.Id = arguments.Id
	reply.Pool = result
	return nil
}

// List pools by id
// ----------------

// ListArguments - arguments for RPC
type ListArguments struct {
	Start uint64 `json:"start,string"` // first pool id
	Count int    `json:"count"`        // number of records
}

// ListReply - result of list pools RPC
type ListReply struct {
	Pools []pool.Stored `json:"pools"`
	Next  uint64        `json:"next,string"` // start value for the next call
}

// List - pools in id order
func (p *Pools) List(arguments *ListArguments, reply *ListReply) error {

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	if err := ratelimit.LimitN(p.Limiter, arguments.Count, MaximumPoolCount); nil != err {
		return err
	}

	start := arguments.Start
	if 0 == start {
		start = 1
	}

	result, err := p.Ledger.Pools(context.Background(), start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Pools = result
	reply.Next = start
	if n := len(result); n > 0 {
		reply.Next = result[n-1].Id + 1
	}
	return nil
}

// Amount claimed from a pool
// --------------------------

// ClaimedArguments - arguments for RPC
type ClaimedArguments struct {
	Id      uint64         `json:"id,string"`
	Claimer common.Address `json:"claimer"`
}

// ClaimedReply - result of claimed RPC
type ClaimedReply struct {
	Amount *uint256.Int `json:"amount"`
}

// Claimed - the amount a claimer has received from a pool
func (p *Pools) Claimed(arguments *ClaimedArguments, reply *ClaimedReply) error {

	if err := ratelimit.Limit(p.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	claimed, err := p.Ledger.Claimed(context.Background(), arguments.Claimer, arguments.Id)
	if nil != err {
		return err
	}
	reply.Amount = claimed
	return nil
}
