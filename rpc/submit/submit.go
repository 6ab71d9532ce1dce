// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package submit - the RPC entry for signed state changing requests
//
// each request carries the next nonce of its sender, the nonce is used
// up in its own transition before the method runs so a failed call
// cannot be replayed either
package submit

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/rpc/ratelimit"
	"github.com/bitmark-inc/disperse/rpc/request"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitSubmit = 100
	rateBurstSubmit = 50
)

// Ledger - type for the RPC
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	World   *chain.World
	Ledger  *ledger.Ledger
	Clock   func() uint64
}

// SubmitReply - result of a submitted request
type SubmitReply struct {
	Method string        `json:"method"`
	Nonce  uint64        `json:"nonce"`
	Ids    []uint64      `json:"ids,omitempty"`    // created pools
	Result hexutil.Bytes `json:"result,omitempty"` // return data of execute
}

// a decoded request and the call it runs as
type invocation struct {
	request *request.Request
	call    chain.Call
}

type handler func(s *Ledger, ctx context.Context, in invocation, reply *SubmitReply) error

var handlers = map[string]handler{
	request.DisperseNative:      disperseNative,
	request.DisperseToken:       disperseToken,
	request.DisperseTokenSimple: disperseTokenSimple,
	request.BatchDisperse:       batchDisperse,
	request.Permit:              permit,
	request.Create:              create,
	request.BatchCreate:         batchCreate,
	request.Fund:                fund,
	request.BatchFund:           batchFund,
	request.Claim:               claim,
	request.BatchClaim:          batchClaim,
	request.Distribute:          distribute,
	request.BatchDistribute:     batchDistribute,
	request.Cancel:              cancel,
	request.Execute:             execute,
	request.Approve:             approve,
	request.Transfer:            transfer,
	request.Wrap:                wrap,
	request.Unwrap:              unwrap,
}

// Known - true if method can be submitted
func Known(method string) bool {
	_, ok := handlers[method]
	return ok
}

func New(log *logger.L, world *chain.World, l *ledger.Ledger, clock func() uint64) *Ledger {
	if nil == clock {
		clock = func() uint64 {
			return uint64(time.Now().Unix())
		}
	}
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitSubmit, rateBurstSubmit),
		World:   world,
		Ledger:  l,
		Clock:   clock,
	}
}

// Submit - verify, use the nonce and run a signed request
func (s *Ledger) Submit(arguments *request.Envelope, reply *SubmitReply) error {

	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	r, err := arguments.Open()
	if nil != err {
		return err
	}

	h, ok := handlers[r.Method]
	if !ok {
		return fault.ErrUnknownMethod
	}

	ctx := context.Background()
	err = s.World.Apply(ctx, func(ctx context.Context) error {
		return s.World.UseRequestNonce(ctx, r.From, r.Nonce)
	})
	if nil != err {
		return err
	}

	reply.Method = r.Method
	reply.Nonce = r.Nonce

	in := invocation{
		request: r,
		call: chain.Call{
			Sender: r.From,
			Value:  r.Value,
			Time:   s.Clock(),
		},
	}
	err = h(s, ctx, in, reply)
	if nil != err {
		s.Log.Warnf("submit: %s  from: %s  nonce: %d  error: %s", r.Method, r.From.Hex(), r.Nonce, err)
		return err
	}

	s.Log.Infof("submit: %s  from: %s  nonce: %d", r.Method, r.From.Hex(), r.Nonce)
	return nil
}
