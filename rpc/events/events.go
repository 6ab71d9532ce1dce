// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	MaximumEventCount = 100
	rateLimitEvents   = 200
	rateBurstEvents   = 100
)

// Events - type for the RPC
type Events struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  ledger.Reader
}

func New(log *logger.L, l ledger.Reader) *Events {
	return &Events{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitEvents, rateBurstEvents),
		Ledger:  l,
	}
}

// ListArguments - arguments for RPC
type ListArguments struct {
	Start uint64 `json:"start,string"` // first sequence number
	Count int    `json:"count"`
}

// ListReply - result of list events RPC
type ListReply struct {
	Events []ledger.Event `json:"events"`
	Next   uint64         `json:"next,string"`
}

// List - committed events in sequence order
func (e *Events) List(arguments *ListArguments, reply *ListReply) error {

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	if err := ratelimit.LimitN(e.Limiter, arguments.Count, MaximumEventCount); nil != err {
		return err
	}

	start := arguments.Start
	if 0 == start {
		start = 1
	}

	result, err := e.Ledger.Events(context.Background(), start, arguments.Count)
	if nil != err {
		return err
	}

	reply.Events = result
	reply.Next = start
	if n := len(result); n > 0 {
		reply.Next = result[n-1].Sequence + 1
	}
	return nil
}
