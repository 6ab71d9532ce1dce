// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Ledger  ledger.Reader
	State   chain.State
	Dropped func() uint64
	counter *counter.Counter
}

func New(log *logger.L, chainName string, start time.Time, version string, counter *counter.Counter, l ledger.Reader, state chain.State, dropped func() uint64) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chainName,
		Ledger:  l,
		State:   state,
		Dropped: dropped,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain         string      `json:"chain"`
	Version       string      `json:"version"`
	Uptime        string      `json:"uptime"`
	RPCs          uint64      `json:"rpcs"`
	Ledger        string      `json:"ledger"`
	Owner         string      `json:"owner"`
	Initialised   bool        `json:"initialised"`
	NextPoolId    uint64      `json:"nextPoolId,string"`
	LastEvent     uint64      `json:"lastEvent,string"`
	Assets        []AssetInfo `json:"assets"`
	DroppedEvents uint64      `json:"droppedEvents"`
}

// AssetInfo - one registered asset
type AssetInfo struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
	Fee      uint64 `json:"feeBasisPoints"`
	Permit   bool   `json:"permit"`
	Hooks    bool   `json:"hooks"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	ctx := context.Background()
	owner, err := node.Ledger.Owner(ctx)
	if nil != err {
		return err
	}
	next, err := node.Ledger.NextPoolId(ctx)
	if nil != err {
		return err
	}
	last, err := node.Ledger.LastEvent(ctx)
	if nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Ledger = node.Ledger.Address().Hex()
	reply.Owner = owner.Hex()
	reply.Initialised = chain.Native != owner
	reply.NextPoolId = next
	reply.LastEvent = last

	reply.Assets = []AssetInfo{}
	for _, a := range node.State.Assets() {
		reply.Assets = append(reply.Assets, AssetInfo{
			Address:  a.Address.Hex(),
			Symbol:   a.Symbol,
			Decimals: a.Decimals,
			Fee:      a.FeeBasisPoints,
			Permit:   a.Permit,
			Hooks:    a.Hooks,
		})
	}

	if nil != node.Dropped {
		reply.DroppedEvents = node.Dropped()
	}
	return nil
}
