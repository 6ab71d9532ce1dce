// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/messagebus"
	"github.com/bitmark-inc/disperse/rpc/balances"
	"github.com/bitmark-inc/disperse/rpc/events"
	"github.com/bitmark-inc/disperse/rpc/node"
	"github.com/bitmark-inc/disperse/rpc/pools"
	"github.com/bitmark-inc/disperse/rpc/submit"
	"github.com/bitmark-inc/logger"
)

// Services - everything registered with the server
type Services struct {
	Node     *node.Node
	Pools    *pools.Pools
	Events   *events.Events
	Balances *balances.Balances
	Ledger   *submit.Ledger
}

// Create - a server with all services, bus supplies the dropped
// event count
func Create(log *logger.L, chainName string, version string, rpcCount *counter.Counter, world *chain.World, l *ledger.Ledger, bus *messagebus.BroadcastQueue) (*rpc.Server, *Services) {

	start := time.Now().UTC()

	s := &Services{
		Node:     node.New(log, chainName, start, version, rpcCount, l, world, bus.Dropped),
		Pools:    pools.New(log, l),
		Events:   events.New(log, l),
		Balances: balances.New(log, world),
		Ledger:   submit.New(log, world, l, nil),
	}

	server := rpc.NewServer()

	_ = server.Register(s.Node)
	_ = server.Register(s.Pools)
	_ = server.Register(s.Events)
	_ = server.Register(s.Balances)
	_ = server.Register(s.Ledger)

	return server, s
}
