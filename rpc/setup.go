// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/messagebus"
	"github.com/bitmark-inc/disperse/rpc/certificate"
	"github.com/bitmark-inc/disperse/rpc/httpapi"
	"github.com/bitmark-inc/disperse/rpc/listeners"
	"github.com/bitmark-inc/disperse/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	rpcName   = "client_rpc"
	httpsName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open RPC connections
var connectionCountRPC counter.Counter

// Initialise - start the RPC and HTTPS servers
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	chainName string,
	version string,
	world *chain.World,
	l *ledger.Ledger,
) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	bus := messagebus.Bus.Events
	s, services := server.Create(log, chainName, version, &connectionCountRPC, world, l, bus)

	tlsConfig, fingerprint, err := certificate.Load(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(rpcConfiguration, log, &connectionCountRPC, s, tlsConfig, fingerprint)
	if nil != err {
		return err
	}

	var httpsListener listeners.Listener
	if 0 != len(httpsConfiguration.Listen) {
		httpsTLS, httpsFingerprint, err := certificate.Load(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			return err
		}
		log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, httpsFingerprint)

		handler, err := httpapi.New(log, s, httpapi.Services{
			Node:     services.Node,
			Pools:    services.Pools,
			Events:   services.Events,
			Balances: services.Balances,
		}, bus, httpsConfiguration.Allow)
		if nil != err {
			return err
		}

		httpsListener, err = listeners.NewHTTPS(httpsConfiguration, log, httpsTLS, handler)
		if nil != err {
			return err
		}
	}

	err = rpcListener.Serve()
	if nil != err {
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	if nil != httpsListener {
		err = httpsListener.Serve()
		if nil != err {
			_ = rpcListener.Close()
			globalData.listeners = nil
			return err
		}
		globalData.listeners = append(globalData.listeners, httpsListener)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all servers
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Errorf("close error: %s", err)
		}
	}
	globalData.listeners = nil

	// streams are told to close
	messagebus.Bus.Events.Release()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
