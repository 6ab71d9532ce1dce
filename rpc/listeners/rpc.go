// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"errors"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/logger"
)

const logName = "client_rpc"

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex

	log             *logger.L
	count           *counter.Counter
	server          *rpc.Server
	maxConnections  uint64
	tlsConfig       *tls.Config
	listenIPAndPort []string
	listeners       []net.Listener
}

// NewRPC - JSON RPC over TLS, count tracks the open connections
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	listen, err := canonicalAddresses(configuration.Listen, log)
	if nil != err {
		log.Errorf("invalid %s listen: %s", logName, err)
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	return &rpcListener{
		log:             log,
		count:           count,
		server:          server,
		maxConnections:  configuration.MaximumConnections,
		tlsConfig:       tlsConfig,
		listenIPAndPort: listen,
	}, nil
}

func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for _, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s", listen)
		l, err := net.Listen("tcp", listen)
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			r.closeAll()
			return err
		}
		limited := &limitedListener{
			Listener: l,
			log:      r.log,
			count:    r.count,
			limit:    r.maxConnections,
		}
		r.listeners = append(r.listeners, limited)
		go r.accept(tls.NewListener(limited, r.tlsConfig))
	}
	return nil
}

func (r *rpcListener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if errors.Is(err, net.ErrClosed) {
			r.log.Info("RPC accept stopped")
			return
		}
		if nil != err {
			r.log.Errorf("rpc.server terminated: accept error: %s", err)
			return
		}
		go r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

// Close - stop accepting, open connections run until their client leaves
func (r *rpcListener) Close() error {
	r.Lock()
	defer r.Unlock()
	r.closeAll()
	return nil
}

func (r *rpcListener) closeAll() {
	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}
