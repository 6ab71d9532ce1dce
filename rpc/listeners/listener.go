// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS endpoints for the JSON RPC and HTTPS servers
package listeners

import (
	"net"
	"sync"

	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/util"
	"github.com/bitmark-inc/logger"
)

const minConnectionCount = 1

// Listener - a server on one or more addresses
type Listener interface {
	Serve() error
	Close() error
}

// validate all listen addresses
func canonicalAddresses(addresses []string, log *logger.L) ([]string, error) {
	if 0 == len(addresses) {
		return nil, fault.ErrMissingParameters
	}
	result := make([]string, len(addresses))
	for i, listen := range addresses {
		c, err := util.CanonicalIPandPort(listen)
		if nil != err {
			log.Errorf("invalid listen address: %q  error: %s", listen, err)
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

// a listener that drops connections beyond a limit
type limitedListener struct {
	net.Listener
	log   *logger.L
	count *counter.Counter
	limit uint64
}

func (l *limitedListener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if nil != err {
			return nil, err
		}
		if l.count.Acquire(l.limit) {
			return &countedConn{Conn: conn, count: l.count}, nil
		}
		l.log.Warnf("connection limit: %d reached, dropping: %s", l.limit, conn.RemoteAddr())
		_ = conn.Close()
	}
}

// releases its slot on the first close
type countedConn struct {
	net.Conn
	once  sync.Once
	count *counter.Counter
}

func (c *countedConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(c.count.Release)
	return err
}
