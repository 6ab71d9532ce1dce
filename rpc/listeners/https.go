// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/logger"
)

const (
	httpsLogName     = "http_rpc"
	readWriteTimeout = 10 * time.Second
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex

	log             *logger.L
	count           counter.Counter
	maxConnections  uint64
	listenIPAndPort []string
	tlsConfig       *tls.Config
	handler         http.Handler
	servers         []*http.Server
}

// NewHTTPS - serve handler over TLS, returns nil when no listen
// address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	handler http.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	listen, err := canonicalAddresses(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	cfg := tlsConfig.Clone()
	cfg.NextProtos = []string{"http/1.1"}

	return &httpsListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: listen,
		tlsConfig:       cfg,
		handler:         handler,
	}, nil
}

func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for _, listen := range h.listenIPAndPort {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)

		l, err := net.Listen("tcp", listen)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			h.closeAll()
			return err
		}
		limited := &limitedListener{
			Listener: l,
			log:      h.log,
			count:    &h.count,
			limit:    h.maxConnections,
		}

		s := &http.Server{
			Handler:        h.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)

		go func(listen string) {
			err := s.Serve(tls.NewListener(limited, h.tlsConfig))
			if !errors.Is(err, http.ErrServerClosed) {
				h.log.Errorf("%s on: %q stopped: %s", httpsLogName, listen, err)
			}
		}(listen)
	}
	return nil
}

// Close - stop all servers and drop their connections
func (h *httpsListener) Close() error {
	h.Lock()
	defer h.Unlock()
	h.closeAll()
	return nil
}

func (h *httpsListener) closeAll() {
	for _, s := range h.servers {
		_ = s.Close()
	}
	h.servers = nil
}
