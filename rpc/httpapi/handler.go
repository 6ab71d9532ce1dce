// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package httpapi - REST style access to the RPC services
//
//   POST /v1/rpc                                  JSON RPC request
//   GET  /v1/info                                 Node.Info
//   GET  /v1/pools?start=<id>&count=<n>           Pools.List
//   GET  /v1/pools/{id}                           Pools.Get
//   GET  /v1/pools/{id}/claimed/{account}         Pools.Claimed
//   GET  /v1/events?start=<seq>&count=<n>         Events.List
//   GET  /v1/events/stream                        websocket of new events
//   GET  /v1/balances/{asset}/{account}           Balances.Get
//
// asset "native" is the zero address
package httpapi

import (
	"net"
	"net/http"
	"net/rpc"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/messagebus"
	"github.com/bitmark-inc/disperse/rpc/balances"
	"github.com/bitmark-inc/disperse/rpc/events"
	"github.com/bitmark-inc/disperse/rpc/node"
	"github.com/bitmark-inc/disperse/rpc/pools"
	"github.com/bitmark-inc/logger"
)

// defaults
const (
	defaultCount = 10
	nativeName   = "native"
)

// Services - the RPC objects behind the routes
type Services struct {
	Node     *node.Node
	Pools    *pools.Pools
	Events   *events.Events
	Balances *balances.Balances
}

// the argument passed to the handlers
type httpHandler struct {
	log      *logger.L
	server   *rpc.Server
	services Services
	bus      *messagebus.BroadcastQueue
	allow    map[string][]*net.IPNet
}

// New - routes for all services
//
// allow maps a route group (rpc, info, pools, events, stream,
// balances) to the CIDRs that may use it, a group not in allow is open
func New(log *logger.L, server *rpc.Server, services Services, bus *messagebus.BroadcastQueue, allow map[string][]string) (http.Handler, error) {

	// create access control and format strings to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for group, addresses := range allow {
		set := make([]*net.IPNet, len(addresses))
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.TrimSpace(ip))
			if nil != err {
				log.Errorf("allow: %s  invalid CIDR: %q", group, ip)
				return nil, fault.ErrInvalidIPAddress
			}
			set[i] = cidr
		}
		local[group] = set
	}

	h := &httpHandler{
		log:      log,
		server:   server,
		services: services,
		bus:      bus,
		allow:    local,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		sendNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		sendMethodNotAllowed(w)
	})

	r.Route("/v1", func(r chi.Router) {
		r.With(h.restrict("rpc")).Post("/rpc", h.rpc)
		r.With(h.restrict("info")).Get("/info", h.info)
		r.Route("/pools", func(r chi.Router) {
			r.Use(h.restrict("pools"))
			r.Get("/", h.poolList)
			r.Get("/{id}", h.pool)
			r.Get("/{id}/claimed/{account}", h.claimed)
		})
		r.With(h.restrict("events")).Get("/events", h.eventList)
		r.With(h.restrict("stream")).Get("/events/stream", h.stream)
		r.With(h.restrict("balances")).Get("/balances/{asset}/{account}", h.balance)
	})

	return r, nil
}

// middleware to deny remote addresses outside a group's CIDRs
func (h *httpHandler) restrict(group string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		set, ok := h.allow[group]
		if !ok {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if nil == err {
				if ip := net.ParseIP(host); nil != ip {
					for _, cidr := range set {
						if cidr.Contains(ip) {
							next.ServeHTTP(w, r)
							return
						}
					}
				}
			}
			h.log.Warnf("deny access: %q  to: %s", r.RemoteAddr, group)
			sendForbidden(w)
		})
	}
}

func (h *httpHandler) info(w http.ResponseWriter, _ *http.Request) {
	var reply node.InfoReply
	err := h.services.Node.Info(&node.InfoArguments{}, &reply)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, reply)
}

func (h *httpHandler) poolList(w http.ResponseWriter, r *http.Request) {
	start, count, err := startAndCount(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	var reply pools.ListReply
	err = h.services.Pools.List(&pools.ListArguments{Start: start, Count: count}, &reply)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, reply)
}

func (h *httpHandler) pool(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if nil != err {
		sendFault(w, fault.ErrPoolNotFound)
		return
	}
	var reply pools.GetReply
	err = h.services.Pools.Get(&pools.GetArguments{Id: id}, &reply)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, reply)
}

func (h *httpHandler) claimed(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if nil != err {
		sendFault(w, fault.ErrPoolNotFound)
		return
	}
	account, err := parseAddress(chi.URLParam(r, "account"))
	if nil != err {
		sendFault(w, err)
		return
	}
	var reply pools.ClaimedReply
	err = h.services.Pools.Claimed(&pools.ClaimedArguments{Id: id, Claimer: account}, &reply)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, reply)
}

func (h *httpHandler) eventList(w http.ResponseWriter, r *http.Request) {
	start, count, err := startAndCount(r)
	if nil != err {
		sendFault(w, err)
		return
	}
	var reply events.ListReply
	err = h.services.Events.List(&events.ListArguments{Start: start, Count: count}, &reply)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, reply)
}

func (h *httpHandler) balance(w http.ResponseWriter, r *http.Request) {
	asset := chain.Native
	if name := chi.URLParam(r, "asset"); nativeName != name {
		a, err := parseAddress(name)
		if nil != err {
			sendFault(w, err)
			return
		}
		asset = a
	}
	account, err := parseAddress(chi.URLParam(r, "account"))
	if nil != err {
		sendFault(w, err)
		return
	}
	var reply balances.GetReply
	err = h.services.Balances.Get(&balances.GetArguments{Asset: asset, Account: account}, &reply)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, reply)
}

// query parameters:
//   start=<uint64>   [default: 0, the first record]
//   count=<int>      [default: 10]
func startAndCount(r *http.Request) (uint64, int, error) {
	q := r.URL.Query()

	start := uint64(0)
	if s := q.Get("start"); "" != s {
		n, err := strconv.ParseUint(s, 10, 64)
		if nil != err {
			return 0, 0, fault.ErrInvalidCursor
		}
		start = n
	}

	count := defaultCount
	if s := q.Get("count"); "" != s {
		n, err := strconv.Atoi(s)
		if nil != err {
			return 0, 0, fault.ErrInvalidCount
		}
		count = n
	}
	return start, count, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fault.ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}
