// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bitmark-inc/disperse/ledger"
)

const (
	streamBufferSize = 100
	writeTimeout     = 10 * time.Second
	pingInterval     = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// push each committed event as a JSON text message
//
// a client that falls behind loses events, it can fill the gap
// from /v1/events using the sequence numbers
func (h *httpHandler) stream(w http.ResponseWriter, r *http.Request) {
	// listen before the upgrade completes so the client sees every
	// event committed after its dial returns
	queue := h.bus.Chan(streamBufferSize)
	defer h.bus.Drop(queue)

	conn, err := upgrader.Upgrade(w, r, nil)
	if nil != err {
		h.log.Warnf("stream upgrade error: %s", err)
		return
	}
	defer conn.Close()

	h.log.Infof("stream open: %s", r.RemoteAddr)

	// anything read from the client is discarded, a read error ends
	// the stream
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); nil != err {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			h.log.Infof("stream closed: %s", r.RemoteAddr)
			return

		case <-ping.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			if nil != err {
				return
			}

		case item, ok := <-queue:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"), time.Now().Add(writeTimeout))
				return
			}
			if ledger.EventCommand != item.Command || 1 != len(item.Parameters) {
				continue
			}
			e, err := ledger.UnpackEvent(item.Parameters[0])
			if nil != err {
				h.log.Errorf("stream: bad event: %s", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err = conn.WriteJSON(e)
			if nil != err {
				h.log.Warnf("stream write error: %s", err)
				return
			}
		}
	}
}
