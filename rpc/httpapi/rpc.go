// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package httpapi

import (
	"io"
	"net/http"
	"net/rpc/jsonrpc"
)

// maximum size of a posted RPC request
const maximumRequestSize = 1 << 20

// type to allow rpc system to interface to http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *internalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *internalConnection) Close() error {
	return nil
}

// performs a call to any normal RPC, errors are in the JSON RPC reply
func (h *httpHandler) rpc(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maximumRequestSize)
	serverCodec := jsonrpc.NewServerCodec(&internalConnection{in: body, out: w})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("rpc request error: %s", err)
	}
}
