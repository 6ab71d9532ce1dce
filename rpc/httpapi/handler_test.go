// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/disperse/chain"
	chainmocks "github.com/bitmark-inc/disperse/chain/mocks"
	"github.com/bitmark-inc/disperse/counter"
	"github.com/bitmark-inc/disperse/fixtures"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/ledger/mocks"
	"github.com/bitmark-inc/disperse/messagebus"
	"github.com/bitmark-inc/disperse/pool"
	"github.com/bitmark-inc/disperse/rpc/balances"
	"github.com/bitmark-inc/disperse/rpc/events"
	"github.com/bitmark-inc/disperse/rpc/httpapi"
	"github.com/bitmark-inc/disperse/rpc/node"
	"github.com/bitmark-inc/disperse/rpc/pools"
	"github.com/bitmark-inc/logger"
)

type testEnv struct {
	reader  *mocks.MockReader
	state   *chainmocks.MockState
	bus     *messagebus.BroadcastQueue
	handler http.Handler
}

func setup(t *testing.T, ctl *gomock.Controller, allow map[string][]string) *testEnv {
	log := logger.New(fixtures.LogCategory)

	env := &testEnv{
		reader: mocks.NewMockReader(ctl),
		state:  chainmocks.NewMockState(ctl),
		bus:    &messagebus.BroadcastQueue{},
	}

	ctr := counter.Counter(0)
	services := httpapi.Services{
		Node:     node.New(log, "local", time.Now(), "1.0", &ctr, env.reader, env.state, env.bus.Dropped),
		Pools:    pools.New(log, env.reader),
		Events:   events.New(log, env.reader),
		Balances: balances.New(log, env.state),
	}

	server := rpc.NewServer()
	err := server.Register(services.Pools)
	require.Nil(t, err, "register error")

	h, err := httpapi.New(log, server, services, env.bus, allow)
	require.Nil(t, err, "new handler error")
	env.handler = h
	return env
}

func (env *testEnv) do(method string, target string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if "" == body {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, r)
	return w
}

func onePool() *pool.Pool {
	return &pool.Pool{
		Info: pool.Info{
			Name:     "one",
			Start:    100,
			Deadline: 200,
			Entries: []pool.Entry{
				{Claimer: fixtures.Address(0x0a), Amount: uint256.NewInt(10)},
			},
		},
		Status:  pool.Funded,
		Total:   uint256.NewInt(10),
		Funded:  uint256.NewInt(10),
		Claimed: uint256.NewInt(0),
	}
}

func TestPoolRoutes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	env := setup(t, ctl, nil)

	p := onePool()
	env.reader.EXPECT().Pool(gomock.Any(), uint64(1)).Return(p, nil).Times(1)
	env.reader.EXPECT().Pools(gomock.Any(), uint64(1), 2).Return([]pool.Stored{{Id: 1, Pool: p}}, nil).Times(1)
	env.reader.EXPECT().Claimed(gomock.Any(), fixtures.Account1, uint64(1)).Return(uint256.NewInt(10), nil).Times(1)

	w := env.do(http.MethodGet, "/v1/pools/1", "")
	require.Equal(t, http.StatusOK, w.Code, "wrong status")
	var reply pools.GetReply
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	require.Nil(t, err, "unmarshal error")
	assert.Equal(t, uint64(1), reply.Id, "wrong id")
	assert.Equal(t, "one", reply.Pool.Name, "wrong name")
	assert.Equal(t, pool.Funded, reply.Pool.Status, "wrong status")

	w = env.do(http.MethodGet, "/v1/pools?start=1&count=2", "")
	require.Equal(t, http.StatusOK, w.Code, "wrong list status")
	var list pools.ListReply
	err = json.Unmarshal(w.Body.Bytes(), &list)
	require.Nil(t, err, "unmarshal error")
	assert.Equal(t, 1, len(list.Pools), "wrong pool count")
	assert.Equal(t, uint64(2), list.Next, "wrong next")

	w = env.do(http.MethodGet, "/v1/pools/1/claimed/"+fixtures.Account1.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code, "wrong claimed status")
	assert.JSONEq(t, `{"amount":"10"}`, w.Body.String(), "wrong claimed")

	w = env.do(http.MethodGet, "/v1/pools/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "bad id found")

	w = env.do(http.MethodGet, "/v1/pools/1/claimed/nobody", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "bad account accepted")

	w = env.do(http.MethodGet, "/v1/pools?count=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "bad count accepted")
}

func TestBalanceAndInfoRoutes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	env := setup(t, ctl, nil)

	env.state.EXPECT().View(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	env.reader.EXPECT().Owner(gomock.Any()).Return(fixtures.Account1, nil).Times(1)
	env.reader.EXPECT().NextPoolId(gomock.Any()).Return(uint64(1), nil).Times(1)
	env.reader.EXPECT().LastEvent(gomock.Any()).Return(uint64(0), nil).Times(1)
	env.reader.EXPECT().Address().Return(fixtures.Address(0xcc)).Times(1)
	env.state.EXPECT().Assets().Return([]chain.AssetInfo{}).Times(1)

	w := env.do(http.MethodGet, "/v1/balances/native/"+fixtures.Account1.Hex(), "")
	assert.Equal(t, http.StatusOK, w.Code, "wrong balance status")

	w = env.do(http.MethodGet, "/v1/balances/coins/"+fixtures.Account1.Hex(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "bad asset accepted")

	w = env.do(http.MethodGet, "/v1/info", "")
	require.Equal(t, http.StatusOK, w.Code, "wrong info status")
	var info node.InfoReply
	err := json.Unmarshal(w.Body.Bytes(), &info)
	require.Nil(t, err, "unmarshal error")
	assert.Equal(t, fixtures.Account1.Hex(), info.Owner, "wrong owner")

	w = env.do(http.MethodPost, "/v1/info", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "post accepted")

	w = env.do(http.MethodGet, "/v2/info", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown path found")
	assert.JSONEq(t, `{"code":404,"error":"not found"}`, w.Body.String(), "wrong error body")
}

func TestRestrictedRoutes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	env := setup(t, ctl, map[string][]string{
		"info":   {"10.0.0.0/8"},
		"events": {"192.0.2.0/24"},
	})

	env.reader.EXPECT().Events(gomock.Any(), uint64(1), 10).Return([]ledger.Event{}, nil).Times(1)

	// httptest requests come from 192.0.2.1
	w := env.do(http.MethodGet, "/v1/info", "")
	assert.Equal(t, http.StatusForbidden, w.Code, "info allowed")

	w = env.do(http.MethodGet, "/v1/events", "")
	assert.Equal(t, http.StatusOK, w.Code, "events denied")

	_, err := httpapi.New(logger.New(fixtures.LogCategory), rpc.NewServer(), httpapi.Services{}, env.bus, map[string][]string{
		"info": {"10.0.0.1"},
	})
	assert.NotNil(t, err, "CIDR without mask accepted")
}

func TestPostRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	env := setup(t, ctl, nil)
	env.reader.EXPECT().Claimed(gomock.Any(), fixtures.Account2, uint64(3)).Return(uint256.NewInt(4), nil).Times(1)

	body := `{"id":7,"method":"Pools.Claimed","params":[{"id":"3","claimer":"` + fixtures.Account2.Hex() + `"}]}`
	w := env.do(http.MethodPost, "/v1/rpc", body)
	require.Equal(t, http.StatusOK, w.Code, "wrong status")

	var reply struct {
		Id     int                `json:"id"`
		Result pools.ClaimedReply `json:"result"`
		Error  interface{}        `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &reply)
	require.Nil(t, err, "unmarshal error")
	assert.Equal(t, 7, reply.Id, "wrong id")
	assert.Nil(t, reply.Error, "rpc error")
	assert.Equal(t, uint256.NewInt(4), reply.Result.Amount, "wrong amount")

	w = env.do(http.MethodGet, "/v1/rpc", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "get accepted")
}

func TestEventStream(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	env := setup(t, ctl, nil)
	server := httptest.NewServer(env.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/events/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.Nil(t, err, "dial error")
	defer conn.Close()

	e := ledger.Event{
		Sequence: 1,
		Kind:     ledger.Claimed,
		Pool:     2,
		Account:  fixtures.Account1,
		Asset:    chain.Native,
		Amount:   uint256.NewInt(10),
		Time:     5,
	}
	env.bus.Send("other", []byte{1})
	env.bus.Send(ledger.EventCommand, e.Pack())

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got ledger.Event
	err = conn.ReadJSON(&got)
	require.Nil(t, err, "read error")
	assert.Equal(t, e, got, "wrong event")

	env.bus.Release()
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "not closed on release: %v", err)
}
