// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/fixtures"
	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/ledger/mocks"
	"github.com/bitmark-inc/disperse/rpc/events"
	"github.com/bitmark-inc/logger"
)

func TestEventsList(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockReader(ctl)
	e := events.New(logger.New(fixtures.LogCategory), l)

	expected := []ledger.Event{
		{Sequence: 4, Kind: ledger.Created, Pool: 2, Account: fixtures.Account1, Amount: uint256.NewInt(0)},
		{Sequence: 5, Kind: ledger.Funded, Pool: 2, Account: fixtures.Account2, Amount: uint256.NewInt(30)},
	}
	l.EXPECT().Events(gomock.Any(), uint64(4), 2).Return(expected, nil).Times(1)

	var reply events.ListReply
	err := e.List(&events.ListArguments{Start: 4, Count: 2}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, expected, reply.Events, "wrong events")
	assert.Equal(t, uint64(6), reply.Next, "wrong next")
}

func TestEventsListFromStart(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	l := mocks.NewMockReader(ctl)
	e := events.New(logger.New(fixtures.LogCategory), l)

	l.EXPECT().Events(gomock.Any(), uint64(1), 10).Return([]ledger.Event{}, nil).Times(1)

	var reply events.ListReply
	err := e.List(&events.ListArguments{Count: 10}, &reply)
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, uint64(1), reply.Next, "wrong next")

	err = e.List(&events.ListArguments{Count: events.MaximumEventCount + 1}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "count too large")
}
