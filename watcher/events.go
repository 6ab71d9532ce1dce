// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package watcher

import (
	"sync/atomic"

	"github.com/bitmark-inc/disperse/ledger"
	"github.com/bitmark-inc/disperse/messagebus"
	"github.com/bitmark-inc/logger"
)

const eventQueueSize = 100

// EventLogger - log each committed event
type EventLogger struct {
	log   *logger.L
	bus   *messagebus.BroadcastQueue
	queue <-chan messagebus.Message
	seen  uint64
	last  uint64
}

// NewEventLogger - subscribe to bus immediately so no event
// committed after this call is missed
func NewEventLogger(log *logger.L, bus *messagebus.BroadcastQueue) *EventLogger {
	return &EventLogger{
		log:   log,
		bus:   bus,
		queue: bus.Chan(eventQueueSize),
	}
}

// Seen - number of events received
func (e *EventLogger) Seen() uint64 {
	return atomic.LoadUint64(&e.seen)
}

// Last - sequence of the most recent event
func (e *EventLogger) Last() uint64 {
	return atomic.LoadUint64(&e.last)
}

// Run - background process
func (e *EventLogger) Run(args interface{}, shutdown <-chan struct{}) {

	log := e.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-e.queue:
			if !ok {
				break loop
			}
			e.process(&item)
		}
	}

	e.bus.Drop(e.queue)
	log.Info("stopped")
}

func (e *EventLogger) process(item *messagebus.Message) {
	if ledger.EventCommand != item.Command || 1 != len(item.Parameters) {
		e.log.Warnf("unexpected message: %s", item.Command)
		return
	}

	event, err := ledger.UnpackEvent(item.Parameters[0])
	if nil != err {
		e.log.Errorf("unpack event error: %s", err)
		return
	}

	atomic.AddUint64(&e.seen, 1)
	if event.Sequence > e.Last() {
		atomic.StoreUint64(&e.last, event.Sequence)
	}

	e.log.Infof("event: %d  %s  pool: %d  account: %s  asset: %s  amount: %s",
		event.Sequence, event.Kind, event.Pool, event.Account.Hex(), event.Asset.Hex(), event.Amount)
}
