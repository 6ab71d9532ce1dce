// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// internal constants
const (
	queueSize         = 1000
	defaultListenSize = 100
)

// Message - a command and its packed parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - a single consumer queue
type Queue struct {
	c chan Message
}

// BroadcastQueue - copies each message to every current listener
type BroadcastQueue struct {
	sync.Mutex
	listeners []chan Message
	dropped   uint64
}

// Bus - all queues
var Bus = struct {
	Events    *BroadcastQueue // committed ledger events
	TestQueue *Queue
}{
	Events:    &BroadcastQueue{},
	TestQueue: &Queue{c: make(chan Message, queueSize)},
}

// Send - queue a message, blocks when the queue is full
func (q *Queue) Send(command string, parameters ...[]byte) {
	q.c <- Message{
		Command:    command,
		Parameters: parameters,
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.c
}

// Send - deliver a message to every listener that has room for it
func (b *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	b.Lock()
	defer b.Unlock()
	for _, c := range b.listeners {
		select {
		case c <- m:
		default:
			b.dropped += 1
		}
	}
}

// Chan - add a listener, size <= 0 selects a default buffer
func (b *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultListenSize
	}
	c := make(chan Message, size)

	b.Lock()
	b.listeners = append(b.listeners, c)
	b.Unlock()
	return c
}

// Drop - remove one listener and close its channel
func (b *BroadcastQueue) Drop(listener <-chan Message) {
	b.Lock()
	defer b.Unlock()
	for i, c := range b.listeners {
		if (<-chan Message)(c) == listener {
			close(c)
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Release - close every listener
func (b *BroadcastQueue) Release() {
	b.Lock()
	defer b.Unlock()
	for _, c := range b.listeners {
		close(c)
	}
	b.listeners = nil
}

// Dropped - count of messages a slow listener missed
func (b *BroadcastQueue) Dropped() uint64 {
	b.Lock()
	defer b.Unlock()
	return b.dropped
}
