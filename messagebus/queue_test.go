// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/disperse/messagebus"
)

var items = []messagebus.Message{
	{
		Command:    "c1",
		Parameters: [][]byte{{1}},
	},
	{
		Command:    "c2",
		Parameters: [][]byte{{2}, {3}},
	},
	{
		Command:    "c3",
		Parameters: nil,
	},
}

func TestQueue(t *testing.T) {
	for _, item := range items {
		messagebus.Bus.TestQueue.Send(item.Command, item.Parameters...)
	}

	queue := messagebus.Bus.TestQueue.Chan()
	for _, item := range items {
		received := <-queue
		assert.Equal(t, item.Command, received.Command, "wrong command")
		assert.Equal(t, len(item.Parameters), len(received.Parameters), "wrong parameter count")
	}
}

func TestBroadcast(t *testing.T) {
	b := &messagebus.BroadcastQueue{}

	// nothing listening so these messages are lost
	for _, item := range items {
		b.Send("ignored:" + item.Command)
	}

	const listeners = 5

	var counts [listeners]int
	var wg sync.WaitGroup

	channels := make([]<-chan messagebus.Message, listeners)
	for i := 0; i < listeners; i += 1 {
		channels[i] = b.Chan(len(items))
	}

	for _, item := range items {
		b.Send(item.Command, item.Parameters...)
	}

	for i := 0; i < listeners; i += 1 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for _, item := range items {
				received := <-channels[n]
				if received.Command != item.Command {
					t.Errorf("actual: %q  expected: %q", received.Command, item.Command)
				} else {
					counts[n] += 1
				}
			}
		}(i)
	}

	wg.Wait()
	for i, n := range counts {
		assert.Equal(t, len(items), n, "listener[%d] wrong count", i)
	}
	assert.Equal(t, uint64(0), b.Dropped(), "messages dropped")
}

func TestBroadcastSlowListener(t *testing.T) {
	b := &messagebus.BroadcastQueue{}

	slow := b.Chan(1)
	fast := b.Chan(10)

	for _, item := range items {
		b.Send(item.Command)
	}

	assert.Equal(t, 1, len(slow), "slow listener buffer")
	assert.Equal(t, len(items), len(fast), "fast listener buffer")
	assert.Equal(t, uint64(len(items)-1), b.Dropped(), "wrong dropped count")

	b.Drop(slow)
	_, ok := <-slow
	assert.True(t, ok, "buffered message lost on drop")
	_, ok = <-slow
	assert.False(t, ok, "dropped listener not closed")

	b.Release()
	for range fast {
	}
	b.Send("after release")
	assert.Equal(t, uint64(len(items)-1), b.Dropped(), "send after release counted")
}
