// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/chain"
	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/disperse/storage"
)

// EventCommand - the message bus command for a committed event
const EventCommand = "event"

// key in the ledger pool of the last event sequence
var eventCountKey = []byte("event-count")

// Kind - the type of an event
type Kind uint8

// all event kinds
const (
	Created Kind = iota + 1
	Canceled
	Claimed
	Funded
	Distributed
	Dispersed
)

var kindNames = map[Kind]string{
	Created:     "created",
	Canceled:    "canceled",
	Claimed:     "claimed",
	Funded:      "funded",
	Distributed: "distributed",
	Dispersed:   "disperse",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalJSON - kind as its name
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON - kind from its name
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	err := json.Unmarshal(data, &name)
	if nil != err {
		return err
	}
	for v, n := range kindNames {
		if n == name {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown event kind: %q", name)
}

// Event - an append only notification
//
// Account is the claimer of Claimed, the funder of Funded and the
// caller of the other kinds
type Event struct {
	Sequence uint64         `json:"sequence"`
	Kind     Kind           `json:"kind"`
	Pool     uint64         `json:"pool,omitempty"`
	Account  common.Address `json:"account"`
	Asset    common.Address `json:"asset"`
	Amount   *uint256.Int   `json:"amount"`
	Time     uint64         `json:"time"`
}

// kind ++ sequence ++ pool ++ account ++ asset ++ amount ++ time
const packedEventSize = 1 + 8 + 8 + 2*common.AddressLength + amount.Size + 8

// Pack - binary form of an event
func (e *Event) Pack() []byte {
	buffer := make([]byte, 0, packedEventSize)
	buffer = append(buffer, byte(e.Kind))
	buffer = binary.BigEndian.AppendUint64(buffer, e.Sequence)
	buffer = binary.BigEndian.AppendUint64(buffer, e.Pool)
	buffer = append(buffer, e.Account[:]...)
	buffer = append(buffer, e.Asset[:]...)
	buffer = append(buffer, amount.Pack(e.Amount)...)
	return binary.BigEndian.AppendUint64(buffer, e.Time)
}

// UnpackEvent - convert the binary form back to an event
func UnpackEvent(packed []byte) (*Event, error) {
	if packedEventSize != len(packed) {
		return nil, fault.ErrRecordTruncated
	}

	e := &Event{
		Kind: Kind(packed[0]),
	}
	if _, ok := kindNames[e.Kind]; !ok {
		return nil, fault.ErrRecordTruncated
	}

	n := 1
	e.Sequence = binary.BigEndian.Uint64(packed[n:])
	n += 8
	e.Pool = binary.BigEndian.Uint64(packed[n:])
	n += 8
	copy(e.Account[:], packed[n:])
	n += common.AddressLength
	copy(e.Asset[:], packed[n:])
	n += common.AddressLength
	v, err := amount.Unpack(packed[n:])
	if nil != err {
		return nil, err
	}
	e.Amount = v
	n += amount.Size
	e.Time = binary.BigEndian.Uint64(packed[n:])
	return e, nil
}

// record an event in the current transition, it reaches the sink
// only if the transition commits
func (l *Ledger) emit(ctx context.Context, f *frame, e Event) error {
	trx, err := chain.Transaction(ctx)
	if nil != err {
		return err
	}

	n, _ := trx.GetN(storage.Pool.Ledger, eventCountKey)
	n += 1
	trx.PutN(storage.Pool.Ledger, eventCountKey, n)

	e.Sequence = n
	e.Time = f.call.Time
	if nil == e.Amount {
		e.Amount = amount.Zero()
	}

	packed := e.Pack()
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	trx.Put(storage.Pool.Events, key, packed)

	return chain.AfterCommit(ctx, func() {
		l.log.Infof("event: %d  %s  pool: %d", e.Sequence, e.Kind, e.Pool)
		if nil != l.sink {
			l.sink.Send(EventCommand, packed)
		}
	})
}

// LastEvent - sequence of the last committed event, zero if none
func (l *Ledger) LastEvent(ctx context.Context) (uint64, error) {
	last := uint64(0)
	err := l.world.View(ctx, func(ctx context.Context) error {
		element, found := storage.Pool.Events.LastElement()
		if !found {
			return nil
		}
		if 8 != len(element.Key) {
			return fault.ErrRecordTruncated
		}
		last = binary.BigEndian.Uint64(element.Key)
		return nil
	})
	return last, err
}

// Events - read up to count committed events starting at sequence start
func (l *Ledger) Events(ctx context.Context, start uint64, count int) ([]Event, error) {
	result := []Event{}
	err := l.world.View(ctx, func(ctx context.Context) error {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, start)

		elements, err := storage.Pool.Events.NewFetchCursor().Seek(key).Fetch(count)
		if nil != err {
			return err
		}
		for _, element := range elements {
			e, err := UnpackEvent(element.Value)
			if nil != err {
				return err
			}
			result = append(result, *e)
		}
		return nil
	})
	return result, err
}
