// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/disperse/amount"
	"github.com/bitmark-inc/disperse/fault"
)

// Packed - binary form of a pool record
//
//   status ++ start ++ deadline ++ distributor ++ asset
//   ++ total ++ funded ++ claimed
//   ++ varint(len name) ++ name
//   ++ varint(count) ++ [claimer ++ amount]...
type Packed []byte

const fixedSize = 1 + 8 + 8 + 2*common.AddressLength + 3*amount.Size

// Pack - convert a pool to its binary form
func (p *Pool) Pack() Packed {
	buffer := make([]byte, 0, fixedSize+len(p.Name)+2*binary.MaxVarintLen64+len(p.Entries)*(common.AddressLength+amount.Size))

	buffer = append(buffer, byte(p.Status))
	buffer = binary.BigEndian.AppendUint64(buffer, p.Start)
	buffer = binary.BigEndian.AppendUint64(buffer, p.Deadline)
	buffer = append(buffer, p.Distributor[:]...)
	buffer = append(buffer, p.Asset[:]...)
	buffer = append(buffer, amount.Pack(p.Total)...)
	buffer = append(buffer, amount.Pack(p.Funded)...)
	buffer = append(buffer, amount.Pack(p.Claimed)...)

	buffer = binary.AppendUvarint(buffer, uint64(len(p.Name)))
	buffer = append(buffer, p.Name...)

	buffer = binary.AppendUvarint(buffer, uint64(len(p.Entries)))
	for _, e := range p.Entries {
		buffer = append(buffer, e.Claimer[:]...)
		buffer = append(buffer, amount.Pack(e.Amount)...)
	}
	return buffer
}

// Unpack - convert the binary form back to a pool
func (packed Packed) Unpack() (*Pool, error) {
	if len(packed) < fixedSize {
		return nil, fault.ErrRecordTruncated
	}

	p := &Pool{}
	n := 0

	p.Status = Status(packed[n])
	n += 1
	if p.Status > Closed {
		return nil, fault.ErrRecordTruncated
	}

	p.Start = binary.BigEndian.Uint64(packed[n:])
	n += 8
	p.Deadline = binary.BigEndian.Uint64(packed[n:])
	n += 8

	copy(p.Distributor[:], packed[n:])
	n += common.AddressLength
	copy(p.Asset[:], packed[n:])
	n += common.AddressLength

	amounts := []**uint256.Int{&p.Total, &p.Funded, &p.Claimed}
	for _, a := range amounts {
		v, err := amount.Unpack(packed[n : n+amount.Size])
		if nil != err {
			return nil, err
		}
		*a = v
		n += amount.Size
	}

	nameLength, count := binary.Uvarint(packed[n:])
	if count <= 0 || uint64(len(packed)-n-count) < nameLength {
		return nil, fault.ErrRecordTruncated
	}
	n += count
	p.Name = string(packed[n : n+int(nameLength)])
	n += int(nameLength)

	entries, count := binary.Uvarint(packed[n:])
	if count <= 0 {
		return nil, fault.ErrRecordTruncated
	}
	n += count

	const entrySize = common.AddressLength + amount.Size
	if uint64(len(packed)-n) != entries*entrySize {
		return nil, fault.ErrRecordTruncated
	}

	p.Entries = make([]Entry, entries)
	for i := range p.Entries {
		copy(p.Entries[i].Claimer[:], packed[n:])
		n += common.AddressLength
		v, err := amount.Unpack(packed[n : n+amount.Size])
		if nil != err {
			return nil, err
		}
		p.Entries[i].Amount = v
		n += amount.Size
	}

	return p, nil
}
