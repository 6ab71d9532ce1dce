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
	"github.com/bitmark-inc/disperse/storage"
	"github.com/bitmark-inc/logger"
)

// key in the ledger pool of the last allocated id
var countKey = []byte("pool-count")

// Registry - access to stored pools and claims
type Registry struct {
	log *logger.L
}

// Stored - a pool with its id
type Stored struct {
	Id   uint64 `json:"id"`
	Pool *Pool  `json:"pool"`
}

// NewRegistry - create a registry
func NewRegistry() *Registry {
	return &Registry{
		log: logger.New("registry"),
	}
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// claimer ++ id
func claimKey(claimer common.Address, id uint64) []byte {
	key := make([]byte, 0, common.AddressLength+8)
	key = append(key, claimer[:]...)
	return binary.BigEndian.AppendUint64(key, id)
}

// NextId - the id the next pool will receive
func (r *Registry) NextId() uint64 {
	n, _ := storage.Pool.Ledger.GetN(countKey)
	return n + 1
}

// Allocate - reserve the next id
func (r *Registry) Allocate(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.Ledger, countKey)
	n += 1
	trx.PutN(storage.Pool.Ledger, countKey, n)
	return n
}

// Get - read a pool, an unused id gives a pool with status None
func (r *Registry) Get(id uint64) (*Pool, error) {
	packed := storage.Pool.Pools.Get(idKey(id))
	if nil == packed {
		return none(), nil
	}
	p, err := Packed(packed).Unpack()
	if nil != err {
		r.log.Errorf("pool: %d  unpack error: %s", id, err)
		return nil, err
	}
	return p, nil
}

// Put - store a pool
func (r *Registry) Put(trx storage.Transaction, id uint64, p *Pool) error {
	if 0 == id || None == p.Status {
		return fault.ErrPoolNotFound
	}
	trx.Put(storage.Pool.Pools, idKey(id), p.Pack())
	return nil
}

// Claimed - amount paid to claimer from a pool, zero if unpaid
func (r *Registry) Claimed(claimer common.Address, id uint64) *uint256.Int {
	data := storage.Pool.Claims.Get(claimKey(claimer, id))
	if nil == data {
		return amount.Zero()
	}
	v, err := amount.Unpack(data)
	if nil != err {
		r.log.Errorf("claim: %s  pool: %d  unpack error: %s", claimer.Hex(), id, err)
		return amount.Zero()
	}
	return v
}

// MarkClaimed - record a payment, a record is never changed once written
func (r *Registry) MarkClaimed(trx storage.Transaction, claimer common.Address, id uint64, value *uint256.Int) error {
	if value.IsZero() {
		return fault.ErrZeroAmount
	}
	key := claimKey(claimer, id)
	if trx.Has(storage.Pool.Claims, key) {
		return fault.ErrAlreadyClaimed
	}
	trx.Put(storage.Pool.Claims, key, amount.Pack(value))
	return nil
}

// Scan - read up to count committed pools starting at id start
func (r *Registry) Scan(start uint64, count int) ([]Stored, error) {
	cursor := storage.Pool.Pools.NewFetchCursor().Seek(idKey(start))
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	result := make([]Stored, 0, len(elements))
	for _, e := range elements {
		p, err := Packed(e.Value).Unpack()
		if nil != err {
			return nil, err
		}
		result = append(result, Stored{
			Id:   binary.BigEndian.Uint64(e.Key),
			Pool: p,
		})
	}
	return result, nil
}
