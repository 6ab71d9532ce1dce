// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/disperse/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - staged writes to all pools, applied atomically on Commit
type Transaction interface {
	Abort()
	Begin() error
	Commit() error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	RevertToSnapshot(int)
	Snapshot() int
}

// previous overlay state of a key, to undo a write
type journalEntry struct {
	key     string
	prev    cacheData
	existed bool
}

type transaction struct {
	sync.Mutex
	inUse   bool
	db      *leveldb.DB
	cache   Cache
	journal []journalEntry
}

func newTransaction(db *leveldb.DB, cache Cache) *transaction {
	return &transaction{
		inUse: false,
		db:    db,
		cache: cache,
	}
}

func (t *transaction) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionAlreadyInUse
	}

	t.inUse = true
	return nil
}

func (t *transaction) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.stage(dbPut, p.prefixKey(key), value)
}

func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.stage(dbPut, p.prefixKey(key), buffer)
}

func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.stage(dbDelete, p.prefixKey(key), nil)
}

func (t *transaction) stage(op dbOperation, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		logger.Panicf("storage: write to key: %x outside of transaction", key)
	}

	k := string(key)
	prev, existed := t.cache.Get(k)
	t.journal = append(t.journal, journalEntry{
		key:     k,
		prev:    prev,
		existed: existed,
	})

	stored := make([]byte, len(value))
	copy(stored, value)
	t.cache.Set(op, k, stored)
}

// Get - read a value, pending writes take precedence over the database
//
// returns nil if not found
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	prefixed := p.prefixKey(key)

	if data, found := t.cache.Get(string(prefixed)); found {
		if dbDelete == data.op {
			return nil
		}
		return data.value
	}

	value, err := t.db.Get(prefixed, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("storage.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("storage.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	return nil != t.Get(p, key)
}

// Snapshot - mark the current state of pending writes
func (t *transaction) Snapshot() int {
	t.Lock()
	defer t.Unlock()
	return len(t.journal)
}

// RevertToSnapshot - undo all writes made after the snapshot was taken
func (t *transaction) RevertToSnapshot(id int) {
	t.Lock()
	defer t.Unlock()

	if id < 0 || id > len(t.journal) {
		logger.Panicf("storage: invalid snapshot: %d  journal length: %d", id, len(t.journal))
	}

	for i := len(t.journal) - 1; i >= id; i -= 1 {
		entry := t.journal[i]
		if entry.existed {
			t.cache.Set(entry.prev.op, entry.key, entry.prev.value)
		} else {
			t.cache.Unset(entry.key)
		}
	}
	t.journal = t.journal[:id]
}

// Commit - write all pending changes as a single batch
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotInUse
	}

	batch := new(leveldb.Batch)
	for k, data := range t.cache.Items() {
		switch data.op {
		case dbPut:
			batch.Put([]byte(k), data.value)
		case dbDelete:
			batch.Delete([]byte(k))
		}
	}

	err := t.db.Write(batch, nil)
	t.reset()
	return err
}

// Abort - discard all pending changes
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.reset()
}

func (t *transaction) reset() {
	t.cache.Clear()
	t.journal = nil
	t.inUse = false
}
