// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of the current transaction, keyed by the
// prefixed database key
type Cache interface {
	Get(string) (cacheData, bool)
	Set(dbOperation, string, []byte)
	Unset(string)
	Items() map[string]cacheData
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		// pending writes must live until commit or abort
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get - the pending operation for a key
//
// a pending delete is returned as found so that the caller does not
// fall through to the database
func (c *dbCache) Get(key string) (cacheData, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return cacheData{}, false
	}
	return obj.(cacheData), true
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

// Unset - forget a pending operation
func (c *dbCache) Unset(key string) {
	c.cache.Delete(key)
}

func (c *dbCache) Items() map[string]cacheData {
	items := c.cache.Items()
	result := make(map[string]cacheData, len(items))
	for k, item := range items {
		result[k] = item.Object.(cacheData)
	}
	return result
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
