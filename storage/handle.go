// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/logger"
)

// PoolHandle - one prefixed table of the database
type PoolHandle struct {
	prefix byte
	access Access
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - stage a key/value pair in the open transaction
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Put nil access")
		return
	}
	p.access.Put(p.prefixKey(key), value)
}

// Delete - stage removal of a key in the open transaction
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	p.access.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// sees staged transaction data before committed data; nil if the key
// is absent
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return nil
	}
	value, found, err := p.access.Get(p.prefixKey(key))
	logger.PanicIfError("pool.Get", err)
	if !found {
		return nil
	}
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return false
	}
	value, err := p.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}

// Scan - visit every element whose key starts with keyPrefix
//
// the pool prefix byte is stripped from the keys handed to fn
func (p *PoolHandle) Scan(keyPrefix []byte, fn func(key []byte, value []byte) bool) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return nil
	}
	return p.access.Scan(p.prefixKey(keyPrefix), func(key []byte, value []byte) bool {
		return fn(key[1:], value)
	})
}
