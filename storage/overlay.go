// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// operations recorded in the overlay
const (
	overlayPut = iota
	overlayDelete
)

// overlay entry
type overlayData struct {
	op    int
	value []byte
}

// Overlay - read view of a batch that has not reached the database yet
//
// LevelDB batches are write-only, so every batched operation is
// mirrored here to keep flushed data readable before commit; deletes
// become tombstones that hide the database row
type Overlay interface {
	Get(string) ([]byte, int, bool)
	Set(int, string, []byte)
	Items() map[string]overlayData
	Clear()
}

type dbOverlay struct {
	cache *cache.Cache
}

// entries live exactly as long as the enclosing transaction, never
// expire them by time
func newOverlay() Overlay {
	return &dbOverlay{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (o *dbOverlay) Get(key string) ([]byte, int, bool) {
	obj, found := o.cache.Get(key)
	if !found {
		return nil, overlayPut, false
	}

	data := obj.(overlayData)
	return data.value, data.op, true
}

func (o *dbOverlay) Set(op int, key string, value []byte) {
	o.cache.Set(key, overlayData{
		op:    op,
		value: value,
	}, cache.NoExpiration)
}

func (o *dbOverlay) Items() map[string]overlayData {
	items := o.cache.Items()
	result := make(map[string]overlayData, len(items))
	for key, item := range items {
		result[key] = item.Object.(overlayData)
	}
	return result
}

func (o *dbOverlay) Clear() {
	o.cache.Flush()
}
