// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/irrcore/registryd/fault"
)

// Access - transactional view over one database
//
// writes accumulate in a batch and its overlay; Commit pushes the
// batch to the database, Abort discards it
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, bool, error)
	Has([]byte) (bool, error)
	InUse() bool
	Put([]byte, []byte)
	Scan([]byte, func(key []byte, value []byte) bool) error
}

type accessData struct {
	sync.Mutex
	inUse   bool
	db      *leveldb.DB
	batch   *leveldb.Batch
	overlay Overlay
}

func newAccess(db *leveldb.DB) Access {
	return &accessData{
		inUse:   false,
		db:      db,
		batch:   new(leveldb.Batch),
		overlay: newOverlay(),
	}
}

func (d *accessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionAlreadyInUse
	}

	d.inUse = true
	return nil
}

func (d *accessData) Put(key []byte, value []byte) {
	d.overlay.Set(overlayPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *accessData) Delete(key []byte) {
	d.overlay.Set(overlayDelete, string(key), nil)
	d.batch.Delete(key)
}

func (d *accessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	if nil != err {
		return err
	}
	d.reset()
	return nil
}

func (d *accessData) Abort() {
	d.Lock()
	d.reset()
	d.Unlock()
}

// caller holds the lock
func (d *accessData) reset() {
	d.batch.Reset()
	d.overlay.Clear()
	d.inUse = false
}

func (d *accessData) Get(key []byte) ([]byte, bool, error) {
	value, op, found := d.overlay.Get(string(key))
	if found {
		if overlayDelete == op {
			return nil, false, nil
		}
		return value, true, nil
	}

	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

func (d *accessData) Has(key []byte) (bool, error) {
	_, op, found := d.overlay.Get(string(key))
	if found {
		return overlayPut == op, nil
	}
	return d.db.Has(key, nil)
}

// Scan - visit every key with the given prefix
//
// merges the database with the overlay: overlaid values replace
// database rows and tombstones hide them; visit order is undefined;
// fn returns false to stop early
func (d *accessData) Scan(prefix []byte, fn func(key []byte, value []byte) bool) error {

	overlaid := map[string]struct{}{}

	for key, data := range d.overlay.Items() {
		if !strings.HasPrefix(key, string(prefix)) {
			continue
		}
		overlaid[key] = struct{}{}
		if overlayPut == data.op {
			if !fn([]byte(key), data.value) {
				return nil
			}
		}
	}

	iter := d.db.NewIterator(ldb_util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		if _, ok := overlaid[string(iter.Key())]; ok {
			continue
		}

		// the iterator owns the returned slices
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		if !fn(key, value) {
			return nil
		}
	}
	return iter.Error()
}

func (d *accessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}
