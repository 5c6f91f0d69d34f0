// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irrcore/registryd/storage"
)

func TestPoolBasics(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData
	key := []byte("key-one")

	assert.False(t, pool.Has(key), "phantom key")
	assert.Nil(t, pool.Get(key), "phantom value")

	pool.Put(key, []byte("data-one"))
	assert.True(t, pool.Has(key), "missing key")
	assert.Equal(t, []byte("data-one"), pool.Get(key), "wrong value")

	pool.Delete(key)
	assert.False(t, pool.Has(key), "deleted key still present")
	assert.Nil(t, pool.Get(key), "deleted value still present")
}

// staged changes must shadow committed rows during a scan
func TestPoolScanMergesTransaction(t *testing.T) {
	setup(t)
	defer teardown(t)

	pool := storage.Pool.TestData

	store, err := storage.NewStore(storage.Config{FlushThreshold: 10})
	assert.Nil(t, err, "store create error")
	assert.Nil(t, store.Begin(), "begin error")

	pool.Put([]byte("scan-one"), []byte("one"))
	pool.Put([]byte("scan-two"), []byte("two"))
	pool.Put([]byte("scan-three"), []byte("three"))
	assert.Nil(t, store.Commit(), "commit error")

	assert.Nil(t, store.Begin(), "begin error")
	pool.Put([]byte("scan-two"), []byte("two(NEW)"))
	pool.Delete([]byte("scan-three"))
	pool.Put([]byte("scan-four"), []byte("four"))

	found := map[string]string{}
	err = pool.Scan([]byte("scan-"), func(key []byte, value []byte) bool {
		found[string(key)] = string(value)
		return true
	})
	assert.Nil(t, err, "scan error")

	assert.Equal(t, map[string]string{
		"scan-one":  "one",
		"scan-two":  "two(NEW)",
		"scan-four": "four",
	}, found, "wrong scan result")

	store.Rollback()

	// rolled back, the committed view is back
	found = map[string]string{}
	err = pool.Scan([]byte("scan-"), func(key []byte, value []byte) bool {
		found[string(key)] = string(value)
		return true
	})
	assert.Nil(t, err, "scan error")

	assert.Equal(t, map[string]string{
		"scan-one":   "one",
		"scan-two":   "two",
		"scan-three": "three",
	}, found, "wrong scan result")
}
