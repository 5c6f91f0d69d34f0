// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/storage"
)

// test database file
const (
	databaseFileName = "test"
	logDirectory     = "testing"
	testSource       = "TEST"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName + "-data.leveldb")
	os.RemoveAll(logDirectory)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      fmt.Sprintf("%s.log", logDirectory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// store with an open transaction
func newTestStore(t *testing.T, flushThreshold int) *storage.Store {
	store, err := storage.NewStore(storage.Config{
		FlushThreshold: flushThreshold,
		KeepJournal:    true,
	})
	if nil != err {
		t.Fatalf("store create error: %s", err)
	}
	err = store.Begin()
	if nil != err {
		t.Fatalf("transaction begin error: %s", err)
	}
	return store
}

// minimal record for a person object
func personRecord(primaryKey string, text string) storage.Record {
	return storage.Record{
		Class:      "person",
		PrimaryKey: primaryKey,
		Source:     testSource,
		Text:       text,
	}
}
