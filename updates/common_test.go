// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package updates_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/storage"
	"github.com/irrcore/registryd/updates"
)

const (
	databaseFileName = "test"
	logDirectory     = "testing"
)

// objects forming the usual bootstrap cycle: the maintainer is kept
// by itself and administered by the person it maintains
const mntnerText = `
mntner:         TEST-MNT
admin-c:        PERSON-TEST
upd-to:         unread@example.net
mnt-nfy:        notify-mnt@example.net
auth:           PGPKey-80F238C6
mnt-by:         TEST-MNT
changed:        2016-10-05T10:41:15Z
source:         TEST
`

const personText = `
person:         Placeholder Person Object
address:        The Netherlands
phone:          +31 20 000 0000
nic-hdl:        PERSON-TEST
mnt-by:         TEST-MNT
e-mail:         email@example.com
notify:         notify@example.com
changed:        2009-07-24T17:00:00Z
source:         TEST
`

func removeFiles() {
	os.RemoveAll(databaseFileName + "-data.leveldb")
	os.RemoveAll(logDirectory)
}

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

func teardown(t *testing.T) {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

func newTestStore(t *testing.T) *storage.Store {
	store, err := storage.NewStore(storage.Config{
		FlushThreshold: 10,
		KeepJournal:    true,
	})
	if nil != err {
		t.Fatalf("store create error: %s", err)
	}
	return store
}

// process one submission and commit it
func commitSubmission(t *testing.T, store *storage.Store, handler *updates.Handler, text string) *updates.Result {
	err := store.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	result, err := handler.ProcessText(text)
	if nil != err {
		store.Rollback()
		t.Fatalf("process error: %s", err)
	}
	err = store.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return result
}

// store with the bootstrap cycle already committed
func bootstrap(t *testing.T) (*storage.Store, *updates.Handler) {
	store := newTestStore(t)
	handler := updates.NewHandler(store, updates.AllowAll{})
	result := commitSubmission(t, store, handler, mntnerText+personText)
	for _, candidate := range result.Candidates {
		if updates.Valid != candidate.Status() {
			t.Fatalf("bootstrap candidate failed: %v", candidate.Errors())
		}
	}
	return store, handler
}
