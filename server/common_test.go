// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/irrcore/registryd/storage"
	"github.com/irrcore/registryd/updates"
)

const (
	databaseFileName = "test"
	logDirectory     = "testing"
)

const mntnerText = `
mntner:         TEST-MNT
admin-c:        PERSON-TEST
upd-to:         unread@example.net
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

// an argument wired to a fresh store with no rate restriction
func newTestArgument(t *testing.T) *serverArgument {
	store, err := storage.NewStore(storage.Config{
		FlushThreshold: 10,
		KeepJournal:    true,
	})
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	return &serverArgument{
		log:     logger.New("submission"),
		store:   store,
		handler: updates.NewHandler(store, updates.AllowAll{}),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}
