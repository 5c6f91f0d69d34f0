// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/irrcore/registryd/fault"
	"github.com/irrcore/registryd/storage"
	"github.com/irrcore/registryd/updates"
)

// hard cap on a single submission
const maximumSubmissionBytes = 1 << 20

// the argument passed to the callback
//
// one instance is shared by every connection; submitLock serialises
// the store transaction across connections
type serverArgument struct {
	log     *logger.L
	store   *storage.Store
	handler *updates.Handler
	limiter *rate.Limiter

	submitLock sync.Mutex
}

// Callback - handle one submission connection
func Callback(conn io.ReadWriteCloser, argument interface{}) {
	defer conn.Close()

	serverArgument := argument.(*serverArgument)
	if nil == serverArgument {
		logger.Panic("invalid server argument")
	}

	log := serverArgument.log
	log.Info("starting…")

	if err := rateLimit(serverArgument.limiter); nil != err {
		fmt.Fprintf(conn, "ERROR: %s\n", err)
		return
	}

	dryRun, text, err := readSubmission(conn)
	if nil != err {
		log.Errorf("read error: %s", err)
		fmt.Fprintf(conn, "ERROR: %s\n", err)
		return
	}

	serverArgument.submitLock.Lock()
	defer serverArgument.submitLock.Unlock()

	store := serverArgument.store

	err = store.Begin()
	if nil != err {
		log.Errorf("begin error: %s", err)
		fmt.Fprintf(conn, "ERROR: %s\n", err)
		return
	}

	result, err := serverArgument.handler.ProcessText(text)
	if nil != err {
		store.Rollback()
		log.Errorf("process error: %s", err)
		fmt.Fprintf(conn, "ERROR: %s\n", err)
		return
	}

	if dryRun {
		log.Info("dry-run: rolling back")
		store.Rollback()
	} else {
		err = store.Commit()
		if nil != err {
			log.Criticalf("commit error: %s", err)
			store.Rollback()
			fmt.Fprintf(conn, "ERROR: %s\n", err)
			return
		}
	}

	_, err = io.WriteString(conn, result.Report)
	if nil != err {
		log.Errorf("report write error: %s", err)
	}

	log.Info("finished")
}

// block until the limiter grants a slot
func rateLimit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// read lines up to the "." terminator or EOF
//
// a "dry-run" first line requests validation without commit
func readSubmission(conn io.Reader) (bool, string, error) {

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maximumSubmissionBytes)

	dryRun := false
	first := true
	total := 0
	buffer := strings.Builder{}

loop:
	for scanner.Scan() {
		line := scanner.Text()

		if first {
			first = false
			if "dry-run" == strings.TrimSpace(line) {
				dryRun = true
				continue loop
			}
		}

		if "." == strings.TrimSpace(line) {
			break loop
		}

		total += len(line) + 1
		if total > maximumSubmissionBytes {
			return false, "", fault.ErrSubmissionTooLarge
		}

		buffer.WriteString(line)
		buffer.WriteByte('\n')
	}
	if err := scanner.Err(); nil != err {
		return false, "", err
	}

	return dryRun, buffer.String(), nil
}
