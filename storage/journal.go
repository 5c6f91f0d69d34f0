// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/irrcore/registryd/fault"
)

// SourceStatus - journal bounds of one source
func (s *Store) SourceStatus(source string) (StatusRecord, error) {
	data := Pool.Status.Get(statusKey(source))
	if nil == data {
		return StatusRecord{}, fault.ErrUnknownSource
	}
	return decodeStatus(data)
}

// JournalRange - committed or flushed journal entries of one source
//
// from and to are inclusive serials; zero for from means the oldest
// available serial, zero for to means the newest
func (s *Store) JournalRange(source string, from uint64, to uint64) ([]JournalEntry, error) {

	status, err := s.SourceStatus(source)
	if nil != err {
		return nil, err
	}

	if 0 == from || from < status.OldestSerial {
		from = status.OldestSerial
	}
	if 0 == to || to > status.NewestSerial {
		to = status.NewestSerial
	}

	entries := []JournalEntry(nil)
	for serial := from; serial <= to; serial += 1 {
		data := Pool.Journal.Get(journalKey(source, serial))
		if nil == data {
			return nil, fault.ErrSerialNotFound
		}
		entry, err := decodeJournalEntry(data)
		if nil != err {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PruneJournal - drop journal entries below a serial
//
// the caller wraps this in Begin/Commit like any other write; the
// status record keeps its newest serial so numbering never restarts
func (s *Store) PruneJournal(source string, oldestToKeep uint64) (int, error) {
	s.Lock()
	defer s.Unlock()

	status, err := s.SourceStatus(source)
	if nil != err {
		return 0, err
	}

	if oldestToKeep <= status.OldestSerial {
		return 0, nil
	}

	// the newest entry always survives
	if oldestToKeep > status.NewestSerial {
		oldestToKeep = status.NewestSerial
	}

	removed := 0
	for serial := status.OldestSerial; serial < oldestToKeep; serial += 1 {
		Pool.Journal.Delete(journalKey(source, serial))
		removed += 1
	}

	status.OldestSerial = oldestToKeep
	status.Updated = time.Now().UTC()
	Pool.Status.Put(statusKey(source), encodeStatus(status))

	return removed, nil
}
