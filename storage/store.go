// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/fault"
	"github.com/irrcore/registryd/messagebus"
)

// Config - store tuning
type Config struct {
	FlushThreshold int  // pending changes above this count force a flush
	KeepJournal    bool // record every flushed change in the journal
}

// one queued change, not yet flushed
type pendingChange struct {
	op     Operation
	record Record
	serial uint64
	forced bool
}

// a journal entry waiting for commit before being announced
type announcement struct {
	source string
	entry  []byte
}

// Store - batching write path of the object store
//
// changes queue in a pending batch holding at most one change per
// record key; a flush assigns serials and stages the batch in the open
// transaction; nothing reaches the database before Commit
type Store struct {
	sync.Mutex
	log            *logger.L
	flushThreshold int
	keepJournal    bool
	journalOff     map[string]struct{}
	pending        []pendingChange
	pendingKeys    map[string]struct{}
	announcements  []announcement
}

// Referrer - one object referring to a given key
type Referrer struct {
	Class      string
	PrimaryKey string
	Field      string
}

// NewStore - create a store over the initialised pools
func NewStore(cfg Config) (*Store, error) {
	if cfg.FlushThreshold < 1 {
		return nil, fault.ErrInvalidFlushThreshold
	}
	if _, err := transactionAccess(); nil != err {
		return nil, err
	}
	return &Store{
		log:            logger.New("storage"),
		flushThreshold: cfg.FlushThreshold,
		keepJournal:    cfg.KeepJournal,
		journalOff:     map[string]struct{}{},
		pendingKeys:    map[string]struct{}{},
	}, nil
}

func transactionAccess() (Access, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.access {
		return nil, fault.ErrNotInitialised
	}
	return poolData.access, nil
}

// Begin - open the single transaction
//
// only one transaction can be open at a time; everything queued or
// flushed afterwards belongs to it until Commit or Rollback
func (s *Store) Begin() error {
	access, err := transactionAccess()
	if nil != err {
		return err
	}
	return access.Begin()
}

// Upsert - queue a create-or-replace of a record
func (s *Store) Upsert(record Record) error {
	s.Lock()
	defer s.Unlock()
	return s.queue(pendingChange{op: OpAdd, record: record})
}

// UpsertWithSerial - queue a create-or-replace carrying a fixed serial
//
// used when replaying changes from an authoritative journal; the
// serial must be above the newest serial already journaled
func (s *Store) UpsertWithSerial(record Record, serial uint64) error {
	s.Lock()
	defer s.Unlock()
	return s.queue(pendingChange{op: OpAdd, record: record, serial: serial, forced: true})
}

// Delete - queue removal of a record
//
// only class, source and primary key of the record are consulted
func (s *Store) Delete(record Record) error {
	s.Lock()
	defer s.Unlock()
	return s.queue(pendingChange{op: OpDelete, record: record})
}

// DeleteWithSerial - queue a removal carrying a fixed serial
func (s *Store) DeleteWithSerial(record Record, serial uint64) error {
	s.Lock()
	defer s.Unlock()
	return s.queue(pendingChange{op: OpDelete, record: record, serial: serial, forced: true})
}

// caller holds the lock
//
// a key may appear at most once in the pending batch: a duplicate
// flushes the batch before the new change is queued, so later
// changes to the same key land in journal order
func (s *Store) queue(change pendingChange) error {

	key := string(recordKey(change.record.Source, change.record.Class, change.record.PrimaryKey))

	if _, ok := s.pendingKeys[key]; ok {
		err := s.flush()
		if nil != err {
			return err
		}
	}

	s.pending = append(s.pending, change)
	s.pendingKeys[key] = struct{}{}

	if len(s.pending) > s.flushThreshold {
		return s.flush()
	}
	return nil
}

// Flush - stage all pending changes in the open transaction
func (s *Store) Flush() error {
	s.Lock()
	defer s.Unlock()
	return s.flush()
}

// caller holds the lock
func (s *Store) flush() error {

	if len(s.pending) != len(s.pendingKeys) {
		return fault.ErrStoreCorrupted
	}

	now := time.Now().UTC()

	for _, change := range s.pending {

		record := change.record
		key := recordKey(record.Source, record.Class, record.PrimaryKey)

		// clear the reference index of the record being replaced
		if data := Pool.Objects.Get(key); nil != data {
			old, err := decodeRecord(data)
			if nil != err {
				return err
			}
			for _, ref := range old.RefersTo {
				Pool.References.Delete(referenceKey(old.Source, ref.PrimaryKey, old.Class, old.PrimaryKey))
			}
		}

		switch change.op {
		case OpAdd:
			Pool.Objects.Put(key, encodeRecord(record))
			for _, ref := range record.RefersTo {
				Pool.References.Put(referenceKey(record.Source, ref.PrimaryKey, record.Class, record.PrimaryKey), []byte(ref.Field))
			}
		case OpDelete:
			Pool.Objects.Delete(key)
		}

		if !s.journalEnabled(record.Source) {
			continue
		}

		err := s.journalChange(change, now)
		if nil != err {
			return err
		}
	}

	s.log.Debugf("flushed %d changes", len(s.pending))
	s.pending = nil
	s.pendingKeys = map[string]struct{}{}
	return nil
}

// caller holds the lock
func (s *Store) journalChange(change pendingChange, now time.Time) error {

	record := change.record

	status := StatusRecord{}
	if data := Pool.Status.Get(statusKey(record.Source)); nil != data {
		decoded, err := decodeStatus(data)
		if nil != err {
			return err
		}
		status = decoded
	}

	serial := status.NewestSerial + 1
	if change.forced {
		if change.serial <= status.NewestSerial {
			return fault.ErrForcedSerialOutOfOrder
		}
		serial = change.serial
	}

	entry := JournalEntry{
		Serial:     serial,
		Operation:  change.op,
		Class:      record.Class,
		PrimaryKey: record.PrimaryKey,
		Source:     record.Source,
		Text:       record.Text,
		Timestamp:  now,
	}
	encoded := encodeJournalEntry(entry)
	Pool.Journal.Put(journalKey(record.Source, serial), encoded)

	if 0 == status.OldestSerial {
		status.OldestSerial = serial
	}
	status.NewestSerial = serial
	status.Updated = now
	Pool.Status.Put(statusKey(record.Source), encodeStatus(status))

	s.announcements = append(s.announcements, announcement{
		source: record.Source,
		entry:  encoded,
	})
	return nil
}

// Commit - flush remaining changes and write the transaction
//
// journal announcements are published only after the database write
// succeeds, so subscribers never learn of rolled back serials
func (s *Store) Commit() error {
	s.Lock()
	defer s.Unlock()

	err := s.flush()
	if nil != err {
		return err
	}

	access, err := transactionAccess()
	if nil != err {
		return err
	}
	err = access.Commit()
	if nil != err {
		return err
	}

	order := []string(nil)
	bySource := map[string][][]byte{}
	for _, ann := range s.announcements {
		if _, ok := bySource[ann.source]; !ok {
			order = append(order, ann.source)
		}
		bySource[ann.source] = append(bySource[ann.source], ann.entry)
	}
	for _, source := range order {
		messagebus.Send(source, bySource[source])
	}

	s.announcements = nil
	return nil
}

// Rollback - discard all pending and flushed-but-uncommitted changes
//
// clearing the transaction overlay also restores every serial counter
// to its committed value, since counters live in the status records
func (s *Store) Rollback() {
	s.Lock()
	defer s.Unlock()

	s.pending = nil
	s.pendingKeys = map[string]struct{}{}
	s.announcements = nil

	access, err := transactionAccess()
	if nil == err {
		access.Abort()
	}
}

// PendingCount - number of changes queued but not flushed
func (s *Store) PendingCount() int {
	s.Lock()
	defer s.Unlock()
	return len(s.pending)
}

// DisableJournal - stop journaling changes of one source
func (s *Store) DisableJournal(source string) {
	s.Lock()
	defer s.Unlock()
	s.journalOff[source] = struct{}{}
}

// caller holds the lock
func (s *Store) journalEnabled(source string) bool {
	if !s.keepJournal {
		return false
	}
	_, off := s.journalOff[source]
	return !off
}

// Lookup - fetch one record
//
// sees committed data and flushed transaction data; queued pending
// changes stay invisible until flushed
func (s *Store) Lookup(source string, class string, primaryKey string) (*Record, bool) {
	data := Pool.Objects.Get(recordKey(source, class, primaryKey))
	if nil == data {
		return nil, false
	}
	record, err := decodeRecord(data)
	logger.PanicIfError("storage.Lookup", err)
	return &record, true
}

// ExistsAny - check whether a key exists under any of the given classes
func (s *Store) ExistsAny(source string, classes []string, primaryKey string) bool {
	for _, class := range classes {
		if Pool.Objects.Has(recordKey(source, class, primaryKey)) {
			return true
		}
	}
	return false
}

// ReferencedBy - all objects referring to a key within one source
func (s *Store) ReferencedBy(source string, primaryKey string) ([]Referrer, error) {

	prefix := make([]byte, 0, len(source)+len(primaryKey)+2)
	prefix = append(prefix, source...)
	prefix = append(prefix, keySeparator)
	prefix = append(prefix, primaryKey...)
	prefix = append(prefix, keySeparator)

	referrers := []Referrer(nil)
	err := Pool.References.Scan(prefix, func(key []byte, value []byte) bool {
		rest := key[len(prefix):]
		parts := bytes.SplitN(rest, []byte{keySeparator}, 2)
		if 2 != len(parts) {
			s.log.Criticalf("malformed reference index key: %x", key)
			return true
		}
		referrers = append(referrers, Referrer{
			Class:      string(parts[0]),
			PrimaryKey: string(parts[1]),
			Field:      string(value),
		})
		return true
	})
	if nil != err {
		return nil, err
	}
	return referrers, nil
}
