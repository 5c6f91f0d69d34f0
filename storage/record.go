// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"
)

// Operation - the kind of change a journal entry records
type Operation string

// journal operations
const (
	OpAdd    Operation = "ADD"
	OpDelete Operation = "DEL"
)

// Reference - one outgoing reference of a record
type Reference struct {
	Field      string `json:"field"`
	PrimaryKey string `json:"primary_key"`
}

// Record - one stored registry object
type Record struct {
	Class      string      `json:"class"`
	PrimaryKey string      `json:"primary_key"`
	Source     string      `json:"source"`
	Text       string      `json:"text"`
	RefersTo   []Reference `json:"refers_to,omitempty"`
}

// JournalEntry - one flushed change of a source
type JournalEntry struct {
	Serial     uint64    `json:"serial"`
	Operation  Operation `json:"operation"`
	Class      string    `json:"class"`
	PrimaryKey string    `json:"primary_key"`
	Source     string    `json:"source"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// StatusRecord - per source journal bounds
type StatusRecord struct {
	OldestSerial uint64    `json:"serial_oldest"`
	NewestSerial uint64    `json:"serial_newest"`
	Updated      time.Time `json:"updated"`
}

// key part separator, not valid inside sources, classes or keys
const keySeparator = 0x00

// source ++ 0x00 ++ class ++ 0x00 ++ primary key
func recordKey(source string, class string, primaryKey string) []byte {
	key := make([]byte, 0, len(source)+len(class)+len(primaryKey)+2)
	key = append(key, source...)
	key = append(key, keySeparator)
	key = append(key, class...)
	key = append(key, keySeparator)
	key = append(key, primaryKey...)
	return key
}

// source ++ 0x00 ++ serial
func journalKey(source string, serial uint64) []byte {
	key := make([]byte, 0, len(source)+9)
	key = append(key, source...)
	key = append(key, keySeparator)
	serialBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(serialBytes, serial)
	return append(key, serialBytes...)
}

func statusKey(source string) []byte {
	return []byte(source)
}

// source ++ 0x00 ++ referenced key ++ 0x00 ++ class ++ 0x00 ++ referring key
func referenceKey(source string, referencedKey string, class string, referringKey string) []byte {
	key := make([]byte, 0, len(source)+len(referencedKey)+len(class)+len(referringKey)+3)
	key = append(key, source...)
	key = append(key, keySeparator)
	key = append(key, referencedKey...)
	key = append(key, keySeparator)
	key = append(key, class...)
	key = append(key, keySeparator)
	key = append(key, referringKey...)
	return key
}

func encodeRecord(record Record) []byte {
	data, err := json.Marshal(record)
	if nil != err {
		// all record fields are plain strings
		panic(err)
	}
	return data
}

func decodeRecord(data []byte) (Record, error) {
	record := Record{}
	err := json.Unmarshal(data, &record)
	return record, err
}

func encodeJournalEntry(entry JournalEntry) []byte {
	data, err := json.Marshal(entry)
	if nil != err {
		panic(err)
	}
	return data
}

func decodeJournalEntry(data []byte) (JournalEntry, error) {
	entry := JournalEntry{}
	err := json.Unmarshal(data, &entry)
	return entry, err
}

func encodeStatus(status StatusRecord) []byte {
	data, err := json.Marshal(status)
	if nil != err {
		panic(err)
	}
	return data
}

func decodeStatus(data []byte) (StatusRecord, error) {
	status := StatusRecord{}
	err := json.Unmarshal(data, &status)
	return status, err
}
