// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk object store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++     = concatenation of byte data
// 3. 0x00   = key part separator (sources, classes and keys never contain NUL)
// 4. serial = big endian uint64 (8 bytes)
//
// Objects:
//
//   R ++ source ++ 0x00 ++ class ++ 0x00 ++ primary key
//                              - registry object record
//                                data: JSON encoded Record
//
// Journal:
//
//   J ++ source ++ 0x00 ++ serial
//                              - one journal entry per flushed change
//                                data: JSON encoded JournalEntry
//   S ++ source                - per source status
//                                data: JSON encoded StatusRecord
//
// Reference index:
//
//   X ++ source ++ 0x00 ++ referenced key ++ 0x00 ++ class ++ 0x00 ++ referring key
//                              - reverse index of object references
//                                data: referring attribute name
//
// Testing:
//   Z ++ key                   - testing data
package storage
