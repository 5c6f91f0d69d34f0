// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

// internal constants
const (
	queueSize = 1000
)

// Message - one batch of committed journal entries for a single source
type Message struct {
	Source  string   // owning namespace of the entries
	Entries [][]byte // encoded journal entries in serial order
}

var (
	// for queueing data
	queue = make(chan Message, queueSize)
)

// Send - queue an announcement
func Send(source string, entries [][]byte) {
	queue <- Message{
		Source:  source,
		Entries: entries,
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}
