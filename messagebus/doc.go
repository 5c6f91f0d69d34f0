// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queue of committed journal announcements
//
// The object store posts one message per source at commit time; the
// mirror publisher drains the queue and broadcasts the entries to
// downstream subscribers.  Messages for a single source are queued in
// serial order because commits are serialised per store instance.
package messagebus
