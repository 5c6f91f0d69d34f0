// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// downstream replication feed
//
// a background process drains committed journal announcements from
// the messagebus and publishes them on a ZeroMQ PUB socket, one
// message per journal entry: a source topic frame followed by the
// JSON encoded entry
//
// subscribers only ever see committed serials, in serial order per
// source, because the store announces after the database write
package mirror
