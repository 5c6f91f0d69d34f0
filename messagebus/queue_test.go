// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irrcore/registryd/messagebus"
)

func TestQueueOrdering(t *testing.T) {

	messagebus.Send("TEST", [][]byte{[]byte("one")})
	messagebus.Send("TEST", [][]byte{[]byte("two"), []byte("three")})

	m := <-messagebus.Chan()
	assert.Equal(t, "TEST", m.Source, "wrong source")
	assert.Equal(t, 1, len(m.Entries), "wrong entry count")
	assert.Equal(t, []byte("one"), m.Entries[0], "wrong entry")

	m = <-messagebus.Chan()
	assert.Equal(t, 2, len(m.Entries), "wrong entry count")
	assert.Equal(t, []byte("two"), m.Entries[0], "wrong entry")
	assert.Equal(t, []byte("three"), m.Entries[1], "wrong entry")
}
