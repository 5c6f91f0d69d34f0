// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mirror_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/irrcore/registryd/messagebus"
	"github.com/irrcore/registryd/mirror"
)

const logDirectory = "testing"

func setup(t *testing.T) {
	os.RemoveAll(logDirectory)
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
}

func teardown(t *testing.T) {
	logger.Finalise()
	os.RemoveAll(logDirectory)
}

func TestPublisher(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := mirror.Initialise(&mirror.Configuration{
		Publish: []string{"inproc://mirror-test"},
	})
	assert.Nil(t, err, "initialise error")
	defer mirror.Finalise()

	subscriber, err := zmq.NewSocket(zmq.SUB)
	assert.Nil(t, err, "socket error")
	defer subscriber.Close()

	assert.Nil(t, subscriber.Connect("inproc://mirror-test"), "connect error")
	assert.Nil(t, subscriber.SetSubscribe("TEST"), "subscribe error")
	assert.Nil(t, subscriber.SetRcvtimeo(2*time.Second), "timeout error")

	// allow the subscription to propagate
	time.Sleep(100 * time.Millisecond)

	entry := []byte(`{"serial":1,"operation":"ADD"}`)
	messagebus.Send("TEST", [][]byte{entry})

	frames, err := subscriber.RecvMessageBytes(0)
	assert.Nil(t, err, "receive error")
	assert.Equal(t, 2, len(frames), "wrong frame count")
	assert.Equal(t, []byte("TEST"), frames[0], "wrong topic frame")
	assert.Equal(t, entry, frames[1], "wrong body frame")
}

func TestDoubleInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	err := mirror.Initialise(&mirror.Configuration{
		Publish: []string{"inproc://mirror-test-again"},
	})
	assert.Nil(t, err, "initialise error")

	err = mirror.Initialise(&mirror.Configuration{})
	assert.NotNil(t, err, "double initialise allowed")

	assert.Nil(t, mirror.Finalise(), "finalise error")
}
