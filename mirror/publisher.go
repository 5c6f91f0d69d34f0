// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mirror

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/messagebus"
)

// the announcement draining process
type publisher struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the PUB socket to all configured addresses
func (p *publisher) initialise(addresses []string) error {

	p.log = logger.New("publisher")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}

	_ = socket.SetLinger(0)
	_ = socket.SetSndhwm(publisherHighWaterMark)

	for _, address := range addresses {
		p.log.Infof("bind to: %q", address)
		err = socket.Bind(address)
		if nil != err {
			socket.Close()
			return err
		}
	}

	p.socket = socket
	return nil
}

const publisherHighWaterMark = 1000

// Run - forward committed journal announcements to subscribers
//
// the socket is owned by this goroutine alone
func (p *publisher) Run(args interface{}, shutdown <-chan struct{}) {

	log := p.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case message := <-messagebus.Chan():
			log.Debugf("publish: %s: %d entries", message.Source, len(message.Entries))
			for _, entry := range message.Entries {
				_, err := p.socket.SendMessage(message.Source, entry)
				if nil != err {
					log.Errorf("send error: %s", err)
				}
			}
		}
	}

	p.socket.Close()
	p.socket = nil
	log.Info("stopped")
}
