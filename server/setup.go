// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"crypto/tls"
	"sync"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/irrcore/registryd/background"
	"github.com/irrcore/registryd/fault"
	"github.com/irrcore/registryd/storage"
	"github.com/irrcore/registryd/updates"
)

// Configuration - submission server settings
type Configuration struct {
	MaximumConnections   int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	SubmissionsPerSecond float64  `gluamapper:"submissions_per_second" json:"submissions_per_second"`
	Listen               []string `gluamapper:"listen" json:"listen"`
	Certificate          string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey           string   `gluamapper:"private_key" json:"private_key"`
}

const (
	defaultMaximumConnections   = 10
	defaultSubmissionsPerSecond = 2.0
	submissionBurst             = 5
)

// globals for this module
type serverData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	listener   *listener.MultiListener
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData serverData

// Initialise - start the submission listeners
//
// the store must already be initialised and hold no open transaction
func Initialise(configuration *Configuration, store *storage.Store, handler *updates.Handler) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("server")
	log := globalData.log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Error("no listen addresses")
		return fault.ErrMissingListenAddress
	}

	keyPair, err := tls.LoadX509KeyPair(configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		log.Errorf("certificate load error: %s", err)
		return err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	maximumConnections := configuration.MaximumConnections
	if maximumConnections <= 0 {
		maximumConnections = defaultMaximumConnections
	}

	submissionRate := configuration.SubmissionsPerSecond
	if submissionRate <= 0 {
		submissionRate = defaultSubmissionsPerSecond
	}

	argument := &serverArgument{
		log:     logger.New("submission"),
		store:   store,
		handler: handler,
		limiter: rate.NewLimiter(rate.Limit(submissionRate), submissionBurst),
	}

	ml, err := listener.NewMultiListener("submission", configuration.Listen, tlsConfiguration, listener.NewLimiter(maximumConnections), Callback)
	if nil != err {
		log.Errorf("listen error: %s", err)
		return err
	}
	globalData.listener = ml
	ml.Start(argument)

	// warn the operator when certificate material changes underneath
	// a running daemon
	watcher := &certificateWatcher{
		files: []string{
			configuration.Certificate,
			configuration.PrivateKey,
		},
	}
	globalData.background = background.Start(background.Processes{watcher}, log)

	globalData.initialised = true
	log.Info("initialised")
	return nil
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.listener.Stop()
	globalData.background.Stop()

	globalData.listener = nil
	globalData.background = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	return nil
}
