// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mirror

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/irrcore/registryd/background"
	"github.com/irrcore/registryd/fault"
)

// Configuration - mirror feed settings from the configuration file
type Configuration struct {
	Publish []string `gluamapper:"publish" json:"publish"`
}

// globals for background process
type mirrorData struct {
	sync.RWMutex

	log *logger.L

	pub publisher

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData mirrorData

// Initialise - start the publisher
func Initialise(configuration *Configuration) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("mirror")
	globalData.log.Info("starting…")

	err := globalData.pub.initialise(configuration.Publish)
	if nil != err {
		return err
	}

	globalData.initialised = true

	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.pub,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
