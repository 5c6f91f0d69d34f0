// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of processes and clean up on shutdown
package background

import (
	"sync"
)

// Process - a long running goroutine interrupted by closing the shutdown channel
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for the started group
type T struct {
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// Start - run each process in its own goroutine
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make(chan struct{}),
	}

	for _, p := range processes {
		register.wg.Add(1)
		go func(p Process) {
			defer register.wg.Done()
			p.Run(args, register.shutdown)
		}(p)
	}
	return register
}

// Stop - signal all processes and wait until each has returned
func (t *T) Stop() {
	if nil == t {
		return
	}
	close(t.shutdown)
	t.wg.Wait()
}
