// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
)

// watch the certificate and key files
//
// the TLS configuration is captured at listener start, so a changed
// certificate only takes effect after a restart; log loudly so the
// operator knows
type certificateWatcher struct {
	log   *logger.L
	files []string
}

func (w *certificateWatcher) Run(args interface{}, shutdown <-chan struct{}) {

	w.log = logger.New("watcher")
	log := w.log
	log.Info("starting…")

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Criticalf("fsnotify error: %s", err)
		return
	}
	defer watcher.Close()

	for _, file := range w.files {
		err := watcher.Add(file)
		if nil != err {
			log.Errorf("cannot watch: %q  error: %s", file, err)
		}
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-watcher.Events:
			if 0 != event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				log.Warnf("certificate material changed: %q  restart required", event.Name)
			}

		case err := <-watcher.Errors:
			log.Errorf("watch error: %s", err)
		}
	}

	log.Info("stopped")
}
