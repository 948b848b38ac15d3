/*
Copyright 2026 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package lib

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// WithSignals returns a context canceled on the first SIGINT or SIGTERM.
// A second SIGINT calls exit immediately. The returned cancel func also
// stops listening for signals.
func WithSignals(ctx context.Context, exit func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() { close(stopped) })
		cancel()
	}

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC,
		syscall.SIGTERM, // cancel
		syscall.SIGINT,  // cancel, then exit
	)

	go func() {
		defer signal.Stop(sigC)
		select {
		case sig := <-sigC:
			log.Infof("Received %v, canceling...", sig)
			cancel()
		case <-ctx.Done():
			return
		}
		for {
			select {
			case sig := <-sigC:
				if sig == syscall.SIGINT {
					log.Warn("Interrupted twice, exiting")
					exit()
					return
				}
			case <-stopped:
				return
			}
		}
	}()
	return ctx, stop
}
