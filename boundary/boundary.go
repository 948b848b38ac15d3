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

// Package boundary turns unhandled API failures into navigation to an error
// route. It observes the shared request pipeline while mounted.
package boundary

import (
	"context"
	"net/http"
	"sync"

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/lib/logger"
	"github.com/gravitational/admin-panel/navigation"
)

// Decide returns the error route for a failed call, or false when the call
// opted out of error navigation or was canceled by its caller.
func Decide(options api.RequestOptions, err error) (string, bool) {
	if err == nil || options.IgnoreAllErrors {
		return "", false
	}
	var status int
	if failure, ok := api.AsFailure(err); ok {
		if transport, ok := failure.(*api.TransportFailure); ok && transport.Canceled() {
			return "", false
		}
		status = failure.StatusCode()
	}
	if options.IgnoreErrorStatuses.Contains(status) {
		return "", false
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return navigation.ErrorRoute(status), true
}

// Boundary is an error boundary bound to one client.
type Boundary struct {
	client *api.Client
	nav    navigation.Navigator

	mu  sync.Mutex
	reg *api.Registration
}

// New creates an unmounted boundary.
func New(client *api.Client, nav navigation.Navigator) (*Boundary, error) {
	if client == nil {
		return nil, trace.BadParameter("missing API client")
	}
	if nav == nil {
		return nil, trace.BadParameter("missing navigator")
	}
	return &Boundary{client: client, nav: nav}, nil
}

// Mount starts observing failures. Mounting a mounted boundary fails.
func (b *Boundary) Mount() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.reg != nil {
		return trace.AlreadyExists("error boundary is already mounted")
	}
	b.reg = b.client.Observe(b.observe)
	return nil
}

// Unmount stops observing failures. It is idempotent.
func (b *Boundary) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.reg == nil {
		return
	}
	b.reg.Release()
	b.reg = nil
}

// Mounted reports whether the boundary observes failures.
func (b *Boundary) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reg != nil
}

func (b *Boundary) observe(ctx context.Context, call *api.Call, err error) error {
	log := logger.Get(ctx)
	route, ok := Decide(call.Options, err)
	if !ok {
		log.WithField("ignored_statuses", call.Options.IgnoreErrorStatuses.ToSlice()).Debug("Not navigating to the error page")
		return err
	}
	log.WithField("route", route).Debug("Navigating to the error page")
	b.nav.Navigate(route)
	return err
}

// Scope mounts a boundary for the duration of fn.
func Scope(ctx context.Context, client *api.Client, nav navigation.Navigator, fn func(context.Context) error) error {
	b, err := New(client, nav)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := b.Mount(); err != nil {
		return trace.Wrap(err)
	}
	defer b.Unmount()
	return trace.Wrap(fn(ctx))
}
