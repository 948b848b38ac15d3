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

// Package navigation is the contract between the request pipeline and
// whatever renders the admin panel: the auth guard redirects to the login
// route and the error boundary to status-coded error routes.
package navigation

import (
	"fmt"
	"sync"
)

const (
	// LoginRoute is the login entry point.
	LoginRoute = "/login"
	// ErrorRoutePrefix prefixes status-coded error routes.
	ErrorRoutePrefix = "/error/"
)

// ErrorRoute returns the error route for an HTTP status.
func ErrorRoute(status int) string {
	return fmt.Sprintf("%s%d", ErrorRoutePrefix, status)
}

// Navigator moves the whole application to a route.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

// Recorder remembers every route it was sent to.
type Recorder struct {
	mu     sync.Mutex
	routes []string
}

// Navigate implements Navigator.
func (r *Recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Routes returns the recorded routes in order.
func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// Last returns the most recent route, empty if there was none.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}
