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

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/auth/authclient"
	"github.com/gravitational/admin-panel/auth/guard"
	"github.com/gravitational/admin-panel/auth/session"
	"github.com/gravitational/admin-panel/boundary"
	"github.com/gravitational/admin-panel/lib"
	"github.com/gravitational/admin-panel/lib/logger"
	"github.com/gravitational/admin-panel/navigation"
	"github.com/gravitational/admin-panel/resources"
)

// AppConfig configures an App.
type AppConfig struct {
	API        lib.APIConfig
	StorageDir string
	Out        io.Writer
	Clock      clockwork.Clock
	// Transport overrides the HTTP transport. Used by tests.
	Transport http.RoundTripper
}

// App wires the request pipeline, the session store and the resource clients.
type App struct {
	conf      AppConfig
	client    *api.Client
	store     *session.Store
	guard     *guard.Guard
	nav       *terminalNavigator
	resources *resources.Client
}

// NewApp builds the app.
func NewApp(conf AppConfig) (*App, error) {
	if conf.Out == nil {
		conf.Out = io.Discard
	}
	if conf.Clock == nil {
		conf.Clock = clockwork.NewRealClock()
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   conf.API.BaseURL,
		Timeout:   conf.API.Timeout,
		Transport: conf.Transport,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}

	storage, err := session.NewDiskStorage(conf.StorageDir)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	auth, err := authclient.New(client, conf.API.AuthURL)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	store, err := session.NewStore(session.Config{
		Storage:    storage,
		Authorizer: auth,
		Clock:      conf.Clock,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}

	// The store is the token source of the pipeline it authenticates through.
	client.SetChain(api.Chain{
		Request: []api.RequestInterceptor{
			api.AuthHeaders(store, api.Identity{Version: conf.API.AppVersion, Type: conf.API.AppType}),
		},
		Response: []api.ResponseInterceptor{api.LogFailures()},
	})

	nav := &terminalNavigator{out: conf.Out}
	g, err := guard.New(guard.Config{Sessions: store, Navigator: nav})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	res, err := resources.New(client)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &App{
		conf:      conf,
		client:    client,
		store:     store,
		guard:     g,
		nav:       nav,
		resources: res,
	}, nil
}

// Protected runs fn once the session is authenticated, with failures routed
// through the error boundary.
func (a *App) Protected(ctx context.Context, fn func(context.Context) error) error {
	mount := a.guard.Mount(ctx)
	defer mount.Unmount()

	state, err := mount.Wait(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if state != guard.Authenticated {
		return trace.AccessDenied("not logged in")
	}
	logger.Get(ctx).Debug("Session is authenticated")
	return trace.Wrap(boundary.Scope(ctx, a.client, a.nav, fn))
}

// terminalNavigator prints where the admin panel would have navigated.
type terminalNavigator struct {
	mu     sync.Mutex
	out    io.Writer
	routes []string
}

func (n *terminalNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)

	switch {
	case route == navigation.LoginRoute:
		fmt.Fprintln(n.out, "Not logged in. Run `adminctl login` first.")
	case strings.HasPrefix(route, navigation.ErrorRoutePrefix):
		fmt.Fprintf(n.out, "Request failed with status %s.\n", strings.TrimPrefix(route, navigation.ErrorRoutePrefix))
	}
}

// Last returns the last route, empty if there was none.
func (n *terminalNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}
