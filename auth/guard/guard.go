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

// Package guard gates protected views on an authenticated session. Each
// mount checks the session once and either shows the content or redirects
// to the login route.
package guard

import (
	"context"
	"sync"

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/auth/session"
	"github.com/gravitational/admin-panel/lib/logger"
	"github.com/gravitational/admin-panel/navigation"
)

// State is the state of a mounted guard.
type State int

const (
	// Idle is the state before the check starts.
	Idle State = iota
	// Checking means a refresh is in flight.
	Checking
	// Authenticated means the protected content is shown.
	Authenticated
	// Unauthenticated means the guard redirected to the login route.
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Sessions is the part of the session store the guard needs.
type Sessions interface {
	Logged() bool
	RefreshToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context, refreshToken string) (*session.Credential, error)
}

// Hooks are notified of the guard progress. They run with the mount locked
// and must not call Unmount.
type Hooks struct {
	// OnLoading is called on entering Checking.
	OnLoading func()
	// OnContent is called on entering Authenticated.
	OnContent func()
	// OnTransition is called on every state change.
	OnTransition func(from, to State)
}

// Config configures a Guard.
type Config struct {
	Sessions   Sessions
	Navigator  navigation.Navigator
	LoginRoute string
	Hooks      Hooks
}

// CheckAndSetDefaults validates the config.
func (c *Config) CheckAndSetDefaults() error {
	if c.Sessions == nil {
		return trace.BadParameter("missing parameter Sessions")
	}
	if c.Navigator == nil {
		return trace.BadParameter("missing parameter Navigator")
	}
	if c.LoginRoute == "" {
		c.LoginRoute = navigation.LoginRoute
	}
	return nil
}

// Guard creates mounts.
type Guard struct {
	conf Config
}

// New creates a guard.
func New(conf Config) (*Guard, error) {
	if err := conf.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Guard{conf: conf}, nil
}

// Mount is a single mounted guard.
type Mount struct {
	conf   Config
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex // protects the fields below
	state      State
	mounted    bool
	redirected bool
}

// Mount starts the session check in the background.
func (g *Guard) Mount(ctx context.Context) *Mount {
	ctx, cancel := context.WithCancel(ctx)
	m := &Mount{
		conf:    g.conf,
		cancel:  cancel,
		done:    make(chan struct{}),
		state:   Idle,
		mounted: true,
	}
	go func() {
		defer close(m.done)
		m.check(ctx)
	}()
	return m
}

// State returns the current state.
func (m *Mount) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Wait blocks until the check is finished and returns the final state.
func (m *Mount) Wait(ctx context.Context) (State, error) {
	select {
	case <-m.done:
		return m.State(), nil
	case <-ctx.Done():
		return m.State(), trace.Wrap(ctx.Err())
	}
}

// Unmount stops the mount. A check still in flight no longer changes the
// state, calls hooks or navigates. It is idempotent.
func (m *Mount) Unmount() {
	m.mu.Lock()
	m.mounted = false
	m.mu.Unlock()
	m.cancel()
}

func (m *Mount) check(ctx context.Context) {
	log := logger.Get(ctx)

	if m.conf.Sessions.Logged() {
		m.transition(Authenticated)
		return
	}

	token, err := m.conf.Sessions.RefreshToken(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read the session")
		m.transition(Unauthenticated)
		return
	}
	if token == "" {
		m.transition(Unauthenticated)
		return
	}

	if !m.transition(Checking) {
		return
	}
	if _, err := m.conf.Sessions.Refresh(ctx, token); err != nil {
		if ctx.Err() != nil {
			log.Debug("Session check abandoned")
			return
		}
		log.WithError(err).Info("Session refresh failed")
		m.transition(Unauthenticated)
		return
	}
	m.transition(Authenticated)
}

// transition moves to the next state. It returns false when the mount is gone.
func (m *Mount) transition(to State) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.mounted {
		return false
	}
	from := m.state
	m.state = to

	hooks := m.conf.Hooks
	if hooks.OnTransition != nil {
		hooks.OnTransition(from, to)
	}
	switch to {
	case Checking:
		if hooks.OnLoading != nil {
			hooks.OnLoading()
		}
	case Authenticated:
		if hooks.OnContent != nil {
			hooks.OnContent()
		}
	case Unauthenticated:
		if !m.redirected {
			m.redirected = true
			m.conf.Navigator.Navigate(m.conf.LoginRoute)
		}
	}
	return true
}
