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

// Package session holds the persisted admin credential: the access/refresh
// token pair and the logged flag. The Store is the only writer.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/gravitational/trace"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/lib/logger"
)

// Authorizer talks to the auth endpoints.
type Authorizer interface {
	// Login exchanges user credentials for a token pair.
	Login(ctx context.Context, username, password string) (*Credential, error)
	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*Credential, error)
}

// Config configures a Store.
type Config struct {
	Storage    Storage
	Authorizer Authorizer
	Clock      clockwork.Clock
}

// CheckAndSetDefaults validates the config and fills in the defaults.
func (c *Config) CheckAndSetDefaults() error {
	if c.Authorizer == nil {
		return trace.BadParameter("missing parameter Authorizer")
	}
	if c.Storage == nil {
		c.Storage = NewMemoryStorage()
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Store owns the session record.
type Store struct {
	storage    Storage
	authorizer Authorizer
	clock      clockwork.Clock

	// mu serializes mutations: storage write first, then the in-memory view.
	mu      sync.Mutex
	logged  bool
	current *Credential

	refreshes singleflight.Group
}

// NewStore creates a store. The in-process logged flag starts false even when
// storage holds a record from a previous run.
func NewStore(conf Config) (*Store, error) {
	if err := conf.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &Store{
		storage:    conf.Storage,
		authorizer: conf.Authorizer,
		clock:      conf.Clock,
	}, nil
}

// Login authenticates with username and password and persists the result.
// On failure the session is cleared and the error is an *api.AuthFailure.
func (s *Store) Login(ctx context.Context, username, password string) (*Credential, error) {
	ctx, log := logger.WithField(ctx, "username", username)

	cred, err := s.authorizer.Login(ctx, username, password)
	if err == nil {
		err = checkCredential(cred)
	}
	if err != nil {
		return nil, trace.Wrap(s.fail(ctx, "", err))
	}
	if err := s.set(ctx, cred); err != nil {
		return nil, trace.Wrap(err)
	}
	log.Info("Logged in")
	return cred, nil
}

// Refresh exchanges refreshToken for a new pair. Concurrent calls with the
// same token share one request, which is not canceled when a caller gives up.
// On failure the session is cleared, unless a login replaced it while the
// refresh was in flight. Nothing is retried.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (*Credential, error) {
	if refreshToken == "" {
		return nil, trace.Wrap(s.fail(ctx, "", trace.BadParameter("missing refresh token")))
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := s.refreshes.DoChan(refreshToken, func() (interface{}, error) {
		cred, err := s.authorizer.Refresh(flightCtx, refreshToken)
		if err == nil {
			err = checkCredential(cred)
		}
		if err != nil {
			return nil, s.fail(flightCtx, refreshToken, err)
		}
		if err := s.set(flightCtx, cred); err != nil {
			return nil, trace.Wrap(err)
		}
		logger.Get(flightCtx).Debug("Session refreshed")
		return cred, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, trace.Wrap(res.Err)
		}
		return res.Val.(*Credential), nil
	case <-ctx.Done():
		return nil, trace.Wrap(ctx.Err())
	}
}

// Logout clears the session. It is idempotent.
func (s *Store) Logout(ctx context.Context) error {
	if _, err := s.clear(ctx, ""); err != nil {
		return trace.Wrap(err)
	}
	logger.Get(ctx).Info("Logged out")
	return nil
}

// Snapshot reads the persisted record.
func (s *Store) Snapshot(ctx context.Context) (Record, error) {
	record, err := s.storage.Load(ctx)
	return record, trace.Wrap(err)
}

// AccessToken returns the persisted access token, empty if there is none.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	record, err := s.Snapshot(ctx)
	if err != nil || record.Credential == nil {
		return "", trace.Wrap(err)
	}
	return record.Credential.Access, nil
}

// RefreshToken returns the persisted refresh token, empty if there is none.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	record, err := s.Snapshot(ctx)
	if err != nil || record.Credential == nil {
		return "", trace.Wrap(err)
	}
	return record.Credential.Refresh, nil
}

// Logged reports whether a login or refresh succeeded in this process and
// the session has not been cleared since.
func (s *Store) Logged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logged
}

// Current returns the credential of the in-memory view.
func (s *Store) Current() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cred := *s.current
	return &cred
}

func (s *Store) set(ctx context.Context, cred *Credential) error {
	stored := *cred
	stored.IssuedAt = s.clock.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Save(ctx, Record{Logged: true, Credential: &stored}); err != nil {
		return trace.Wrap(err, "failed to save the session")
	}
	s.logged = true
	s.current = &stored
	*cred = stored
	return nil
}

// clear drops the session. With a non-empty holding token, a session that
// no longer holds that refresh token is kept and clear reports false.
func (s *Store) clear(ctx context.Context, holding string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if holding != "" {
		record, err := s.storage.Load(ctx)
		if err == nil && record.Credential != nil && record.Credential.Refresh != holding {
			return false, nil
		}
	}
	if err := s.storage.Save(ctx, Record{}); err != nil {
		return false, trace.Wrap(err, "failed to clear the session")
	}
	s.logged = false
	s.current = nil
	return true, nil
}

// fail clears the session and converts err to an *api.AuthFailure. See
// clear for holding.
func (s *Store) fail(ctx context.Context, holding string, err error) error {
	failure := asAuthFailure(err)
	log := logger.Get(ctx).WithField("payload", string(failure.Payload))
	cleared, clearErr := s.clear(ctx, holding)
	switch {
	case clearErr != nil:
		log.WithError(clearErr).Error("Failed to clear the session")
	case !cleared:
		log.Debug("Session was replaced during the refresh, keeping it")
	}
	log.Warn("Authentication failed")
	return failure
}

func asAuthFailure(err error) *api.AuthFailure {
	var failure *api.AuthFailure
	if errors.As(err, &failure) {
		return failure
	}
	return api.NewAuthFailure(err)
}

func checkCredential(cred *Credential) error {
	if cred == nil || cred.Access == "" || cred.Refresh == "" {
		return &api.ClientFailure{Message: "auth service returned an incomplete token pair"}
	}
	return nil
}
