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

package testing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gravitational/admin-panel/lib/logger"
)

const defaultTimeout = 5 * time.Second

// Suite gives every test a context with a deadline and a logger whose
// entries are recorded.
type Suite struct {
	suite.Suite
	ctx  context.Context
	hook *test.Hook
}

// SetContext sets the test context. It can be set once per test.
func (s *Suite) SetContext(timeout time.Duration) context.Context {
	t := s.T()
	t.Helper()

	require.Nil(t, s.ctx, "Context cannot be set twice")

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	ctx, _ := logger.WithField(logger.WithLogger(context.Background(), log), "test", t.Name())
	ctx, cancel := context.WithTimeout(ctx, timeout)
	t.Cleanup(func() {
		cancel()
		s.ctx = nil
		s.hook = nil
	})
	s.ctx, s.hook = ctx, hook
	return ctx
}

// Ctx returns the test context, setting it up on first use.
func (s *Suite) Ctx() context.Context {
	t := s.T()
	t.Helper()

	if ctx := s.ctx; ctx != nil {
		return ctx
	}
	return s.SetContext(defaultTimeout)
}

// LogEntries returns the entries logged through the test context at level
// or above.
func (s *Suite) LogEntries(level logrus.Level) []*logrus.Entry {
	t := s.T()
	t.Helper()

	require.NotNil(t, s.hook, "Context is not set")
	var entries []*logrus.Entry
	for _, entry := range s.hook.AllEntries() {
		if entry.Level <= level {
			entries = append(entries, entry)
		}
	}
	return entries
}
