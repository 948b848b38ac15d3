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

package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/auth/authclient"
	"github.com/gravitational/admin-panel/auth/session"
	"github.com/gravitational/admin-panel/navigation"
)

type transition struct {
	From, To State
}

type recorder struct {
	mu          sync.Mutex
	transitions []transition
	loading     int
	content     int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnLoading: func() { r.mu.Lock(); r.loading++; r.mu.Unlock() },
		OnContent: func() { r.mu.Lock(); r.content++; r.mu.Unlock() },
		OnTransition: func(from, to State) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.transitions = append(r.transitions, transition{From: from, To: to})
		},
	}
}

func (r *recorder) diff(want []transition) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cmp.Diff(want, r.transitions)
}

// fakeAuthService accepts refresh token "r1" once.
func fakeAuthService(t *testing.T, calls *int32) string {
	router := httprouter.New()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	router.POST("/auth/refresh", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		atomic.AddInt32(calls, 1)
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		rw.Header().Add("Content-Type", "application/json")
		if req.RefreshToken != "r1" {
			rw.WriteHeader(http.StatusUnauthorized)
			_, _ = rw.Write([]byte(`{"error":"invalid_refresh_token"}`))
			return
		}
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte(`{"access_token":"a2","refresh_token":"r2","token_type":"bearer","expires_in":900}`))
	})
	return srv.URL
}

func newTestStore(t *testing.T, authURL, refreshToken string) *session.Store {
	ctx := context.Background()
	apiClient, err := api.NewClient(api.Config{BaseURL: authURL})
	require.NoError(t, err)
	auth, err := authclient.New(apiClient, authURL)
	require.NoError(t, err)

	storage := session.NewMemoryStorage()
	if refreshToken != "" {
		require.NoError(t, storage.Save(ctx, session.Record{
			Logged:     true,
			Credential: &session.Credential{Access: "a1", Refresh: refreshToken},
		}))
	}
	store, err := session.NewStore(session.Config{Storage: storage, Authorizer: auth})
	require.NoError(t, err)
	return store
}

func mountAndWait(t *testing.T, sessions Sessions, nav navigation.Navigator, rec *recorder) State {
	g, err := New(Config{Sessions: sessions, Navigator: nav, Hooks: rec.hooks()})
	require.NoError(t, err)
	m := g.Mount(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := m.Wait(ctx)
	require.NoError(t, err)
	return state
}

func TestGuardRefreshSucceeds(t *testing.T) {
	var calls int32
	store := newTestStore(t, fakeAuthService(t, &calls), "r1")
	var nav navigation.Recorder
	var rec recorder

	state := mountAndWait(t, store, &nav, &rec)

	require.Equal(t, Authenticated, state)
	require.Empty(t, rec.diff([]transition{
		{From: Idle, To: Checking},
		{From: Checking, To: Authenticated},
	}))
	require.Equal(t, 1, rec.loading)
	require.Equal(t, 1, rec.content)
	require.Empty(t, nav.Routes())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.True(t, store.Logged())
}

func TestGuardRefreshRejected(t *testing.T) {
	var calls int32
	store := newTestStore(t, fakeAuthService(t, &calls), "expired")
	var nav navigation.Recorder
	var rec recorder

	state := mountAndWait(t, store, &nav, &rec)

	require.Equal(t, Unauthenticated, state)
	require.Empty(t, rec.diff([]transition{
		{From: Idle, To: Checking},
		{From: Checking, To: Unauthenticated},
	}))
	require.Equal(t, 0, rec.content)
	require.Equal(t, []string{navigation.LoginRoute}, nav.Routes())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.False(t, store.Logged())

	token, err := store.RefreshToken(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestGuardNoSession(t *testing.T) {
	var calls int32
	store := newTestStore(t, fakeAuthService(t, &calls), "")
	var nav navigation.Recorder
	var rec recorder

	state := mountAndWait(t, store, &nav, &rec)

	require.Equal(t, Unauthenticated, state)
	require.Empty(t, rec.diff([]transition{{From: Idle, To: Unauthenticated}}))
	require.Equal(t, 0, rec.loading)
	require.Equal(t, []string{navigation.LoginRoute}, nav.Routes())
	require.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGuardLoggedSkipsNetwork(t *testing.T) {
	var calls int32
	store := newTestStore(t, fakeAuthService(t, &calls), "r1")
	_, err := store.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	atomic.StoreInt32(&calls, 0)

	var nav navigation.Recorder
	var rec recorder
	state := mountAndWait(t, store, &nav, &rec)

	require.Equal(t, Authenticated, state)
	require.Empty(t, rec.diff([]transition{{From: Idle, To: Authenticated}}))
	require.Equal(t, 0, rec.loading)
	require.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

// blockingSessions holds Refresh until released.
type blockingSessions struct {
	release chan struct{}
	err     error
}

func (b *blockingSessions) Logged() bool { return false }

func (b *blockingSessions) RefreshToken(context.Context) (string, error) { return "r1", nil }

func (b *blockingSessions) Refresh(ctx context.Context, _ string) (*session.Credential, error) {
	<-b.release
	return &session.Credential{Access: "a2", Refresh: "r2"}, b.err
}

func TestGuardUnmountDiscardsResult(t *testing.T) {
	sessions := &blockingSessions{release: make(chan struct{})}
	var nav navigation.Recorder
	var rec recorder
	g, err := New(Config{Sessions: sessions, Navigator: &nav, Hooks: rec.hooks()})
	require.NoError(t, err)

	m := g.Mount(context.Background())
	require.Eventually(t, func() bool { return m.State() == Checking }, time.Second, 10*time.Millisecond)

	m.Unmount()
	m.Unmount()
	close(sessions.release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := m.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, Checking, state)
	require.Equal(t, 0, rec.content)
	require.Empty(t, nav.Routes())
}

func TestGuardConfig(t *testing.T) {
	_, err := New(Config{Navigator: &navigation.Recorder{}})
	require.Error(t, err)
	_, err = New(Config{Sessions: &blockingSessions{}})
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "checking", Checking.String())
	require.Equal(t, "unknown", State(42).String())
}
