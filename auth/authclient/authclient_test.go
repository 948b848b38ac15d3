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

package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/auth/session"
)

type fakeAuth struct {
	srv     *httptest.Server
	headers http.Header
}

func newFakeAuth(t *testing.T) *fakeAuth {
	router := httprouter.New()
	auth := &fakeAuth{srv: httptest.NewServer(router)}
	t.Cleanup(auth.srv.Close)

	writeJSON := func(rw http.ResponseWriter, code int, v interface{}) {
		rw.Header().Add("Content-Type", "application/json")
		rw.WriteHeader(code)
		require.NoError(t, json.NewEncoder(rw).Encode(v))
	}

	router.POST("/auth/login", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		auth.headers = r.Header.Clone()
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username != "admin" || req.Password != "secret" {
			writeJSON(rw, http.StatusUnauthorized, map[string]string{"error": "invalid_credentials"})
			return
		}
		writeJSON(rw, http.StatusOK, tokenResponse{AccessToken: "a1", RefreshToken: "r1", TokenType: "bearer", ExpiresIn: 900})
	})
	router.POST("/auth/refresh", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		auth.headers = r.Header.Clone()
		var req refreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.RefreshToken {
		case "r1":
			writeJSON(rw, http.StatusOK, tokenResponse{AccessToken: "a2", RefreshToken: "r2", TokenType: "bearer", ExpiresIn: 900})
		case "half":
			writeJSON(rw, http.StatusOK, tokenResponse{AccessToken: "a2"})
		default:
			writeJSON(rw, http.StatusUnauthorized, map[string]string{"error": "invalid_refresh_token"})
		}
	})
	return auth
}

type staticTokens string

func (s staticTokens) AccessToken(context.Context) (string, error) { return string(s), nil }

func newTestClient(t *testing.T, authURL string) *Client {
	apiClient, err := api.NewClient(api.Config{
		BaseURL: "http://api.invalid",
		Chain: api.Chain{
			Request: []api.RequestInterceptor{api.AuthHeaders(staticTokens("stale"), api.Identity{Version: "1.4.0", Type: "admin"})},
		},
	})
	require.NoError(t, err)
	client, err := New(apiClient, authURL)
	require.NoError(t, err)
	return client
}

func TestLogin(t *testing.T) {
	auth := newFakeAuth(t)
	client := newTestClient(t, auth.srv.URL)

	cred, err := client.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	require.Equal(t, &session.Credential{Access: "a1", Refresh: "r1", Type: "bearer", ExpiresIn: 900}, cred)

	require.Empty(t, auth.headers.Get(api.HeaderToken))
	require.Empty(t, auth.headers.Get(api.HeaderAppVersion))
	require.Empty(t, auth.headers.Get(api.HeaderAppType))
}

func TestLoginRejected(t *testing.T) {
	auth := newFakeAuth(t)
	client := newTestClient(t, auth.srv.URL)

	_, err := client.Login(context.Background(), "admin", "wrong")
	var httpErr *api.HTTPFailure
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusUnauthorized, httpErr.Status)
	require.JSONEq(t, `{"error":"invalid_credentials"}`, string(httpErr.Body))
}

func TestRefresh(t *testing.T) {
	auth := newFakeAuth(t)
	client := newTestClient(t, auth.srv.URL)

	cred, err := client.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "a2", cred.Access)
	require.Equal(t, "r2", cred.Refresh)

	_, err = client.Refresh(context.Background(), "half")
	var clientErr *api.ClientFailure
	require.True(t, errors.As(err, &clientErr))
}

func TestStoreWithAuthClient(t *testing.T) {
	ctx := context.Background()
	auth := newFakeAuth(t)
	store, err := session.NewStore(session.Config{Authorizer: newTestClient(t, auth.srv.URL)})
	require.NoError(t, err)

	_, err = store.Login(ctx, "admin", "wrong")
	var failure *api.AuthFailure
	require.True(t, errors.As(err, &failure))
	require.JSONEq(t, `{"error":"invalid_credentials"}`, string(failure.Payload))
	require.False(t, store.Logged())

	_, err = store.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.True(t, store.Logged())

	cred, err := store.Refresh(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "a2", cred.Access)
	require.True(t, store.Logged())
}
