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

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestAuthHeadersAttached(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	ctx, _ := newTestContext()

	var result map[string]string
	require.NoError(t, client.Get(ctx, "/items/7", &result))
	require.Equal(t, "7", result["id"])

	headers := fake.lastHeaders(t)
	require.Equal(t, "access-1", headers.Get(HeaderToken))
	require.Equal(t, "1.4.0", headers.Get(HeaderAppVersion))
	require.Equal(t, "admin", headers.Get(HeaderAppType))
	require.NotEmpty(t, headers.Get(HeaderRequestID))
}

func TestAuthHeadersWithoutSession(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens(""))
	ctx, _ := newTestContext()

	require.NoError(t, client.Get(ctx, "/items/7", nil))

	headers := fake.lastHeaders(t)
	require.Empty(t, headers.Get(HeaderToken))
	require.Equal(t, "1.4.0", headers.Get(HeaderAppVersion))
}

func TestIgnoreAuthHeadersStripsEverything(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	ctx, _ := newTestContext()

	require.NoError(t, client.Get(ctx, "/items/7", nil, IgnoreAuthHeaders()))

	headers := fake.lastHeaders(t)
	require.Empty(t, headers.Values(HeaderToken))
	require.Empty(t, headers.Values(HeaderAppVersion))
	require.Empty(t, headers.Values(HeaderAppType))
}

func TestTokenIsReadPerRequest(t *testing.T) {
	fake := newFakeAPI(t)
	tokens := &rotatingTokens{tokens: []string{"first", "second"}}
	client := newTestClient(t, fake.srv.URL, tokens)
	ctx, _ := newTestContext()

	require.NoError(t, client.Get(ctx, "/items/1", nil))
	require.Equal(t, "first", fake.lastHeaders(t).Get(HeaderToken))
	require.NoError(t, client.Get(ctx, "/items/2", nil))
	require.Equal(t, "second", fake.lastHeaders(t).Get(HeaderToken))
}

type rotatingTokens struct {
	tokens []string
	calls  int
}

func (r *rotatingTokens) AccessToken(context.Context) (string, error) {
	token := r.tokens[r.calls%len(r.tokens)]
	r.calls++
	return token, nil
}

func TestHTTPFailureIsLoggedOnce(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	ctx, hook := newTestContext()

	err := client.Get(ctx, "/status/500", nil)
	require.Error(t, err)

	failure, ok := AsFailure(err)
	require.True(t, ok)
	httpErr, ok := failure.(*HTTPFailure)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, httpErr.Status)
	require.Contains(t, string(httpErr.Body), "request failed")

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, http.StatusInternalServerError, entry.Data["status"])
	require.NotEmpty(t, entry.Data["request_id"])

	payload, err := DecodeErrorPayload(httpErr.Body)
	require.NoError(t, err)
	require.Equal(t, "FAILED", payload.Error.Code)
	require.Equal(t, []FieldError{{Field: "title", Message: "required"}}, payload.Error.Details)
}

func TestUnauthorizedIsNotLogged(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("expired"))
	ctx, hook := newTestContext()

	err := client.Get(ctx, "/status/401", nil)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, failure.StatusCode())
	require.Empty(t, hook.AllEntries())
}

func TestTransportFailureIsLoggedOnce(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	fake.srv.Close()
	ctx, hook := newTestContext()

	err := client.Get(ctx, "/items/1", nil)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.IsType(t, &TransportFailure{}, failure)
	require.Zero(t, failure.StatusCode())
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, "API request got no response", hook.LastEntry().Message)
}

func TestCanceledCallIsNotLoggedAsFailure(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	ctx, hook := newTestContext()
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	err := client.Get(ctx, "/items/1", nil)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	transport, ok := failure.(*TransportFailure)
	require.True(t, ok)
	require.True(t, transport.Canceled())
	require.False(t, transport.Timeout())
	require.Empty(t, hook.AllEntries())
}

func TestUndecodableResponseIsClientFailure(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	ctx, hook := newTestContext()

	var result map[string]string
	err := client.Get(ctx, "/garbage", &result)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.IsType(t, &ClientFailure{}, failure)
	require.Len(t, hook.AllEntries(), 1)
}

func TestBrokenSessionFailsBeforeSending(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, brokenTokens{})
	ctx, hook := newTestContext()

	err := client.Get(ctx, "/items/1", nil)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	require.IsType(t, &ClientFailure{}, failure)
	require.Len(t, hook.AllEntries(), 1)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Empty(t, fake.headers)
}

type brokenTokens struct{}

func (brokenTokens) AccessToken(context.Context) (string, error) {
	return "", context.DeadlineExceeded
}

func TestObserversRunOnFailureOnly(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, fake.srv.URL, staticTokens("access-1"))
	ctx, _ := newTestContext()

	var seen []int
	reg := client.Observe(func(_ context.Context, call *Call, err error) error {
		failure, _ := AsFailure(err)
		seen = append(seen, failure.StatusCode())
		return err
	})
	require.Equal(t, 1, client.Observers())

	require.NoError(t, client.Get(ctx, "/items/1", nil))
	require.Error(t, client.Get(ctx, "/status/404", nil))
	require.Equal(t, []int{http.StatusNotFound}, seen)

	reg.Release()
	reg.Release()
	require.Zero(t, client.Observers())

	require.Error(t, client.Get(ctx, "/status/404", nil))
	require.Len(t, seen, 1)
}

func TestBaseURLOverride(t *testing.T) {
	fake := newFakeAPI(t)
	client := newTestClient(t, "http://127.0.0.1:1", staticTokens(""))
	ctx, _ := newTestContext()

	require.Equal(t, fake.srv.URL+"/items/3", client.URL("items/3", NewRequestOptions(WithBaseURL(fake.srv.URL+"/"))))
	require.NoError(t, client.Get(ctx, "/items/3", nil, WithBaseURL(fake.srv.URL)))
}
