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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/gravitational/admin-panel/lib/logger"
)

type staticTokens string

func (s staticTokens) AccessToken(context.Context) (string, error) {
	return string(s), nil
}

// fakeAPI echoes the request headers it received and answers with the
// status given in the path.
type fakeAPI struct {
	srv *httptest.Server

	mu      sync.Mutex
	headers []http.Header
}

func newFakeAPI(t *testing.T) *fakeAPI {
	router := httprouter.New()
	api := &fakeAPI{srv: httptest.NewServer(router)}
	t.Cleanup(api.srv.Close)

	router.GET("/items/:id", func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		api.record(r)
		rw.Header().Add("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		err := json.NewEncoder(rw).Encode(map[string]string{"id": ps.ByName("id")})
		require.NoError(t, err)
	})
	router.GET("/status/:code", func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		api.record(r)
		var code int
		err := json.Unmarshal([]byte(ps.ByName("code")), &code)
		require.NoError(t, err)
		rw.Header().Add("Content-Type", "application/json")
		rw.WriteHeader(code)
		_, err = rw.Write([]byte(`{"success":false,"error":{"code":"FAILED","message":"request failed","details":[{"field":"title","message":"required"}]}}`))
		require.NoError(t, err)
	})
	router.GET("/garbage", func(rw http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		api.record(r)
		rw.Header().Add("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		_, err := rw.Write([]byte(`{"id":`))
		require.NoError(t, err)
	})
	return api
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headers = append(f.headers, r.Header.Clone())
}

func (f *fakeAPI) lastHeaders(t *testing.T) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.headers)
	return f.headers[len(f.headers)-1]
}

func newTestClient(t *testing.T, baseURL string, tokens TokenSource) *Client {
	client, err := NewClient(Config{
		BaseURL: baseURL,
		Chain: Chain{
			Request:  []RequestInterceptor{AuthHeaders(tokens, Identity{Version: "1.4.0", Type: "admin"})},
			Response: []ResponseInterceptor{LogFailures()},
		},
	})
	require.NoError(t, err)
	return client
}

func newTestContext() (context.Context, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.InfoLevel)
	return logger.WithLogger(context.Background(), log), hook
}
