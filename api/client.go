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
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"

	"github.com/gravitational/admin-panel/lib/logger"
)

const (
	maxConns       = 100
	defaultTimeout = 10 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root relative paths are resolved against.
	BaseURL string
	// Timeout bounds a single call.
	Timeout time.Duration
	// Transport overrides the HTTP transport. Used by tests.
	Transport http.RoundTripper
	// Chain is the initial interceptor chain.
	Chain Chain
}

// CheckAndSetDefaults validates the config.
func (c *Config) CheckAndSetDefaults() error {
	if c.BaseURL == "" {
		return trace.BadParameter("missing BaseURL")
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Transport == nil {
		c.Transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxConnsPerHost:     maxConns,
			MaxIdleConnsPerHost: maxConns,
		}
	}
	return nil
}

// Client is the shared request pipeline: request interceptors, transport,
// classification, response interceptors and registered failure observers,
// in that order.
type Client struct {
	client  *resty.Client
	baseURL string

	mu        sync.RWMutex // protects the fields below
	chain     Chain
	observers []*Registration
}

type callKey struct{}

// NewClient builds a client. Retries stay disabled: every call is attempted once.
func NewClient(conf Config) (*Client, error) {
	if err := conf.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	c := &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		chain:   conf.Chain,
	}
	c.client = resty.NewWithClient(&http.Client{
		Timeout:   conf.Timeout,
		Transport: conf.Transport,
	}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	c.client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx := req.Context()
		call, ok := ctx.Value(callKey{}).(*Call)
		if !ok {
			return &ClientFailure{Message: "request is missing its call descriptor"}
		}
		for _, intercept := range c.requestChain() {
			if err := intercept(ctx, call, req); err != nil {
				return &ClientFailure{Message: "request interceptor failed", Err: err}
			}
		}
		return nil
	})
	return c, nil
}

// SetChain replaces the interceptor chain.
func (c *Client) SetChain(chain Chain) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chain = chain
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Observe registers a failure observer. Observers run after the response
// chain, only for failed calls, in registration order. The observer stays
// registered until Release is called.
func (c *Client) Observe(observer ResponseInterceptor) *Registration {
	reg := &Registration{client: c, observer: observer}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, reg)
	return reg
}

// Registration is a registered failure observer.
type Registration struct {
	client   *Client
	observer ResponseInterceptor
	once     sync.Once
}

// Release unregisters the observer. It is safe to call more than once.
func (r *Registration) Release() {
	r.once.Do(func() {
		c := r.client
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, reg := range c.observers {
			if reg == r {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	})
}

// Observers returns the number of registered observers.
func (c *Client) Observers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.observers)
}

func (c *Client) requestChain() []RequestInterceptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chain.Request
}

func (c *Client) responseChain() ([]ResponseInterceptor, []ResponseInterceptor) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	observers := make([]ResponseInterceptor, 0, len(c.observers))
	for _, reg := range c.observers {
		observers = append(observers, reg.observer)
	}
	return c.chain.Response, observers
}

// URL resolves a path against the client or the overridden base URL.
func (c *Client) URL(path string, options RequestOptions) string {
	base := c.baseURL
	if options.BaseURL != "" {
		base = strings.TrimRight(options.BaseURL, "/")
	}
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// Do executes a call through the pipeline. body and result may be nil.
// The returned error, if any, wraps a Failure.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}, opts ...RequestOption) (*resty.Response, error) {
	options := NewRequestOptions(opts...)
	call := &Call{
		ID:      uuid.NewString(),
		Method:  method,
		URL:     c.URL(path, options),
		Options: options,
	}
	ctx, log := logger.WithFields(ctx, logrus.Fields{
		"request_id": call.ID,
		"method":     call.Method,
		"url":        call.URL,
	})

	req := c.client.R().
		SetContext(context.WithValue(ctx, callKey{}, call)).
		SetHeader(HeaderRequestID, call.ID)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	if len(options.Query) > 0 {
		req.SetQueryParamsFromValues(options.Query)
	}

	log.Debug("Sending API request")
	resp, err := req.Execute(method, call.URL)
	call.Response = resp

	err = Classify(resp, err)
	chain, observers := c.responseChain()
	for _, intercept := range chain {
		err = intercept(ctx, call, err)
	}
	if err != nil {
		for _, observe := range observers {
			err = observe(ctx, call, err)
		}
		return resp, trace.Wrap(err)
	}
	return resp, nil
}

// Get fetches path into result.
func (c *Client) Get(ctx context.Context, path string, result interface{}, opts ...RequestOption) error {
	_, err := c.Do(ctx, http.MethodGet, path, nil, result, opts...)
	return trace.Wrap(err)
}

// Post sends body to path and decodes the answer into result.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}, opts ...RequestOption) error {
	_, err := c.Do(ctx, http.MethodPost, path, body, result, opts...)
	return trace.Wrap(err)
}

// Put sends body to path and decodes the answer into result.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}, opts ...RequestOption) error {
	_, err := c.Do(ctx, http.MethodPut, path, body, result, opts...)
	return trace.Wrap(err)
}

// Delete deletes path.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
	return trace.Wrap(err)
}
