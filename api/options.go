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
	"net/url"

	"github.com/gravitational/admin-panel/lib/statusset"
)

// RequestOptions is the per-call request descriptor. It lives as long as a
// single call and is never persisted.
type RequestOptions struct {
	// IgnoreAuthHeaders strips the token and app identity headers.
	IgnoreAuthHeaders bool
	// IgnoreErrorStatuses lists statuses the error boundary must not navigate on.
	IgnoreErrorStatuses statusset.StatusSet
	// IgnoreAllErrors keeps the error boundary away from this call entirely.
	IgnoreAllErrors bool
	// BaseURL overrides the client base URL, e.g. for the auth service.
	BaseURL string
	// Query is appended to the request URL.
	Query url.Values
}

// RequestOption modifies RequestOptions.
type RequestOption func(*RequestOptions)

// NewRequestOptions applies the options in order.
func NewRequestOptions(opts ...RequestOption) RequestOptions {
	var options RequestOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// IgnoreAuthHeaders sends the request without X-Token and app identity headers.
func IgnoreAuthHeaders() RequestOption {
	return func(o *RequestOptions) {
		o.IgnoreAuthHeaders = true
	}
}

// IgnoreErrorStatuses lets the caller handle the given statuses locally.
func IgnoreErrorStatuses(codes ...int) RequestOption {
	return func(o *RequestOptions) {
		if o.IgnoreErrorStatuses == nil {
			o.IgnoreErrorStatuses = statusset.NewWithCap(len(codes))
		}
		o.IgnoreErrorStatuses.Add(codes...)
	}
}

// IgnoreAllErrors lets the caller handle every failure locally.
func IgnoreAllErrors() RequestOption {
	return func(o *RequestOptions) {
		o.IgnoreAllErrors = true
	}
}

// WithBaseURL sends the request to another service root.
func WithBaseURL(baseURL string) RequestOption {
	return func(o *RequestOptions) {
		o.BaseURL = baseURL
	}
}

// WithQuery sets the query string.
func WithQuery(query url.Values) RequestOption {
	return func(o *RequestOptions) {
		o.Query = query
	}
}
