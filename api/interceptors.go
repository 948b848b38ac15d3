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

	"github.com/go-resty/resty/v2"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"

	"github.com/gravitational/admin-panel/lib"
	"github.com/gravitational/admin-panel/lib/logger"
)

const (
	// HeaderToken carries the access token.
	HeaderToken = "X-Token"
	// HeaderAppVersion carries the client version.
	HeaderAppVersion = "X-App-Version"
	// HeaderAppType carries the client type.
	HeaderAppType = "X-App-Type"
	// HeaderRequestID correlates client and server logs.
	HeaderRequestID = "X-Request-Id"

	maxLoggedBody = 2048
)

// Call describes a single request travelling through the pipeline.
type Call struct {
	// ID is a random request id.
	ID string
	// Method is an HTTP method.
	Method string
	// URL is the absolute request URL without the query string.
	URL string
	// Options is the request descriptor.
	Options RequestOptions
	// Response is set once the request has been executed.
	Response *resty.Response
}

// RequestInterceptor decorates an outgoing request.
type RequestInterceptor func(ctx context.Context, call *Call, req *resty.Request) error

// ResponseInterceptor sees the classified outcome of a call, nil on success,
// and returns the error handed to the next interceptor.
type ResponseInterceptor func(ctx context.Context, call *Call, err error) error

// Chain is an ordered list of interceptors.
type Chain struct {
	Request  []RequestInterceptor
	Response []ResponseInterceptor
}

// TokenSource provides the current access token, empty if there is none.
// Implementations must read the session state afresh on every call.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Identity is the app identity sent with every authenticated request.
type Identity struct {
	Version string
	Type    string
}

// AuthHeaders attaches X-Token and the app identity headers, or strips all
// three when the call sets IgnoreAuthHeaders.
func AuthHeaders(tokens TokenSource, identity Identity) RequestInterceptor {
	return func(ctx context.Context, call *Call, req *resty.Request) error {
		if call.Options.IgnoreAuthHeaders {
			req.Header.Del(HeaderToken)
			req.Header.Del(HeaderAppVersion)
			req.Header.Del(HeaderAppType)
			return nil
		}

		token, err := tokens.AccessToken(ctx)
		if err != nil {
			return trace.Wrap(err, "failed to read the session")
		}
		if token != "" {
			req.SetHeader(HeaderToken, token)
		} else {
			req.Header.Del(HeaderToken)
		}
		if identity.Version != "" {
			req.SetHeader(HeaderAppVersion, identity.Version)
		}
		if identity.Type != "" {
			req.SetHeader(HeaderAppType, identity.Type)
		}
		return nil
	}
}

// LogFailures logs every failed call exactly once and passes the error on.
// 401 is passed on silently: it is expected while a session expires.
func LogFailures() ResponseInterceptor {
	return func(ctx context.Context, call *Call, err error) error {
		if err == nil {
			return nil
		}
		log := logger.Get(ctx)

		failure, _ := AsFailure(err)
		switch failure := failure.(type) {
		case *HTTPFailure:
			if failure.Status == http.StatusUnauthorized {
				return err
			}
			log.WithFields(logrus.Fields{
				"status": failure.Status,
				"body":   lib.Truncate(string(failure.Body), maxLoggedBody),
			}).Error("API request failed")
		case *TransportFailure:
			if failure.Canceled() {
				log.Debug("API request canceled")
				return err
			}
			log.WithError(failure.Err).WithField("timeout", failure.Timeout()).Error("API request got no response")
		default:
			log.WithError(err).Error("API request error")
		}
		return err
	}
}
