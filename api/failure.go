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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/gravitational/trace"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/gravitational/admin-panel/lib"
)

// Failure is a classified request failure. The set of implementations is
// closed: *AuthFailure, *HTTPFailure, *TransportFailure and *ClientFailure.
type Failure interface {
	error
	// StatusCode returns the HTTP status or 0 when the server did not answer.
	StatusCode() int

	failure()
}

// AuthFailure is a rejected login or refresh. It is terminal for the session.
type AuthFailure struct {
	// Payload is the server error payload, or {"error": "<message>"} when
	// the server did not send one.
	Payload json.RawMessage
	// Err is the failure that caused it.
	Err error
}

// NewAuthFailure normalises a login/refresh failure.
func NewAuthFailure(err error) *AuthFailure {
	var httpErr *HTTPFailure
	if errors.As(err, &httpErr) && gjson.ValidBytes(httpErr.Body) && len(httpErr.Body) > 0 {
		return &AuthFailure{Payload: json.RawMessage(httpErr.Body), Err: err}
	}
	payload, _ := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(map[string]string{"error": errorMessage(err)})
	return &AuthFailure{Payload: payload, Err: err}
}

func (e *AuthFailure) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message())
}

// Message returns a human readable message from the payload.
func (e *AuthFailure) Message() string {
	if msg := PayloadMessage(e.Payload); msg != "" {
		return msg
	}
	return string(e.Payload)
}

func (e *AuthFailure) StatusCode() int {
	var httpErr *HTTPFailure
	if errors.As(e.Err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

func (e *AuthFailure) Unwrap() error { return e.Err }

func (*AuthFailure) failure() {}

// HTTPFailure is a response with status >= 400.
type HTTPFailure struct {
	Status int
	Body   []byte
}

func (e *HTTPFailure) Error() string {
	if msg := PayloadMessage(e.Body); msg != "" {
		return fmt.Sprintf("http error code=%d, message=%s", e.Status, msg)
	}
	return fmt.Sprintf("http error code=%d (%s)", e.Status, http.StatusText(e.Status))
}

func (e *HTTPFailure) StatusCode() int { return e.Status }

func (*HTTPFailure) failure() {}

// TransportFailure means no response was received: network error or timeout.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("no response from server: %v", e.Err)
}

// Timeout reports whether the request ran out of time.
func (e *TransportFailure) Timeout() bool {
	var netErr interface{ Timeout() bool }
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return lib.IsDeadline(e.Err)
}

// Canceled reports whether the caller gave up on the request. Such a call
// did not fail on the network: its result is just discarded.
func (e *TransportFailure) Canceled() bool {
	return lib.IsCanceled(e.Err)
}

func (e *TransportFailure) StatusCode() int { return 0 }

func (e *TransportFailure) Unwrap() error { return e.Err }

func (*TransportFailure) failure() {}

// ClientFailure is a request that could not be built or a response that
// could not be processed.
type ClientFailure struct {
	Message string
	Err     error
}

func (e *ClientFailure) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ClientFailure) StatusCode() int { return 0 }

func (e *ClientFailure) Unwrap() error { return e.Err }

func (*ClientFailure) failure() {}

// Classify turns the outcome of a resty call into a Failure, or nil on success.
func Classify(resp *resty.Response, err error) error {
	if resp != nil && resp.RawResponse != nil && resp.IsError() {
		return &HTTPFailure{Status: resp.StatusCode(), Body: resp.Body()}
	}
	if err == nil {
		return nil
	}
	var failure Failure
	if errors.As(err, &failure) {
		return failure
	}
	switch {
	case resp == nil:
		return &ClientFailure{Message: "request was not sent", Err: err}
	case resp.RawResponse == nil:
		return &TransportFailure{Err: err}
	default:
		return &ClientFailure{Message: "failed to process response", Err: err}
	}
}

// AsFailure extracts a Failure from a possibly wrapped error.
func AsFailure(err error) (Failure, bool) {
	var failure Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// PayloadMessage looks up a human readable message in an error payload.
func PayloadMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"error.message", "error", "detail", "message"} {
		if result := gjson.GetBytes(body, path); result.Type == gjson.String {
			return result.String()
		}
	}
	return ""
}

// FieldError is a single validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorPayload is the admin API error envelope.
type ErrorPayload struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string       `json:"code"`
		Message string       `json:"message"`
		Details []FieldError `json:"details"`
	} `json:"error"`
}

// DecodeErrorPayload decodes the admin API error envelope from a failure body.
func DecodeErrorPayload(body []byte) (*ErrorPayload, error) {
	var payload ErrorPayload
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &payload); err != nil {
		return nil, trace.Wrap(err)
	}
	if payload.Error.Code == "" && payload.Error.Message == "" {
		return nil, trace.NotFound("body does not contain an error envelope")
	}
	return &payload, nil
}

func errorMessage(err error) string {
	if failure, ok := AsFailure(err); ok {
		switch f := failure.(type) {
		case *TransportFailure:
			return f.Err.Error()
		case *ClientFailure:
			return f.Error()
		}
	}
	if err == nil {
		return "unknown error"
	}
	return trace.UserMessage(err)
}
