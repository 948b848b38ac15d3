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

package session

import (
	"time"

	"github.com/gravitational/trace"
	jsoniter "github.com/json-iterator/go"
)

// StoreKey is the fixed storage key of the session record.
const StoreKey = "admin-token-store"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Credential is an access/refresh token pair. Both tokens are opaque.
type Credential struct {
	// Access authenticates API calls.
	Access string `json:"access"`
	// Refresh is exchanged for a new pair.
	Refresh string `json:"refresh"`
	// Type is the token type reported by the auth service.
	Type string `json:"type"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in"`
	// IssuedAt is stamped by the store when the pair is saved.
	IssuedAt time.Time `json:"issued_at"`
}

// ExpiresAt is an estimate of the access token expiry. Zero if unknown.
func (c Credential) ExpiresAt() time.Time {
	if c.IssuedAt.IsZero() || c.ExpiresIn <= 0 {
		return time.Time{}
	}
	return c.IssuedAt.Add(time.Duration(c.ExpiresIn) * time.Second)
}

// Record is the session record.
type Record struct {
	Logged     bool
	Credential *Credential
}

// Check enforces that a logged record carries a credential.
func (r Record) Check() error {
	if r.Logged && r.Credential == nil {
		return trace.BadParameter("session record is logged in but has no credential")
	}
	return nil
}

// persistedRecord is the durable shape: {"state": {"token": ..., "logged": ...}}.
type persistedRecord struct {
	State struct {
		Token  *Credential `json:"token"`
		Logged bool        `json:"logged"`
	} `json:"state"`
}

func encodeRecord(r Record) ([]byte, error) {
	if err := r.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	var p persistedRecord
	p.State.Token = r.Credential
	p.State.Logged = r.Logged
	payload, err := json.Marshal(&p)
	return payload, trace.Wrap(err)
}

func decodeRecord(payload []byte) (Record, error) {
	if len(payload) == 0 {
		return Record{}, nil
	}
	var p persistedRecord
	if err := json.Unmarshal(payload, &p); err != nil {
		return Record{}, trace.Wrap(err, "malformed session record")
	}
	r := Record{Logged: p.State.Logged, Credential: p.State.Token}
	if err := r.Check(); err != nil {
		return Record{}, trace.Wrap(err)
	}
	return r, nil
}
