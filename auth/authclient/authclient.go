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

// Package authclient calls the login and refresh endpoints of the auth service.
package authclient

import (
	"context"

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/auth/session"
)

const (
	loginPath   = "/auth/login"
	refreshPath = "/auth/refresh"
)

// Client is a session.Authorizer backed by the shared API pipeline. Auth
// calls never carry auth headers and never reach the error boundary.
type Client struct {
	api     *api.Client
	authURL string
}

var _ session.Authorizer = (*Client)(nil)

// New creates a client. An empty authURL means the API base URL.
func New(client *api.Client, authURL string) (*Client, error) {
	if client == nil {
		return nil, trace.BadParameter("missing API client")
	}
	if authURL == "" {
		authURL = client.BaseURL()
	}
	return &Client{api: client, authURL: authURL}, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Login implements session.Authorizer.
func (c *Client) Login(ctx context.Context, username, password string) (*session.Credential, error) {
	if username == "" {
		return nil, trace.BadParameter("missing username")
	}
	return c.exchange(ctx, loginPath, loginRequest{Username: username, Password: password})
}

// Refresh implements session.Authorizer.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*session.Credential, error) {
	return c.exchange(ctx, refreshPath, refreshRequest{RefreshToken: refreshToken})
}

func (c *Client) exchange(ctx context.Context, path string, body interface{}) (*session.Credential, error) {
	var result tokenResponse
	err := c.api.Post(ctx, path, body, &result,
		api.WithBaseURL(c.authURL),
		api.IgnoreAuthHeaders(),
		api.IgnoreAllErrors(),
	)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		return nil, trace.Wrap(&api.ClientFailure{Message: "auth service response is missing tokens"})
	}
	return &session.Credential{
		Access:    result.AccessToken,
		Refresh:   result.RefreshToken,
		Type:      result.TokenType,
		ExpiresIn: result.ExpiresIn,
	}, nil
}
