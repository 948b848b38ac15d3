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

// Package resources provides typed calls to the admin API endpoints. All
// calls go through the shared pipeline and accept per-call request options.
package resources

import (
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/api"
)

// Client groups the resource clients.
type Client struct {
	Users         *Users
	Notifications *Notifications
	Templates     *Templates
	Analytics     *Analytics
	Ratings       *Ratings
	Activities    *Activities
}

// New creates resource clients on top of client.
func New(client *api.Client) (*Client, error) {
	if client == nil {
		return nil, trace.BadParameter("missing API client")
	}
	return &Client{
		Users:         &Users{api: client},
		Notifications: &Notifications{api: client},
		Templates:     &Templates{api: client},
		Analytics:     &Analytics{api: client},
		Ratings:       &Ratings{api: client},
		Activities:    &Activities{api: client},
	}, nil
}

// Page selects a page of a list.
type Page struct {
	Page  int `url:"page,omitempty"`
	Limit int `url:"limit,omitempty"`
}

// PageInfo describes a returned page.
type PageInfo struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// withQuery encodes q into request options. Empty fields are dropped.
func withQuery(q interface{}, opts []api.RequestOption) ([]api.RequestOption, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if len(values) == 0 {
		return opts, nil
	}
	return append([]api.RequestOption{api.WithQuery(values)}, opts...), nil
}

func itemPath(collection string, id int64) string {
	return collection + "/" + url.PathEscape(strconv.FormatInt(id, 10))
}
