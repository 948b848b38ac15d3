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

package resources

import (
	"context"
	"time"

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/api"
)

const templatesPath = "/v1/admin/reminder-templates"

// Template is a reminder message template.
type Template struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	MessageTemplate string    `json:"message_template"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TemplateRequest creates or updates a template.
type TemplateRequest struct {
	Name            string `json:"name"`
	MessageTemplate string `json:"message_template"`
	IsActive        bool   `json:"is_active"`
}

// Check validates the request.
func (r TemplateRequest) Check() error {
	if r.Name == "" {
		return trace.BadParameter("missing template name")
	}
	if r.MessageTemplate == "" {
		return trace.BadParameter("missing message template")
	}
	return nil
}

// TemplateList is the list of templates.
type TemplateList struct {
	Items []Template `json:"items"`
	Total int        `json:"total"`
}

// Templates calls the reminder template endpoints.
type Templates struct {
	api *api.Client
}

// List returns all templates.
func (t *Templates) List(ctx context.Context, opts ...api.RequestOption) (*TemplateList, error) {
	var list TemplateList
	if err := t.api.Get(ctx, templatesPath, &list, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	if list.Total == 0 {
		list.Total = len(list.Items)
	}
	return &list, nil
}

// Create creates a template.
func (t *Templates) Create(ctx context.Context, req TemplateRequest, opts ...api.RequestOption) (*Template, error) {
	if err := req.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	var template Template
	if err := t.api.Post(ctx, templatesPath, req, &template, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &template, nil
}

// Update replaces a template.
func (t *Templates) Update(ctx context.Context, id int64, req TemplateRequest, opts ...api.RequestOption) (*Template, error) {
	if err := req.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	var template Template
	if err := t.api.Put(ctx, itemPath(templatesPath, id), req, &template, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &template, nil
}

// Delete deletes a template.
func (t *Templates) Delete(ctx context.Context, id int64, opts ...api.RequestOption) error {
	return trace.Wrap(t.api.Delete(ctx, itemPath(templatesPath, id), opts...))
}
