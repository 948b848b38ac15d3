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

const usersPath = "/admin/telegram-users"

// User is a bot user as listed in the panel.
type User struct {
	ID               int64     `json:"id"`
	TelegramID       int64     `json:"telegram_id"`
	Username         string    `json:"username"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	SubscriptionType string    `json:"subscription_type"`
	LastActivity     time.Time `json:"last_activity"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserDetails extends User with activity counters.
type UserDetails struct {
	User
	ReminderSentAt  *time.Time `json:"reminder_sent_at"`
	ActivitiesCount int        `json:"activities_count"`
	QuestionsCount  int        `json:"questions_count"`
}

// UserQuery filters the user list.
type UserQuery struct {
	Page
	Search string `url:"search,omitempty"`
	// SubscriptionTypes is sent comma separated.
	SubscriptionTypes []string `url:"subscription_type,omitempty,comma"`
}

// UserList is a page of users.
type UserList struct {
	PageInfo
	Items []User `json:"items"`
}

// Users calls the user endpoints.
type Users struct {
	api *api.Client
}

// List returns a page of users.
func (u *Users) List(ctx context.Context, q UserQuery, opts ...api.RequestOption) (*UserList, error) {
	opts, err := withQuery(q, opts)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var list UserList
	if err := u.api.Get(ctx, usersPath+"/", &list, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &list, nil
}

// Get returns a single user.
func (u *Users) Get(ctx context.Context, id int64, opts ...api.RequestOption) (*UserDetails, error) {
	var user UserDetails
	if err := u.api.Get(ctx, itemPath(usersPath, id), &user, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &user, nil
}
