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

const notificationsPath = "/v1/admin/notifications"

// NotificationStatus is the delivery status of a notification.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// ParseNotificationStatus validates a status name. An empty name is allowed
// and means any status.
func ParseNotificationStatus(s string) (NotificationStatus, error) {
	switch status := NotificationStatus(s); status {
	case "", NotificationPending, NotificationSent, NotificationFailed:
		return status, nil
	default:
		return "", trace.BadParameter("unknown notification status %q, expected one of pending, sent, failed", s)
	}
}

// Notification is a message to a bot user.
type Notification struct {
	ID             int64              `json:"id"`
	TelegramUserID int64              `json:"telegram_user_id"`
	Message        string             `json:"message"`
	Status         NotificationStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	SentAt         *time.Time         `json:"sent_at"`
	TemplateID     *int64             `json:"template_id"`
}

// NotificationQuery filters the notification list.
type NotificationQuery struct {
	Page
	Status NotificationStatus `url:"status,omitempty"`
}

// NotificationList is a page of notifications.
type NotificationList struct {
	PageInfo
	Items []Notification `json:"items"`
}

// SendNotificationRequest queues a message to a user.
type SendNotificationRequest struct {
	TelegramUserID int64  `json:"telegram_user_id"`
	Message        string `json:"message"`
}

// Check validates the request.
func (r SendNotificationRequest) Check() error {
	if r.TelegramUserID == 0 {
		return trace.BadParameter("missing telegram user id")
	}
	if r.Message == "" {
		return trace.BadParameter("missing message")
	}
	return nil
}

// UpdateNotificationRequest changes the delivery state.
type UpdateNotificationRequest struct {
	Status NotificationStatus `json:"status,omitempty"`
	SentAt *time.Time         `json:"sent_at,omitempty"`
}

// Notifications calls the notification endpoints.
type Notifications struct {
	api *api.Client
}

// List returns a page of notifications.
func (n *Notifications) List(ctx context.Context, q NotificationQuery, opts ...api.RequestOption) (*NotificationList, error) {
	opts, err := withQuery(q, opts)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var list NotificationList
	if err := n.api.Get(ctx, notificationsPath, &list, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &list, nil
}

// Get returns a single notification.
func (n *Notifications) Get(ctx context.Context, id int64, opts ...api.RequestOption) (*Notification, error) {
	var notification Notification
	if err := n.api.Get(ctx, itemPath(notificationsPath, id), &notification, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &notification, nil
}

// Send queues a new notification.
func (n *Notifications) Send(ctx context.Context, req SendNotificationRequest, opts ...api.RequestOption) (*Notification, error) {
	if err := req.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	var notification Notification
	if err := n.api.Post(ctx, notificationsPath, req, &notification, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &notification, nil
}

// Update changes a notification.
func (n *Notifications) Update(ctx context.Context, id int64, req UpdateNotificationRequest, opts ...api.RequestOption) (*Notification, error) {
	var notification Notification
	if err := n.api.Put(ctx, itemPath(notificationsPath, id), req, &notification, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &notification, nil
}

// Delete deletes a notification.
func (n *Notifications) Delete(ctx context.Context, id int64, opts ...api.RequestOption) error {
	return trace.Wrap(n.api.Delete(ctx, itemPath(notificationsPath, id), opts...))
}
