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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/resources"
)

// NotificationsCmd groups the notification commands.
type NotificationsCmd struct {
	List   NotificationsListCmd   `cmd:"true" help:"List notifications"`
	Get    NotificationsGetCmd    `cmd:"true" help:"Show a notification"`
	Send   NotificationsSendCmd   `cmd:"true" help:"Send a notification to a user"`
	Update NotificationsUpdateCmd `cmd:"true" help:"Change the status of a notification"`
	Delete NotificationsDeleteCmd `cmd:"true" help:"Delete a notification"`
}

// NotificationsListCmd lists notifications.
type NotificationsListCmd struct {
	Page   int    `help:"Page number" default:"1"`
	Limit  int    `help:"Page size" default:"20"`
	Status string `help:"Filter by status: pending, sent or failed"`
}

func (c *NotificationsListCmd) Run(cli *CLI) error {
	status, err := resources.ParseNotificationStatus(c.Status)
	if err != nil {
		return trace.Wrap(err)
	}
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		list, err := app.resources.Notifications.List(ctx, resources.NotificationQuery{
			Page:   resources.Page{Page: c.Page, Limit: c.Limit},
			Status: status,
		})
		if err != nil {
			return trace.Wrap(err)
		}
		printNotifications(app.conf.Out, list.Items)
		fmt.Fprintf(app.conf.Out, "Page %d of %d, %d notifications total.\n", list.Page, list.Pages, list.Total)
		return nil
	})
}

func printNotifications(w io.Writer, items []resources.Notification) {
	table := newTable(w, "ID", "User", "Status", "Created", "Sent", "Message")
	for _, n := range items {
		table.Append([]string{
			formatID(n.ID),
			formatID(n.TelegramUserID),
			string(n.Status),
			formatTime(n.CreatedAt),
			formatTimePtr(n.SentAt),
			cell(n.Message),
		})
	}
	table.Render()
}

// NotificationsGetCmd shows a notification.
type NotificationsGetCmd struct {
	ID int64 `arg:"true" help:"Notification ID"`
}

func (c *NotificationsGetCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		n, err := app.resources.Notifications.Get(ctx, c.ID)
		if err != nil {
			return trace.Wrap(err)
		}
		printNotifications(app.conf.Out, []resources.Notification{*n})
		return nil
	})
}

// NotificationsSendCmd sends a notification.
type NotificationsSendCmd struct {
	User    int64  `arg:"true" help:"Telegram user ID"`
	Message string `arg:"true" help:"Message text"`
}

func (c *NotificationsSendCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		n, err := app.resources.Notifications.Send(ctx, resources.SendNotificationRequest{
			TelegramUserID: c.User,
			Message:        c.Message,
		})
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Fprintf(app.conf.Out, "Notification %d is %s.\n", n.ID, n.Status)
		return nil
	})
}

// NotificationsUpdateCmd changes a notification status.
type NotificationsUpdateCmd struct {
	ID     int64  `arg:"true" help:"Notification ID"`
	Status string `arg:"true" help:"New status: pending, sent or failed"`
}

func (c *NotificationsUpdateCmd) Run(cli *CLI) error {
	status, err := resources.ParseNotificationStatus(c.Status)
	if err != nil {
		return trace.Wrap(err)
	}
	if status == "" {
		return trace.BadParameter("missing status")
	}
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		req := resources.UpdateNotificationRequest{Status: status}
		if req.Status == resources.NotificationSent {
			now := app.conf.Clock.Now().UTC()
			req.SentAt = &now
		}
		n, err := app.resources.Notifications.Update(ctx, c.ID, req)
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Fprintf(app.conf.Out, "Notification %d is %s.\n", n.ID, n.Status)
		return nil
	})
}

// NotificationsDeleteCmd deletes a notification.
type NotificationsDeleteCmd struct {
	ID int64 `arg:"true" help:"Notification ID"`
}

func (c *NotificationsDeleteCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		if err := app.resources.Notifications.Delete(ctx, c.ID); err != nil {
			return trace.Wrap(err)
		}
		fmt.Fprintf(app.conf.Out, "Notification %d deleted.\n", c.ID)
		return nil
	})
}
