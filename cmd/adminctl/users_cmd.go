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
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/api"
	"github.com/gravitational/admin-panel/resources"
)

// UsersCmd groups the user commands.
type UsersCmd struct {
	List UsersListCmd `cmd:"true" help:"List users"`
	Get  UsersGetCmd  `cmd:"true" help:"Show a user"`
}

// UsersListCmd lists users.
type UsersListCmd struct {
	Page         int      `help:"Page number" default:"1"`
	Limit        int      `help:"Page size" default:"20"`
	Search       string   `help:"Search by name or username"`
	Subscription []string `help:"Comma-separated subscription types"`
}

func (c *UsersListCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		list, err := app.resources.Users.List(ctx, resources.UserQuery{
			Page:              resources.Page{Page: c.Page, Limit: c.Limit},
			Search:            c.Search,
			SubscriptionTypes: c.Subscription,
		})
		if err != nil {
			return trace.Wrap(err)
		}
		table := newTable(app.conf.Out, "ID", "Telegram ID", "Username", "Name", "Subscription", "Last activity")
		for _, u := range list.Items {
			table.Append([]string{
				formatID(u.ID),
				formatID(u.TelegramID),
				u.Username,
				cell(u.FirstName + " " + u.LastName),
				u.SubscriptionType,
				formatTime(u.LastActivity),
			})
		}
		table.Render()
		fmt.Fprintf(app.conf.Out, "Page %d of %d, %d users total.\n", list.Page, list.Pages, list.Total)
		return nil
	})
}

// UsersGetCmd shows a user.
type UsersGetCmd struct {
	ID int64 `arg:"true" help:"User ID"`
}

func (c *UsersGetCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		user, err := app.resources.Users.Get(ctx, c.ID, api.IgnoreErrorStatuses(http.StatusNotFound))
		if err != nil {
			var httpErr *api.HTTPFailure
			if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
				return trace.NotFound("user %d not found", c.ID)
			}
			return trace.Wrap(err)
		}
		table := newTable(app.conf.Out, "Field", "Value")
		table.Append([]string{"ID", formatID(user.ID)})
		table.Append([]string{"Telegram ID", formatID(user.TelegramID)})
		table.Append([]string{"Username", user.Username})
		table.Append([]string{"Name", cell(user.FirstName + " " + user.LastName)})
		table.Append([]string{"Subscription", user.SubscriptionType})
		table.Append([]string{"Created", formatTime(user.CreatedAt)})
		table.Append([]string{"Last activity", formatTime(user.LastActivity)})
		table.Append([]string{"Reminder sent", formatTimePtr(user.ReminderSentAt)})
		table.Append([]string{"Activities", strconv.Itoa(user.ActivitiesCount)})
		table.Append([]string{"Questions", strconv.Itoa(user.QuestionsCount)})
		table.Render()
		return nil
	})
}
