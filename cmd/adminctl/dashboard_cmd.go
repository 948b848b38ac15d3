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
	"strconv"

	"github.com/gravitational/trace"
	"golang.org/x/sync/errgroup"

	"github.com/gravitational/admin-panel/resources"
)

const dashboardListLimit = 5

// AnalyticsCmd shows the analytics report.
type AnalyticsCmd struct {
	Period string `help:"Aggregation period: day, week, month or year"`
	Start  string `help:"Start date, YYYY-MM-DD"`
	End    string `help:"End date, YYYY-MM-DD"`
}

func (c *AnalyticsCmd) query() (resources.AnalyticsQuery, error) {
	period, err := resources.ParsePeriod(c.Period)
	if err != nil {
		return resources.AnalyticsQuery{}, trace.Wrap(err)
	}
	return resources.AnalyticsQuery{Period: period, StartDate: c.Start, EndDate: c.End}, nil
}

func (c *AnalyticsCmd) Run(cli *CLI) error {
	q, err := c.query()
	if err != nil {
		return trace.Wrap(err)
	}
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		report, err := app.resources.Analytics.Get(ctx, q)
		if err != nil {
			return trace.Wrap(err)
		}
		printReport(app.conf.Out, report)
		return nil
	})
}

func printReport(w io.Writer, report *resources.Report) {
	table := newTable(w, "Metric", "Value")
	table.Append([]string{"Users", strconv.Itoa(report.Users.Total)})
	table.Append([]string{"New users", strconv.Itoa(report.Users.NewUsers)})
	table.Append([]string{"Active today", strconv.Itoa(report.Users.ActiveToday)})
	table.Append([]string{"Active this week", strconv.Itoa(report.Users.ActiveWeek)})
	table.Append([]string{"Active this month", strconv.Itoa(report.Users.ActiveMonth)})
	table.Append([]string{"Views", strconv.Itoa(report.Content.TotalViews)})
	table.Append([]string{"Views per day", strconv.FormatFloat(report.Content.AverageViewsPerDay, 'f', 1, 64)})
	table.Render()

	if len(report.Content.TopMaterials) > 0 {
		top := newTable(w, "Top material", "Views", "Share")
		for _, m := range report.Content.TopMaterials {
			top.Append([]string{cell(m.Title), strconv.Itoa(m.Count), strconv.FormatFloat(m.Percentage, 'f', 0, 64) + "%"})
		}
		top.Render()
	}
	if len(report.Ratings.TopMaterials) > 0 {
		rated := newTable(w, "Best rated", "Rating", "Votes")
		for _, m := range report.Ratings.TopMaterials {
			rated.Append([]string{cell(m.Title), strconv.FormatFloat(m.Rating, 'f', 1, 64), strconv.Itoa(m.Count)})
		}
		rated.Render()
	}
}

// DashboardCmd fetches the dashboard widgets concurrently.
type DashboardCmd struct{}

func (c *DashboardCmd) Run(cli *CLI) error {
	app, err := cli.newApp()
	if err != nil {
		return trace.Wrap(err)
	}
	return app.Protected(cli.Context(), func(ctx context.Context) error {
		d, err := fetchDashboard(ctx, app)
		if err != nil {
			return trace.Wrap(err)
		}
		printReport(app.conf.Out, d.report)
		fmt.Fprintf(app.conf.Out, "%d users, %d pending notifications.\n", d.users.Total, d.pending.Total)
		if len(d.pending.Items) > 0 {
			printNotifications(app.conf.Out, d.pending.Items)
		}
		return nil
	})
}

type dashboard struct {
	report  *resources.Report
	users   *resources.UserList
	pending *resources.NotificationList
}

// fetchDashboard loads every widget. A failing widget does not cancel the
// others: each one reports its own failure to the boundary.
func fetchDashboard(ctx context.Context, app *App) (*dashboard, error) {
	var (
		d     dashboard
		group errgroup.Group
	)
	group.Go(func() error {
		var err error
		d.report, err = app.resources.Analytics.Get(ctx, resources.AnalyticsQuery{Period: resources.PeriodWeek})
		return trace.Wrap(err)
	})
	group.Go(func() error {
		var err error
		d.users, err = app.resources.Users.List(ctx, resources.UserQuery{Page: resources.Page{Page: 1, Limit: dashboardListLimit}})
		return trace.Wrap(err)
	})
	group.Go(func() error {
		var err error
		d.pending, err = app.resources.Notifications.List(ctx, resources.NotificationQuery{
			Page:   resources.Page{Page: 1, Limit: dashboardListLimit},
			Status: resources.NotificationPending,
		})
		return trace.Wrap(err)
	})
	if err := group.Wait(); err != nil {
		return nil, trace.Wrap(err)
	}
	return &d, nil
}
