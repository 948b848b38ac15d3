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

	"github.com/gravitational/trace"

	"github.com/gravitational/admin-panel/api"
)

const analyticsPath = "/api/v1/admin/analytics"

// Period is an analytics aggregation period.
type Period string

const (
	PeriodAll   Period = ""
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a period name. An empty name means all time.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodAll, PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", trace.BadParameter("unknown period %q, expected one of day, week, month, year", s)
	}
}

// AnalyticsQuery selects the analytics window. Dates are YYYY-MM-DD.
type AnalyticsQuery struct {
	Period    Period `url:"period,omitempty"`
	StartDate string `url:"start_date,omitempty"`
	EndDate   string `url:"end_date,omitempty"`
}

// MaterialCount is a material or section with its view share.
type MaterialCount struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MaterialRating is a material with its average rating.
type MaterialRating struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// DailyViews is the view count of one day.
type DailyViews struct {
	Day   string `json:"day"`
	Views int    `json:"views"`
}

// Report is the analytics dashboard data.
type Report struct {
	Users struct {
		Total       int `json:"total"`
		NewUsers    int `json:"new_users"`
		ActiveToday int `json:"active_today"`
		ActiveWeek  int `json:"active_week"`
		ActiveMonth int `json:"active_month"`
	} `json:"users"`
	Content struct {
		TotalViews         int             `json:"total_views"`
		AverageViewsPerDay float64         `json:"average_views_per_day"`
		TopMaterials       []MaterialCount `json:"top_materials"`
		TopSections        []MaterialCount `json:"top_sections"`
	} `json:"content"`
	Ratings struct {
		TopMaterials     []MaterialRating `json:"top_materials"`
		AntiTopMaterials []MaterialRating `json:"anti_top_materials"`
	} `json:"ratings"`
	DailyViews []DailyViews `json:"daily_views"`
}

// Analytics calls the analytics endpoint.
type Analytics struct {
	api *api.Client
}

// Get returns the analytics report.
func (a *Analytics) Get(ctx context.Context, q AnalyticsQuery, opts ...api.RequestOption) (*Report, error) {
	if _, err := ParsePeriod(string(q.Period)); err != nil {
		return nil, trace.Wrap(err)
	}
	opts, err := withQuery(q, opts)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var report Report
	if err := a.api.Get(ctx, analyticsPath, &report, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &report, nil
}
