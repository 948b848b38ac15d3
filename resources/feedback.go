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

const (
	ratingsPath    = "/api/v1/ratings"
	activitiesPath = "/v1/user-activities"
)

// Activity is a recorded user action.
type Activity struct {
	ID             int64   `json:"id"`
	TelegramUserID int64   `json:"telegram_user_id"`
	MenuItemID     int64   `json:"menu_item_id"`
	ActivityType   string  `json:"activity_type"`
	Rating         *int    `json:"rating"`
	SearchQuery    *string `json:"search_query"`
}

// RatingRequest rates a menu item from 1 to 5.
type RatingRequest struct {
	TelegramUserID int64 `json:"telegram_user_id"`
	MenuItemID     int64 `json:"menu_item_id"`
	Rating         int   `json:"rating"`
}

// Check validates the request.
func (r RatingRequest) Check() error {
	if r.Rating < 1 || r.Rating > 5 {
		return trace.BadParameter("rating must be between 1 and 5, got %d", r.Rating)
	}
	return nil
}

// ActivityRequest records a user action.
type ActivityRequest struct {
	TelegramUserID int64  `json:"telegram_user_id"`
	MenuItemID     int64  `json:"menu_item_id"`
	ActivityType   string `json:"activity_type"`
	SearchQuery    string `json:"search_query,omitempty"`
}

// Ratings calls the rating endpoint.
type Ratings struct {
	api *api.Client
}

// Rate rates a menu item.
func (r *Ratings) Rate(ctx context.Context, req RatingRequest, opts ...api.RequestOption) (*Activity, error) {
	if err := req.Check(); err != nil {
		return nil, trace.Wrap(err)
	}
	var activity Activity
	if err := r.api.Post(ctx, ratingsPath, req, &activity, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &activity, nil
}

// Activities calls the user activity endpoint.
type Activities struct {
	api *api.Client
}

// Create records a user action.
func (a *Activities) Create(ctx context.Context, req ActivityRequest, opts ...api.RequestOption) (*Activity, error) {
	if req.ActivityType == "" {
		return nil, trace.BadParameter("missing activity type")
	}
	var activity Activity
	if err := a.api.Post(ctx, activitiesPath, req, &activity, opts...); err != nil {
		return nil, trace.Wrap(err)
	}
	return &activity, nil
}
