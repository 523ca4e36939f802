// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package databricks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Dashboard is a Lakeview dashboard. SerializedDashboard carries the
// full dashboard definition (datasets, pages, widget layout) as a JSON
// string, which is how the Lakeview API round-trips it.
type Dashboard struct {
	DashboardID         string `json:"dashboard_id,omitempty"`
	DisplayName         string `json:"display_name,omitempty"`
	SerializedDashboard string `json:"serialized_dashboard,omitempty"`
	WarehouseID         string `json:"warehouse_id,omitempty"`
	ParentPath          string `json:"parent_path,omitempty"`
	Path                string `json:"path,omitempty"`
	CreateTime          string `json:"create_time,omitempty"`
	UpdateTime          string `json:"update_time,omitempty"`
	LifecycleState      string `json:"lifecycle_state,omitempty"`
	Etag                string `json:"etag,omitempty"`
}

// ListDashboardsResponse is one page of dashboards.
type ListDashboardsResponse struct {
	Dashboards    []Dashboard `json:"dashboards"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}

// ListDashboards returns one page of Lakeview dashboards. Pass the
// previous response's NextPageToken to continue; empty pageToken starts
// from the beginning.
func (c *Client) ListDashboards(ctx context.Context, pageSize int, pageToken string) (*ListDashboardsResponse, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	if pageToken != "" {
		query.Set("page_token", pageToken)
	}

	var resp ListDashboardsResponse
	if err := c.do(ctx, http.MethodGet, "/api/2.0/lakeview/dashboards", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDashboard fetches a dashboard including its serialized definition.
func (c *Client) GetDashboard(ctx context.Context, dashboardID string) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/2.0/lakeview/dashboards/"+dashboardID, nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDashboard creates a new Lakeview dashboard.
func (c *Client) CreateDashboard(ctx context.Context, dashboard *Dashboard) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodPost, "/api/2.0/lakeview/dashboards", nil, dashboard, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDashboard replaces a dashboard's definition.
func (c *Client) UpdateDashboard(ctx context.Context, dashboardID string, dashboard *Dashboard) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodPatch, "/api/2.0/lakeview/dashboards/"+dashboardID, nil, dashboard, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// TrashDashboard moves a dashboard to the trash.
func (c *Client) TrashDashboard(ctx context.Context, dashboardID string) error {
	return c.do(ctx, http.MethodDelete, "/api/2.0/lakeview/dashboards/"+dashboardID, nil, nil, nil)
}

// PublishedDashboard is the result of publishing a dashboard.
type PublishedDashboard struct {
	DisplayName        string `json:"display_name,omitempty"`
	WarehouseID        string `json:"warehouse_id,omitempty"`
	EmbedCredentials   bool   `json:"embed_credentials"`
	RevisionCreateTime string `json:"revision_create_time,omitempty"`
}

type publishRequest struct {
	EmbedCredentials bool   `json:"embed_credentials"`
	WarehouseID      string `json:"warehouse_id,omitempty"`
}

// PublishDashboard publishes the current dashboard draft.
func (c *Client) PublishDashboard(ctx context.Context, dashboardID, warehouseID string, embedCredentials bool) (*PublishedDashboard, error) {
	req := publishRequest{EmbedCredentials: embedCredentials, WarehouseID: warehouseID}

	var pub PublishedDashboard
	if err := c.do(ctx, http.MethodPost, "/api/2.0/lakeview/dashboards/"+dashboardID+"/published", nil, req, &pub); err != nil {
		return nil, err
	}
	return &pub, nil
}
