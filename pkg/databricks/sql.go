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
)

// StatementRequest describes a SQL statement to execute on a warehouse.
type StatementRequest struct {
	Statement   string `json:"statement"`
	WarehouseID string `json:"warehouse_id"`
	Catalog     string `json:"catalog,omitempty"`
	Schema      string `json:"schema,omitempty"`
	WaitTimeout string `json:"wait_timeout,omitempty"`
	RowLimit    int    `json:"row_limit,omitempty"`
}

// StatementStatus reports the execution state of a statement.
type StatementStatus struct {
	State string          `json:"state"` // PENDING, RUNNING, SUCCEEDED, FAILED, CANCELED, CLOSED
	Error *StatementError `json:"error,omitempty"`
}

// StatementError is the failure detail of a SQL statement.
type StatementError struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ColumnInfo describes one result column.
type ColumnInfo struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name,omitempty"`
	TypeText string `json:"type_text,omitempty"`
	Position int    `json:"position"`
}

// ResultManifest describes the shape of a statement result.
type ResultManifest struct {
	Schema struct {
		ColumnCount int          `json:"column_count"`
		Columns     []ColumnInfo `json:"columns"`
	} `json:"schema"`
	TotalRowCount int64 `json:"total_row_count,omitempty"`
	Truncated     bool  `json:"truncated,omitempty"`
}

// ResultData holds result rows as arrays of string values.
type ResultData struct {
	RowCount  int64      `json:"row_count,omitempty"`
	DataArray [][]string `json:"data_array,omitempty"`
}

// StatementResponse is the API's view of a statement execution.
type StatementResponse struct {
	StatementID string          `json:"statement_id"`
	Status      StatementStatus `json:"status"`
	Manifest    *ResultManifest `json:"manifest,omitempty"`
	Result      *ResultData     `json:"result,omitempty"`
}

// ExecuteStatement submits a SQL statement for execution.
func (c *Client) ExecuteStatement(ctx context.Context, req *StatementRequest) (*StatementResponse, error) {
	var resp StatementResponse
	if err := c.do(ctx, http.MethodPost, "/api/2.0/sql/statements", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStatement fetches the current state and any available results of a
// previously submitted statement.
func (c *Client) GetStatement(ctx context.Context, statementID string) (*StatementResponse, error) {
	var resp StatementResponse
	if err := c.do(ctx, http.MethodGet, "/api/2.0/sql/statements/"+statementID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelStatement requests cancellation of a running statement.
func (c *Client) CancelStatement(ctx context.Context, statementID string) error {
	return c.do(ctx, http.MethodPost, "/api/2.0/sql/statements/"+statementID+"/cancel", nil, nil, nil)
}

// Warehouse is a SQL warehouse.
type Warehouse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	State              string `json:"state,omitempty"` // STARTING, RUNNING, STOPPING, STOPPED, DELETED
	ClusterSize        string `json:"cluster_size,omitempty"`
	NumClusters        int    `json:"num_clusters,omitempty"`
	AutoStopMins       int    `json:"auto_stop_mins,omitempty"`
	EnableServerless   bool   `json:"enable_serverless_compute,omitempty"`
	CreatorName        string `json:"creator_name,omitempty"`
	JDBCURL            string `json:"jdbc_url,omitempty"`
	WarehouseType      string `json:"warehouse_type,omitempty"`
	SpotInstancePolicy string `json:"spot_instance_policy,omitempty"`
}

// ListWarehouses returns all SQL warehouses in the workspace.
func (c *Client) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	var resp struct {
		Warehouses []Warehouse `json:"warehouses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/2.0/sql/warehouses", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Warehouses, nil
}

// GetWarehouse fetches one warehouse.
func (c *Client) GetWarehouse(ctx context.Context, warehouseID string) (*Warehouse, error) {
	var w Warehouse
	if err := c.do(ctx, http.MethodGet, "/api/2.0/sql/warehouses/"+warehouseID, nil, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// StartWarehouse starts a stopped warehouse.
func (c *Client) StartWarehouse(ctx context.Context, warehouseID string) error {
	return c.do(ctx, http.MethodPost, "/api/2.0/sql/warehouses/"+warehouseID+"/start", nil, nil, nil)
}

// StopWarehouse stops a running warehouse.
func (c *Client) StopWarehouse(ctx context.Context, warehouseID string) error {
	return c.do(ctx, http.MethodPost, "/api/2.0/sql/warehouses/"+warehouseID+"/stop", nil, nil, nil)
}
