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

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakedeck/lakedeck/pkg/databricks"
	"github.com/lakedeck/lakedeck/pkg/lakeview"
)

func TestCreateDashboardBuildsSerializedDocument(t *testing.T) {
	var captured databricks.Dashboard

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		captured.DashboardID = "dash1"
		_ = json.NewEncoder(w).Encode(captured)
	})

	result, err := p.CallTool(context.Background(), "create_lakeview_dashboard", map[string]any{
		"display_name": "Sales Overview",
		"datasets": []any{
			map[string]any{"name": "Sales Data", "query": "SELECT region, revenue\nFROM sales"},
		},
		"widgets": []any{
			map[string]any{
				"type":    "bar",
				"dataset": "Sales Data",
				"config":  map[string]any{"x_field": "region", "y_field": "revenue"},
			},
			map[string]any{
				"type":    "counter",
				"dataset": "Sales Data",
				"config":  map[string]any{"value_field": "revenue"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])
	assert.Equal(t, "dash1", result.StructuredContent["dashboard_id"])
	assert.Equal(t, "grid", result.StructuredContent["layout_type"])

	assert.Equal(t, "wh-default", captured.WarehouseID)

	var doc dashboardDoc
	require.NoError(t, json.Unmarshal([]byte(captured.SerializedDashboard), &doc))

	require.Len(t, doc.Datasets, 1)
	assert.Equal(t, "Sales Data", doc.Datasets[0].DisplayName)
	assert.Equal(t, []string{"SELECT region, revenue\n", "FROM sales"}, doc.Datasets[0].QueryLines)

	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Layout, 2)

	// Widgets reference the generated dataset id, not the display name.
	var widget struct {
		Queries []struct {
			Query struct {
				DatasetName string `json:"datasetName"`
			} `json:"query"`
		} `json:"queries"`
	}
	require.NoError(t, json.Unmarshal(doc.Pages[0].Layout[0].Widget, &widget))
	require.Len(t, widget.Queries, 1)
	assert.Equal(t, doc.Datasets[0].Name, widget.Queries[0].Query.DatasetName)

	// Default grid layout: two 6x4 widgets share the first row.
	assert.Equal(t, lakeview.Position{X: 0, Y: 0, Width: 6, Height: 4}, doc.Pages[0].Layout[0].Position)
	assert.Equal(t, lakeview.Position{X: 6, Y: 0, Width: 6, Height: 4}, doc.Pages[0].Layout[1].Position)
}

func TestCreateDashboardBadWidgetConfig(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no workspace call expected for an invalid widget")
	})

	result, err := p.CallTool(context.Background(), "create_lakeview_dashboard", map[string]any{
		"display_name": "Broken",
		"widgets": []any{
			map[string]any{"type": "funnel", "config": map[string]any{"value_field": "v"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, false, result.StructuredContent["success"])
	assert.Contains(t, result.StructuredContent["error"], "funnel")
}

// serveDashboard backs get+update calls for one in-memory dashboard and
// returns a pointer to the stored record so tests can inspect updates.
func serveDashboard(t *testing.T, initial databricks.Dashboard) (*Provider, *databricks.Dashboard) {
	t.Helper()
	stored := initial

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(stored)
		case http.MethodPatch:
			var update databricks.Dashboard
			require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
			if update.SerializedDashboard != "" {
				stored.SerializedDashboard = update.SerializedDashboard
			}
			if update.DisplayName != "" {
				stored.DisplayName = update.DisplayName
			}
			_ = json.NewEncoder(w).Encode(stored)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	return p, &stored
}

func dashboardWithWidgets(t *testing.T, widgets ...lakeview.Position) string {
	t.Helper()
	doc := dashboardDoc{
		Datasets: []datasetDef{{Name: "ds1", DisplayName: "Sales Data"}},
		Pages:    []pageDef{{Name: "page1", DisplayName: "Page 1"}},
	}
	for i, pos := range widgets {
		raw, err := json.Marshal(map[string]any{"name": "w" + string(rune('1'+i))})
		require.NoError(t, err)
		doc.Pages[0].Layout = append(doc.Pages[0].Layout, layoutItem{Widget: raw, Position: pos})
	}
	serialized, err := doc.serialize()
	require.NoError(t, err)
	return serialized
}

func TestAddDashboardWidgetAppendsBelow(t *testing.T) {
	p, stored := serveDashboard(t, databricks.Dashboard{
		DashboardID:         "dash1",
		SerializedDashboard: dashboardWithWidgets(t, lakeview.Position{X: 0, Y: 0, Width: 12, Height: 5}),
	})

	result, err := p.CallTool(context.Background(), "add_dashboard_widget", map[string]any{
		"dashboard_id": "dash1",
		"widget": map[string]any{
			"type":    "line",
			"dataset": "Sales Data",
			"config":  map[string]any{"x_field": "date", "y_field": "revenue"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])
	assert.NotEmpty(t, result.StructuredContent["widget_name"])

	var doc dashboardDoc
	require.NoError(t, json.Unmarshal([]byte(stored.SerializedDashboard), &doc))
	require.Len(t, doc.Pages[0].Layout, 2)
	assert.Equal(t, lakeview.Position{X: 0, Y: 5, Width: 6, Height: 4}, doc.Pages[0].Layout[1].Position)
}

func TestRemoveDashboardWidget(t *testing.T) {
	p, stored := serveDashboard(t, databricks.Dashboard{
		DashboardID: "dash1",
		SerializedDashboard: dashboardWithWidgets(t,
			lakeview.Position{X: 0, Y: 0, Width: 6, Height: 4},
			lakeview.Position{X: 6, Y: 0, Width: 6, Height: 4},
		),
	})

	result, err := p.CallTool(context.Background(), "remove_dashboard_widget", map[string]any{
		"dashboard_id": "dash1",
		"widget_name":  "w1",
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])

	var doc dashboardDoc
	require.NoError(t, json.Unmarshal([]byte(stored.SerializedDashboard), &doc))
	require.Len(t, doc.Pages[0].Layout, 1)
	assert.Equal(t, "w2", doc.Pages[0].Layout[0].widgetName())
}

func TestRemoveDashboardWidgetNotFound(t *testing.T) {
	p, _ := serveDashboard(t, databricks.Dashboard{
		DashboardID:         "dash1",
		SerializedDashboard: dashboardWithWidgets(t, lakeview.Position{X: 0, Y: 0, Width: 6, Height: 4}),
	})

	result, err := p.CallTool(context.Background(), "remove_dashboard_widget", map[string]any{
		"dashboard_id": "dash1",
		"widget_name":  "missing",
	})
	require.NoError(t, err)
	assert.Equal(t, false, result.StructuredContent["success"])
	assert.Contains(t, result.StructuredContent["error"], "not found")
}

func TestRepositionWidget(t *testing.T) {
	p, stored := serveDashboard(t, databricks.Dashboard{
		DashboardID:         "dash1",
		SerializedDashboard: dashboardWithWidgets(t, lakeview.Position{X: 0, Y: 0, Width: 6, Height: 4}),
	})

	result, err := p.CallTool(context.Background(), "reposition_widget", map[string]any{
		"dashboard_id": "dash1",
		"widget_name":  "w1",
		"position":     map[string]any{"x": float64(3), "y": float64(2), "width": float64(9), "height": float64(6)},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])

	var doc dashboardDoc
	require.NoError(t, json.Unmarshal([]byte(stored.SerializedDashboard), &doc))
	assert.Equal(t, lakeview.Position{X: 3, Y: 2, Width: 9, Height: 6}, doc.Pages[0].Layout[0].Position)
}

func TestAutoLayoutDashboard(t *testing.T) {
	p, stored := serveDashboard(t, databricks.Dashboard{
		DashboardID: "dash1",
		SerializedDashboard: dashboardWithWidgets(t,
			lakeview.Position{X: 3, Y: 7, Width: 6, Height: 4},
			lakeview.Position{X: 1, Y: 1, Width: 6, Height: 4},
		),
	})

	result, err := p.CallTool(context.Background(), "auto_layout_dashboard", map[string]any{
		"dashboard_id": "dash1",
		"layout_type":  "vertical",
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])
	assert.Equal(t, "vertical", result.StructuredContent["layout_type"])
	assert.Equal(t, 2, result.StructuredContent["widgets_arranged"])

	var doc dashboardDoc
	require.NoError(t, json.Unmarshal([]byte(stored.SerializedDashboard), &doc))
	assert.Equal(t, lakeview.Position{X: 0, Y: 0, Width: 12, Height: 4}, doc.Pages[0].Layout[0].Position)
	assert.Equal(t, lakeview.Position{X: 0, Y: 4, Width: 12, Height: 4}, doc.Pages[0].Layout[1].Position)
}

func TestAutoLayoutUnknownType(t *testing.T) {
	p, _ := serveDashboard(t, databricks.Dashboard{
		DashboardID:         "dash1",
		SerializedDashboard: dashboardWithWidgets(t, lakeview.Position{X: 0, Y: 0, Width: 6, Height: 4}),
	})

	result, err := p.CallTool(context.Background(), "auto_layout_dashboard", map[string]any{
		"dashboard_id": "dash1",
		"layout_type":  "diagonal",
	})
	require.NoError(t, err)
	assert.Equal(t, false, result.StructuredContent["success"])
	assert.Contains(t, result.StructuredContent["error"], "unknown layout type")
}

func TestCreateWidgetSpecPure(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("create_widget_spec must not call the workspace")
	})

	result, err := p.CallTool(context.Background(), "create_widget_spec", map[string]any{
		"widget": map[string]any{
			"type":    "pie",
			"dataset": "Sales Data",
			"config":  map[string]any{"value_field": "revenue", "category_field": "region"},
		},
		"datasets": []any{
			map[string]any{"name": "ds1", "display_name": "Sales Data"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])

	spec, castOK := result.StructuredContent["widget_spec"].(map[string]any)
	require.True(t, castOK)

	inner, castOK := spec["spec"].(map[string]any)
	require.True(t, castOK)
	assert.Equal(t, "pie", inner["widgetType"])
	assert.Equal(t, float64(3), inner["version"])
}

func TestSplitQueryLines(t *testing.T) {
	assert.Equal(t, []string{"SELECT 1"}, splitQueryLines("SELECT 1"))
	assert.Equal(t, []string{"SELECT a\n", "FROM t\n"}, splitQueryLines("SELECT a\nFROM t\n"))
	assert.Empty(t, strings.Join(splitQueryLines(""), ""))
}
