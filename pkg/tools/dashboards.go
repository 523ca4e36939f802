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
	"fmt"
	"strings"

	"github.com/lakedeck/lakedeck/pkg/databricks"
	"github.com/lakedeck/lakedeck/pkg/lakeview"
)

// dashboardDoc is the serialized_dashboard JSON structure the Lakeview
// API round-trips: datasets plus pages of positioned widgets.
type dashboardDoc struct {
	Datasets []datasetDef `json:"datasets"`
	Pages    []pageDef    `json:"pages"`
}

type datasetDef struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	QueryLines  []string `json:"queryLines,omitempty"`
}

type pageDef struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Layout      []layoutItem `json:"layout"`
}

// layoutItem keeps the widget spec opaque so that round-tripping a
// dashboard never drops fields this server does not model.
type layoutItem struct {
	Widget   json.RawMessage   `json:"widget"`
	Position lakeview.Position `json:"position"`
}

func (item layoutItem) widgetName() string {
	var w struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(item.Widget, &w)
	return w.Name
}

func parseDashboardDoc(serialized string) (*dashboardDoc, error) {
	if serialized == "" {
		return &dashboardDoc{}, nil
	}
	var doc dashboardDoc
	if err := json.Unmarshal([]byte(serialized), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse serialized dashboard: %w", err)
	}
	return &doc, nil
}

func (doc *dashboardDoc) serialize() (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize dashboard: %w", err)
	}
	return string(data), nil
}

func (doc *dashboardDoc) lakeviewDatasets() []lakeview.Dataset {
	datasets := make([]lakeview.Dataset, 0, len(doc.Datasets))
	for _, ds := range doc.Datasets {
		datasets = append(datasets, lakeview.Dataset{Name: ds.Name, DisplayName: ds.DisplayName})
	}
	return datasets
}

// mainPage returns the first page, creating one when the dashboard is
// empty.
func (doc *dashboardDoc) mainPage() *pageDef {
	if len(doc.Pages) == 0 {
		doc.Pages = append(doc.Pages, pageDef{
			Name:        lakeview.GenerateID(),
			DisplayName: "Page 1",
		})
	}
	return &doc.Pages[0]
}

// widgetConfigArg decodes a tool-call widget object into a
// WidgetConfig plus its declared footprint.
func widgetConfigArg(m map[string]any) (lakeview.WidgetConfig, lakeview.Size) {
	wc := lakeview.WidgetConfig{}
	if t, ok := m["type"].(string); ok {
		wc.Type = t
	}
	if d, ok := m["dataset"].(string); ok {
		wc.Dataset = d
	}
	if cfg, ok := m["config"].(map[string]any); ok {
		wc.Config = cfg
	}

	size := lakeview.Size{Width: argInt(m, "width", 0), Height: argInt(m, "height", 0)}
	return wc, size
}

var widgetObjectSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type":    stringProp("Widget type (bar, line, pie, counter, table, filter-single-select, ...)"),
		"dataset": stringProp("Display name of the dataset the widget binds to"),
		"config":  map[string]any{"type": "object", "description": "Widget configuration: x_field, y_field, title, ..."},
		"width":   intProp("Grid width (1-12, default 6)"),
		"height":  intProp("Grid height (default 4)"),
	},
	"required": []string{"type"},
}

var positionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"x":      intProp("Grid column (0-11)"),
		"y":      intProp("Grid row"),
		"width":  intProp("Width in grid units"),
		"height": intProp("Height in grid units"),
	},
	"required": []string{"x", "y", "width", "height"},
}

func positionArg(m map[string]any) lakeview.Position {
	return lakeview.Position{
		X:      argInt(m, "x", 0),
		Y:      argInt(m, "y", 0),
		Width:  argInt(m, "width", 6),
		Height: argInt(m, "height", 4),
	}
}

func (p *Provider) registerDashboardTools() {
	p.register(protocolTool(
		"list_lakeview_dashboards",
		"List Lakeview dashboards in the workspace.",
		objectSchema(map[string]any{
			"page_size":  intProp("Maximum dashboards per page"),
			"page_token": stringProp("Pagination token from a previous call"),
		}, nil),
	), p.handleListDashboards)

	p.register(protocolTool(
		"get_lakeview_dashboard",
		"Get a Lakeview dashboard including its widget definitions.",
		objectSchema(map[string]any{
			"dashboard_id": stringProp("Dashboard ID"),
		}, []string{"dashboard_id"}),
	), p.handleGetDashboard)

	p.register(protocolTool(
		"create_lakeview_dashboard",
		"Create a Lakeview dashboard from datasets and simplified widget configurations. "+
			"Widgets are built into full Lakeview specs and auto-arranged on the canvas.",
		objectSchema(map[string]any{
			"display_name": stringProp("Dashboard display name"),
			"warehouse_id": stringProp("SQL warehouse for dashboard queries (defaults to the configured warehouse)"),
			"parent_path":  stringProp("Workspace folder to create the dashboard in"),
			"datasets": arrayProp("Datasets backing the widgets", map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":  stringProp("Dataset display name, referenced by widgets"),
					"query": stringProp("SQL query producing the dataset"),
				},
				"required": []string{"name", "query"},
			}),
			"widgets":     arrayProp("Widget configurations", widgetObjectSchema),
			"layout_type": stringProp("Auto-layout strategy: grid (default), vertical, horizontal, masonry"),
		}, []string{"display_name"}),
	), p.handleCreateDashboard)

	p.register(protocolTool(
		"update_lakeview_dashboard",
		"Update a dashboard's display name or full serialized definition.",
		objectSchema(map[string]any{
			"dashboard_id":         stringProp("Dashboard ID"),
			"display_name":         stringProp("New display name"),
			"serialized_dashboard": stringProp("Replacement serialized dashboard JSON"),
		}, []string{"dashboard_id"}),
	), p.handleUpdateDashboard)

	p.register(protocolTool(
		"delete_lakeview_dashboard",
		"Move a Lakeview dashboard to the trash.",
		objectSchema(map[string]any{
			"dashboard_id": stringProp("Dashboard ID"),
		}, []string{"dashboard_id"}),
	), p.handleDeleteDashboard)

	p.register(protocolTool(
		"publish_lakeview_dashboard",
		"Publish the current draft of a dashboard.",
		objectSchema(map[string]any{
			"dashboard_id":      stringProp("Dashboard ID"),
			"warehouse_id":      stringProp("Warehouse for the published dashboard"),
			"embed_credentials": boolProp("Embed the publisher's credentials (default true)"),
		}, []string{"dashboard_id"}),
	), p.handlePublishDashboard)

	p.register(protocolTool(
		"add_dashboard_widget",
		"Build a widget from a simplified configuration and add it to a dashboard.",
		objectSchema(map[string]any{
			"dashboard_id": stringProp("Dashboard ID"),
			"widget":       widgetObjectSchema,
			"position":     positionSchema,
		}, []string{"dashboard_id", "widget"}),
	), p.handleAddWidget)

	p.register(protocolTool(
		"remove_dashboard_widget",
		"Remove a widget from a dashboard by its widget name.",
		objectSchema(map[string]any{
			"dashboard_id": stringProp("Dashboard ID"),
			"widget_name":  stringProp("Name of the widget to remove"),
		}, []string{"dashboard_id", "widget_name"}),
	), p.handleRemoveWidget)

	p.register(protocolTool(
		"reposition_widget",
		"Move or resize a widget on the dashboard canvas.",
		objectSchema(map[string]any{
			"dashboard_id": stringProp("Dashboard ID"),
			"widget_name":  stringProp("Name of the widget to reposition"),
			"position":     positionSchema,
		}, []string{"dashboard_id", "widget_name", "position"}),
	), p.handleRepositionWidget)

	p.register(protocolTool(
		"auto_layout_dashboard",
		"Rearrange all widgets on a dashboard using a layout algorithm.",
		objectSchema(map[string]any{
			"dashboard_id": stringProp("Dashboard ID"),
			"layout_type":  stringProp("Layout algorithm: grid (default), vertical, horizontal, masonry"),
		}, []string{"dashboard_id"}),
	), p.handleAutoLayout)

	p.register(protocolTool(
		"create_widget_spec",
		"Build a Lakeview widget specification from a simplified configuration without touching any dashboard.",
		objectSchema(map[string]any{
			"widget": widgetObjectSchema,
			"datasets": arrayProp("Known datasets for reference resolution", map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":         stringProp("Dataset internal id"),
					"display_name": stringProp("Dataset display name"),
				},
				"required": []string{"name"},
			}),
			"dashboard_id": stringProp("Dashboard context for filter query bindings"),
		}, []string{"widget"}),
	), p.handleCreateWidgetSpec)

	p.register(protocolTool(
		"validate_sql_expression",
		"Check a field expression for obviously unsafe SQL patterns. Advisory only.",
		objectSchema(map[string]any{
			"expression": stringProp("SQL field expression, e.g. SUM(`revenue`)"),
		}, []string{"expression"}),
	), p.handleValidateExpression)
}

func (p *Provider) handleListDashboards(ctx context.Context, args map[string]any) (map[string]any, error) {
	resp, err := p.client.ListDashboards(ctx, argInt(args, "page_size", 0), argString(args, "page_token"))
	if err != nil {
		return fail("failed to list dashboards: %v", err), nil
	}

	items := make([]map[string]any, 0, len(resp.Dashboards))
	for _, d := range resp.Dashboards {
		items = append(items, map[string]any{
			"dashboard_id":    d.DashboardID,
			"display_name":    d.DisplayName,
			"lifecycle_state": d.LifecycleState,
			"update_time":     d.UpdateTime,
		})
	}

	payload := map[string]any{"dashboards": items, "count": len(items)}
	if resp.NextPageToken != "" {
		payload["next_page_token"] = resp.NextPageToken
	}
	return ok(payload), nil
}

func (p *Provider) handleGetDashboard(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboard, err := p.client.GetDashboard(ctx, argString(args, "dashboard_id"))
	if err != nil {
		return fail("failed to get dashboard: %v", err), nil
	}

	payload := map[string]any{
		"dashboard_id":    dashboard.DashboardID,
		"display_name":    dashboard.DisplayName,
		"warehouse_id":    dashboard.WarehouseID,
		"lifecycle_state": dashboard.LifecycleState,
		"path":            dashboard.Path,
	}

	if doc, err := parseDashboardDoc(dashboard.SerializedDashboard); err == nil {
		payload["dataset_count"] = len(doc.Datasets)
		widgets := 0
		for _, page := range doc.Pages {
			widgets += len(page.Layout)
		}
		payload["widget_count"] = widgets
		payload["serialized_dashboard"] = dashboard.SerializedDashboard
	}

	return ok(payload), nil
}

func (p *Provider) handleCreateDashboard(ctx context.Context, args map[string]any) (map[string]any, error) {
	doc := &dashboardDoc{}

	for _, entry := range argList(args, "datasets") {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		query, _ := m["query"].(string)
		doc.Datasets = append(doc.Datasets, datasetDef{
			Name:        lakeview.GenerateID(),
			DisplayName: name,
			QueryLines:  splitQueryLines(query),
		})
	}

	datasets := doc.lakeviewDatasets()
	page := doc.mainPage()

	widgetArgs := argList(args, "widgets")
	sizes := make([]lakeview.Size, 0, len(widgetArgs))
	specs := make([]*lakeview.WidgetSpec, 0, len(widgetArgs))

	for _, entry := range widgetArgs {
		m, isMap := entry.(map[string]any)
		if !isMap {
			continue
		}
		wc, size := widgetConfigArg(m)
		spec, err := lakeview.NewWidgetSpec(wc, datasets, "")
		if err != nil {
			return fail("failed to build %s widget: %v", wc.Type, err), nil
		}
		specs = append(specs, spec)
		sizes = append(sizes, size)
	}

	layoutType := argString(args, "layout_type")
	if layoutType == "" {
		layoutType = lakeview.LayoutGrid
	}
	positions, err := lakeview.AutoLayout(sizes, layoutType)
	if err != nil {
		return fail("layout failed: %v", err), nil
	}

	for i, spec := range specs {
		raw, err := json.Marshal(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal widget spec: %w", err)
		}
		page.Layout = append(page.Layout, layoutItem{Widget: raw, Position: positions[i]})
	}

	serialized, err := doc.serialize()
	if err != nil {
		return nil, err
	}

	warehouseID := argString(args, "warehouse_id")
	if warehouseID == "" {
		warehouseID = p.warehouseID
	}

	created, err := p.client.CreateDashboard(ctx, &databricks.Dashboard{
		DisplayName:         argString(args, "display_name"),
		SerializedDashboard: serialized,
		WarehouseID:         warehouseID,
		ParentPath:          argString(args, "parent_path"),
	})
	if err != nil {
		return fail("failed to create dashboard: %v", err), nil
	}

	return ok(map[string]any{
		"dashboard_id": created.DashboardID,
		"display_name": created.DisplayName,
		"widget_count": len(specs),
		"layout_type":  layoutType,
	}), nil
}

// splitQueryLines preserves the query's line structure, which the
// Lakeview editor displays verbatim.
func splitQueryLines(query string) []string {
	lines := strings.SplitAfter(query, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *Provider) handleUpdateDashboard(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")

	update := &databricks.Dashboard{
		DisplayName:         argString(args, "display_name"),
		SerializedDashboard: argString(args, "serialized_dashboard"),
	}
	if update.SerializedDashboard != "" {
		if _, err := parseDashboardDoc(update.SerializedDashboard); err != nil {
			return fail("invalid serialized_dashboard: %v", err), nil
		}
	}

	updated, err := p.client.UpdateDashboard(ctx, dashboardID, update)
	if err != nil {
		return fail("failed to update dashboard: %v", err), nil
	}

	return ok(map[string]any{
		"dashboard_id": updated.DashboardID,
		"display_name": updated.DisplayName,
	}), nil
}

func (p *Provider) handleDeleteDashboard(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")
	if err := p.client.TrashDashboard(ctx, dashboardID); err != nil {
		return fail("failed to delete dashboard: %v", err), nil
	}
	return ok(map[string]any{"dashboard_id": dashboardID, "message": "dashboard moved to trash"}), nil
}

func (p *Provider) handlePublishDashboard(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")
	warehouseID := argString(args, "warehouse_id")
	if warehouseID == "" {
		warehouseID = p.warehouseID
	}

	pub, err := p.client.PublishDashboard(ctx, dashboardID, warehouseID, argBool(args, "embed_credentials", true))
	if err != nil {
		return fail("failed to publish dashboard: %v", err), nil
	}

	return ok(map[string]any{
		"dashboard_id": dashboardID,
		"display_name": pub.DisplayName,
	}), nil
}

// withDashboardDoc fetches a dashboard, applies mutate to its parsed
// definition, and writes the result back.
func (p *Provider) withDashboardDoc(ctx context.Context, dashboardID string, mutate func(*dashboardDoc) error) (map[string]any, error) {
	dashboard, err := p.client.GetDashboard(ctx, dashboardID)
	if err != nil {
		return fail("failed to get dashboard: %v", err), nil
	}

	doc, err := parseDashboardDoc(dashboard.SerializedDashboard)
	if err != nil {
		return fail("%v", err), nil
	}

	if err := mutate(doc); err != nil {
		return fail("%v", err), nil
	}

	serialized, err := doc.serialize()
	if err != nil {
		return nil, err
	}

	if _, err := p.client.UpdateDashboard(ctx, dashboardID, &databricks.Dashboard{
		SerializedDashboard: serialized,
	}); err != nil {
		return fail("failed to update dashboard: %v", err), nil
	}

	return nil, nil
}

func (p *Provider) handleAddWidget(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")
	widgetArg, _ := args["widget"].(map[string]any)
	wc, size := widgetConfigArg(widgetArg)

	var widgetName string
	result, err := p.withDashboardDoc(ctx, dashboardID, func(doc *dashboardDoc) error {
		spec, err := lakeview.NewWidgetSpec(wc, doc.lakeviewDatasets(), dashboardID)
		if err != nil {
			return fmt.Errorf("failed to build %s widget: %w", wc.Type, err)
		}
		widgetName = spec.Name

		raw, err := json.Marshal(spec)
		if err != nil {
			return fmt.Errorf("failed to marshal widget spec: %w", err)
		}

		page := doc.mainPage()

		var position lakeview.Position
		if posArg, ok := args["position"].(map[string]any); ok {
			position = positionArg(posArg)
		} else {
			// Append below the current content.
			bottom := 0
			for _, item := range page.Layout {
				if edge := item.Position.Y + item.Position.Height; edge > bottom {
					bottom = edge
				}
			}
			w, h := size.Width, size.Height
			if w <= 0 {
				w = 6
			}
			if h <= 0 {
				h = 4
			}
			position = lakeview.Position{X: 0, Y: bottom, Width: w, Height: h}
		}

		page.Layout = append(page.Layout, layoutItem{Widget: raw, Position: position})
		return nil
	})
	if err != nil || result != nil {
		return result, err
	}

	return ok(map[string]any{
		"dashboard_id": dashboardID,
		"widget_name":  widgetName,
	}), nil
}

func (p *Provider) handleRemoveWidget(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")
	widgetName := argString(args, "widget_name")

	result, err := p.withDashboardDoc(ctx, dashboardID, func(doc *dashboardDoc) error {
		removed := false
		for i := range doc.Pages {
			kept := doc.Pages[i].Layout[:0]
			for _, item := range doc.Pages[i].Layout {
				if item.widgetName() == widgetName {
					removed = true
					continue
				}
				kept = append(kept, item)
			}
			doc.Pages[i].Layout = kept
		}
		if !removed {
			return fmt.Errorf("widget %q not found", widgetName)
		}
		return nil
	})
	if err != nil || result != nil {
		return result, err
	}

	return ok(map[string]any{
		"dashboard_id": dashboardID,
		"widget_name":  widgetName,
		"message":      "widget removed",
	}), nil
}

func (p *Provider) handleRepositionWidget(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")
	widgetName := argString(args, "widget_name")
	posArg, _ := args["position"].(map[string]any)
	position := positionArg(posArg)

	result, err := p.withDashboardDoc(ctx, dashboardID, func(doc *dashboardDoc) error {
		for i := range doc.Pages {
			for j := range doc.Pages[i].Layout {
				if doc.Pages[i].Layout[j].widgetName() == widgetName {
					doc.Pages[i].Layout[j].Position = position
					return nil
				}
			}
		}
		return fmt.Errorf("widget %q not found", widgetName)
	})
	if err != nil || result != nil {
		return result, err
	}

	return ok(map[string]any{
		"dashboard_id": dashboardID,
		"widget_name":  widgetName,
		"position":     position,
	}), nil
}

func (p *Provider) handleAutoLayout(ctx context.Context, args map[string]any) (map[string]any, error) {
	dashboardID := argString(args, "dashboard_id")
	layoutType := argString(args, "layout_type")
	if layoutType == "" {
		layoutType = lakeview.LayoutGrid
	}

	arranged := 0
	result, err := p.withDashboardDoc(ctx, dashboardID, func(doc *dashboardDoc) error {
		if len(doc.Pages) == 0 {
			return fmt.Errorf("dashboard has no widgets to arrange")
		}

		for i := range doc.Pages {
			layout := doc.Pages[i].Layout
			if len(layout) == 0 {
				continue
			}

			sizes := make([]lakeview.Size, len(layout))
			for j, item := range layout {
				sizes[j] = lakeview.Size{Width: item.Position.Width, Height: item.Position.Height}
			}

			positions, err := lakeview.AutoLayout(sizes, layoutType)
			if err != nil {
				return err
			}
			for j := range layout {
				layout[j].Position = positions[j]
			}
			arranged += len(layout)
		}

		if arranged == 0 {
			return fmt.Errorf("dashboard has no widgets to arrange")
		}
		return nil
	})
	if err != nil || result != nil {
		return result, err
	}

	return ok(map[string]any{
		"dashboard_id":     dashboardID,
		"layout_type":      layoutType,
		"widgets_arranged": arranged,
	}), nil
}

func (p *Provider) handleCreateWidgetSpec(_ context.Context, args map[string]any) (map[string]any, error) {
	widgetArg, _ := args["widget"].(map[string]any)
	wc, _ := widgetConfigArg(widgetArg)

	var datasets []lakeview.Dataset
	for _, entry := range argList(args, "datasets") {
		m, isMap := entry.(map[string]any)
		if !isMap {
			continue
		}
		name, _ := m["name"].(string)
		display, _ := m["display_name"].(string)
		datasets = append(datasets, lakeview.Dataset{Name: name, DisplayName: display})
	}

	spec, err := lakeview.NewWidgetSpec(wc, datasets, argString(args, "dashboard_id"))
	if err != nil {
		return fail("failed to build %s widget: %v", wc.Type, err), nil
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal widget spec: %w", err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return nil, fmt.Errorf("failed to decode widget spec: %w", err)
	}

	return ok(map[string]any{"widget_spec": asMap}), nil
}

func (p *Provider) handleValidateExpression(_ context.Context, args map[string]any) (map[string]any, error) {
	expression := argString(args, "expression")
	if err := lakeview.ValidateExpression(expression); err != nil {
		return map[string]any{"success": true, "valid": false, "error": err.Error()}, nil
	}
	return map[string]any{"success": true, "valid": true}, nil
}
