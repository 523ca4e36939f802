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

// Package prompts exposes reusable prompt templates guiding LLM clients
// through multi-step dashboard workflows.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakedeck/lakedeck/pkg/mcp/protocol"
)

const buildDashboardGuidance = `You are building a Databricks Lakeview dashboard%s.

Follow these steps:

1. Explore the data. Use list_uc_catalogs, list_uc_schemas, and
   list_uc_tables to find relevant tables, then describe_uc_table to see
   their columns. Run execute_dbsql with small LIMIT queries to sample
   the data before committing to a design.

2. Design the datasets. Each widget reads from a named dataset backed by
   one SQL query. Prefer a few focused queries over one wide query:
   aggregate in SQL where possible so widgets stay simple.

3. Choose widget types. Use counter for single KPIs, bar/line/area for
   trends and comparisons, pie for small categorical breakdowns, table
   for detail rows, and filter-single-select or
   filter-date-range-picker to let viewers slice the data. Preview any
   configuration with create_widget_spec before committing.

4. Create the dashboard with create_lakeview_dashboard, passing the
   datasets and widget configurations together. Widgets are arranged
   automatically; pass layout_type if the default grid does not fit.

5. Refine. Use add_dashboard_widget, remove_dashboard_widget, and
   reposition_widget for individual changes, or auto_layout_dashboard
   to rearrange everything at once. Publish with
   publish_lakeview_dashboard when the draft looks right.

Widget config fields use snake_case roles: x_field, y_field,
color_field, value_field, category_field, plus title, x_axis_title and
y_axis_title. Aggregations go in <role>_aggregation (sum, avg, count,
min, max) or as a full SQL override in <role>_expression.`

// Provider implements server.PromptProvider with the server's built-in
// workflow prompts.
type Provider struct{}

// NewProvider creates the prompt provider.
func NewProvider() *Provider {
	return &Provider{}
}

// ListPrompts returns all available prompts.
func (p *Provider) ListPrompts(_ context.Context) ([]protocol.Prompt, error) {
	return []protocol.Prompt{
		{
			Name:        "build_lakeview_dashboard",
			Description: "Step-by-step workflow for designing and creating a Lakeview dashboard from workspace data.",
			Arguments: []protocol.PromptArgument{
				{
					Name:        "topic",
					Description: "What the dashboard should be about, e.g. 'monthly sales by region'",
				},
			},
		},
	}, nil
}

// GetPrompt renders a prompt by name.
func (p *Provider) GetPrompt(_ context.Context, name string, args map[string]interface{}) (*protocol.GetPromptResult, error) {
	if name != "build_lakeview_dashboard" {
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}

	topic := ""
	if v, ok := args["topic"].(string); ok && strings.TrimSpace(v) != "" {
		topic = " about " + strings.TrimSpace(v)
	}

	return &protocol.GetPromptResult{
		Description: "Lakeview dashboard building workflow",
		Messages: []protocol.PromptMessage{
			{
				Role: "user",
				Content: protocol.Content{
					Type: "text",
					Text: fmt.Sprintf(buildDashboardGuidance, topic),
				},
			},
		},
	}, nil
}
