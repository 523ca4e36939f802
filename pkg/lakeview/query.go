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

package lakeview

import "fmt"

// Role keys scanned by the query builder, in emission order. Each
// present key yields one query field; a matching <role>_expression key
// overrides the default backtick-quoted reference, and a
// <role>_aggregation key wraps the field in an aggregate function.
var queryFieldKeys = []string{
	"x_field",
	"y_field",
	"color_field",
	"size_field",
	"value_field",
	"category_field",
	"source_field",
	"target_field",
	"stage_field",
	"location_field",
	"latitude_field",
	"longitude_field",
}

// ResolveDataset looks up a dataset id by display name. The second
// return reports whether the name actually matched; callers that care
// about binding the right dataset should check it instead of relying on
// FindDatasetID's fallback.
func ResolveDataset(displayName string, datasets []Dataset) (string, bool) {
	for _, ds := range datasets {
		if ds.DisplayName == displayName {
			return ds.Name, true
		}
	}
	return "", false
}

// FindDatasetID resolves a dataset reference to an id, always returning
// a usable value: the matching dataset's id, else the first dataset's id,
// else a freshly generated id. The fallback keeps widget construction
// total but may bind the wrong dataset on a name mismatch; use
// ResolveDataset to detect that.
func FindDatasetID(displayName string, datasets []Dataset) string {
	if id, ok := ResolveDataset(displayName, datasets); ok {
		return id
	}
	if len(datasets) > 0 {
		return datasets[0].Name
	}
	return GenerateID()
}

// columnFieldName extracts the field name from a table column entry,
// which is either a plain string or a full column config map.
func columnFieldName(col any) (string, bool) {
	switch c := col.(type) {
	case string:
		return c, c != ""
	case map[string]any:
		if f, ok := c["field"].(string); ok && f != "" {
			return f, true
		}
	}
	return "", false
}

// fieldExpression resolves the SQL expression for one role key. An
// explicit <role>_expression wins; otherwise a <role>_aggregation wraps
// the field in that aggregate function; otherwise the bare quoted
// reference.
func fieldExpression(cfg map[string]any, key, name string) string {
	role := key[:len(key)-len("_field")]
	if expr, ok := cfgString(cfg, role+"_expression"); ok {
		return expr
	}
	if fn, ok := cfgString(cfg, role+"_aggregation"); ok {
		return AggregationExpr(fn, name)
	}
	return fmt.Sprintf("`%s`", name)
}

// buildWidgetQueries assembles the single backing query for a widget:
// the resolved dataset reference plus one field entry per role key
// present in the config, deduplicated against any table columns.
func buildWidgetQueries(wc WidgetConfig, datasets []Dataset) []NamedQuery {
	cfg := wc.Config

	query := Query{
		DatasetName:   FindDatasetID(wc.Dataset, datasets),
		Disaggregated: cfgBool(cfg, "disaggregated", false),
	}

	var fields []Field
	for _, key := range queryFieldKeys {
		name, ok := cfgString(cfg, key)
		if !ok {
			continue
		}
		fields = append(fields, Field{Name: name, Expression: fieldExpression(cfg, key, name)})
	}

	if cols, ok := cfgList(cfg, "columns"); ok {
		for _, col := range cols {
			name, ok := columnFieldName(col)
			if !ok {
				continue
			}
			seen := false
			for _, f := range fields {
				if f.Name == name {
					seen = true
					break
				}
			}
			if !seen {
				fields = append(fields, Field{Name: name, Expression: fmt.Sprintf("`%s`", name)})
			}
		}
	}

	query.Fields = fields

	return []NamedQuery{{Name: "main_query", Query: query}}
}
