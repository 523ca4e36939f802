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

// FilterField is one filterable field binding on a filter widget.
// QueryName follows the "dashboards/{dashboardId}/datasets/{datasetId}_{field}"
// convention the Lakeview runtime uses to resolve the field's query.
type FilterField struct {
	FieldName   string `json:"fieldName"`
	DisplayName string `json:"displayName,omitempty"`
	QueryName   string `json:"queryName,omitempty"`
}

func filterQueryName(dashboardID, datasetID, field string) string {
	return fmt.Sprintf("dashboards/%s/datasets/%s_%s", dashboardID, datasetID, field)
}

// buildFilterFields resolves a filter widget's field bindings from one
// of three config forms, in priority order: a new-style "fields" array,
// a legacy single "field" key, or a synthesized default when neither is
// present and enough dashboard context exists to fabricate a query
// binding. defaultField names the fallback used by the last form.
func buildFilterFields(wc WidgetConfig, datasets []Dataset, dashboardID, defaultField string) []FilterField {
	cfg := wc.Config
	fields := []FilterField{}

	if raw, ok := cfgList(cfg, "fields"); ok {
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name, ok := m["fieldName"].(string)
			if !ok || name == "" {
				continue
			}
			field := FilterField{
				FieldName:   name,
				DisplayName: strOr(m, "displayName", name),
			}
			if qn, ok := cfgString(m, "queryName"); ok {
				field.QueryName = qn
			}
			fields = append(fields, field)
		}
		return fields
	}

	if name, ok := cfgString(cfg, "field"); ok {
		field := FilterField{
			FieldName:   name,
			DisplayName: strOr(cfg, "display_name", name),
		}
		if qn, ok := cfgString(cfg, "query_name"); ok {
			field.QueryName = qn
		} else if len(datasets) > 0 && dashboardID != "" {
			field.QueryName = filterQueryName(dashboardID, FindDatasetID(wc.Dataset, datasets), name)
		}
		return append(fields, field)
	}

	if len(datasets) > 0 && dashboardID != "" {
		name := strOr(cfg, "default_field", defaultField)
		fields = append(fields, FilterField{
			FieldName:   name,
			DisplayName: humanize(name),
			QueryName:   filterQueryName(dashboardID, FindDatasetID(wc.Dataset, datasets), name),
		})
	}

	return fields
}

// filterWidget assembles a filter widget spec. Filter widgets carry no
// queries block; their bindings live in the encoded field list.
func filterWidget(widgetType string, wc WidgetConfig, datasets []Dataset, dashboardID, defaultField string) (*WidgetSpec, error) {
	return &WidgetSpec{
		Name: GenerateID(),
		Spec: Spec{
			Version:    WidgetVersions[widgetType],
			WidgetType: widgetType,
			Encodings: map[string]any{
				"fields": buildFilterFields(wc, datasets, dashboardID, defaultField),
			},
			Frame: buildFrame(wc.Config),
		},
	}, nil
}

func buildFilterSingleSelectWidget(wc WidgetConfig, datasets []Dataset, dashboardID string) (*WidgetSpec, error) {
	return filterWidget(TypeFilterSingle, wc, datasets, dashboardID, "category")
}

func buildFilterMultiSelectWidget(wc WidgetConfig, datasets []Dataset, dashboardID string) (*WidgetSpec, error) {
	return filterWidget(TypeFilterMulti, wc, datasets, dashboardID, "category")
}

func buildFilterDateRangeWidget(wc WidgetConfig, datasets []Dataset, dashboardID string) (*WidgetSpec, error) {
	return filterWidget(TypeFilterDateRange, wc, datasets, dashboardID, "date")
}

// SliderField is the field binding of a range-slider widget, carrying
// optional numeric bounds.
type SliderField struct {
	FieldName   string   `json:"fieldName"`
	DisplayName string   `json:"displayName,omitempty"`
	DataType    string   `json:"dataType,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
}

// buildRangeSliderWidget builds the numeric range filter. Unlike the
// select/date filters it keeps a backing query for its bounds.
func buildRangeSliderWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config

	fields := []SliderField{}
	if name, ok := cfgString(cfg, "field"); ok {
		field := SliderField{
			FieldName:   name,
			DisplayName: strOr(cfg, "display_name", name),
			DataType:    strOr(cfg, "data_type", "integer"),
		}
		if v, ok := cfgFloat(cfg, "min_value"); ok {
			field.Min = &v
		}
		if v, ok := cfgFloat(cfg, "max_value"); ok {
			field.Max = &v
		}
		if v, ok := cfgFloat(cfg, "step"); ok {
			field.Step = &v
		}
		fields = append(fields, field)
	}

	return &WidgetSpec{
		Name: GenerateID(),
		Spec: Spec{
			Version:    WidgetVersions[TypeRangeSlider],
			WidgetType: TypeRangeSlider,
			Encodings:  map[string]any{"fields": fields},
			Frame:      buildFrame(cfg),
		},
		Queries: buildWidgetQueries(wc, datasets),
	}, nil
}
