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

// Package lakeview builds Databricks Lakeview dashboard widget specifications.
//
// The package translates simplified widget configurations (chart type, field
// names, display options) into the nested JSON structure the Lakeview
// rendering engine expects: per-type schema versions, channel encodings with
// scale/axis/legend metadata, backing queries with field expressions, and
// grid positions computed by the auto-layout engine.
//
// Everything here is pure computation over immutable inputs; it is safe to
// call from multiple goroutines without synchronization.
package lakeview

import "fmt"

// Dataset is a named, reusable query result set that widgets bind to.
// Name is the internal identifier used in query references; DisplayName is
// what dashboard authors see and what WidgetConfig.Dataset refers to.
type Dataset struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// WidgetConfig is the caller-supplied description of a single widget.
// Config holds role-specific keys such as "x_field", "y_scale_type",
// "color_mappings", "title", plus widget-type-specific keys ("columns",
// "bin_width", "y_fields", ...). Missing optional keys are silently
// omitted from the output; the few hard requirements (box plot axes,
// funnel value/stage) produce a *ConfigError.
type WidgetConfig struct {
	Type    string         `json:"type"`
	Dataset string         `json:"dataset,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
}

// WidgetSpec is the complete specification of one dashboard widget:
// an opaque name, the rendering spec, and the backing queries.
type WidgetSpec struct {
	Name    string       `json:"name"`
	Spec    Spec         `json:"spec"`
	Queries []NamedQuery `json:"queries,omitempty"`
}

// Spec describes how a widget renders. Version is the per-type schema
// version from WidgetVersions; Encodings maps visual channels ("x", "y",
// "color", ...) to channel-specific encoding structures.
type Spec struct {
	Version    int            `json:"version,omitempty"`
	WidgetType string         `json:"widgetType"`
	Encodings  map[string]any `json:"encodings"`
	Frame      *Frame         `json:"frame,omitempty"`

	// Table display options.
	ItemsPerPage       *int  `json:"itemsPerPage,omitempty"`
	PaginationSize     *int  `json:"paginationSize,omitempty"`
	Condensed          *bool `json:"condensed,omitempty"`
	WithRowNumber      *bool `json:"withRowNumber,omitempty"`
	AllowHTMLByDefault *bool `json:"allowHTMLByDefault,omitempty"`
}

// Frame is the widget's title wrapper block.
type Frame struct {
	Title     string `json:"title"`
	ShowTitle bool   `json:"showTitle"`
}

// NamedQuery pairs a query with the name widget encodings reference it by.
type NamedQuery struct {
	Name  string `json:"name"`
	Query Query  `json:"query"`
}

// Query describes the data a widget needs from its dataset.
type Query struct {
	DatasetName   string  `json:"datasetName"`
	Disaggregated bool    `json:"disaggregated"`
	Fields        []Field `json:"fields,omitempty"`
}

// Field is one entry in a query's fields array: the name the encodings
// reference and the SQL expression that produces it.
type Field struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// FieldRef references a field by name with no further metadata.
type FieldRef struct {
	FieldName string `json:"fieldName"`
}

// ConfigError reports a widget configuration that cannot produce a valid
// spec (e.g. a box plot without an x-axis field). All factories signal
// configuration failures through this type; none panic.
type ConfigError struct {
	WidgetType string
	Reason     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s widget: %s", e.WidgetType, e.Reason)
}
