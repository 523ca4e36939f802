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

// buildCounterWidget emits the value channel without a scale key. The
// Lakeview counter schema rejects specs whose value encoding carries a
// scale, so the generic encoding builder must not be used here.
func buildCounterWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if value, ok := cfgString(cfg, "value_field"); ok {
		encodings["value"] = ValueEncoding{
			FieldName:   value,
			DisplayName: strOr(cfg, "value_display_name", value),
		}
	}

	return chartWidget(TypeCounter, encodings, wc, datasets), nil
}

// TableColumn is the per-column display spec of a table widget: type,
// rendering mode (string/link/image/boolean), formatting, and toggles.
type TableColumn struct {
	FieldName        string   `json:"fieldName"`
	Type             string   `json:"type,omitempty"`
	DisplayAs        string   `json:"displayAs,omitempty"`
	Visible          bool     `json:"visible"`
	Order            int      `json:"order"`
	Title            string   `json:"title,omitempty"`
	NumberFormat     string   `json:"numberFormat,omitempty"`
	DateTimeFormat   string   `json:"dateTimeFormat,omitempty"`
	LinkURLTemplate  *string  `json:"linkUrlTemplate,omitempty"`
	LinkTextTemplate *string  `json:"linkTextTemplate,omitempty"`
	LinkOpenInNewTab *bool    `json:"linkOpenInNewTab,omitempty"`
	ImageURLTemplate *string  `json:"imageUrlTemplate,omitempty"`
	ImageWidth       string   `json:"imageWidth,omitempty"`
	ImageHeight      string   `json:"imageHeight,omitempty"`
	BooleanValues    []string `json:"booleanValues,omitempty"`
	AlignContent     string   `json:"alignContent,omitempty"`
	AllowSearch      *bool    `json:"allowSearch,omitempty"`
	AllowHTML        *bool    `json:"allowHTML,omitempty"`
}

func tableColumnFromMap(m map[string]any, order int) (TableColumn, bool) {
	field, ok := m["field"].(string)
	if !ok || field == "" {
		return TableColumn{}, false
	}

	col := TableColumn{
		FieldName: field,
		Type:      strOr(m, "type", "string"),
		DisplayAs: strOr(m, "display_as", "string"),
		Visible:   cfgBool(m, "visible", true),
		Order:     cfgInt(m, "order", order),
		Title:     strOr(m, "title", field),
	}

	if f, ok := cfgString(m, "number_format"); ok {
		col.NumberFormat = f
	}
	if f, ok := cfgString(m, "date_format"); ok {
		col.DateTimeFormat = f
	}

	switch col.DisplayAs {
	case "link":
		linkURL := strOr(m, "link_url", "")
		linkText := strOr(m, "link_text", "")
		newTab := cfgBool(m, "link_new_tab", true)
		col.LinkURLTemplate = &linkURL
		col.LinkTextTemplate = &linkText
		col.LinkOpenInNewTab = &newTab
	case "image":
		imageURL := strOr(m, "image_url", "")
		col.ImageURLTemplate = &imageURL
		col.ImageWidth = strOr(m, "image_width", "100px")
		col.ImageHeight = strOr(m, "image_height", "100px")
	}

	if col.Type == "boolean" {
		col.BooleanValues = []string{"false", "true"}
		if values := cfgStrings(m, "boolean_values"); len(values) > 0 {
			col.BooleanValues = values
		}
	}

	if align, ok := cfgString(m, "align"); ok {
		col.AlignContent = align
	}

	allowSearch := cfgBool(m, "allow_search", true)
	allowHTML := cfgBool(m, "allow_html", false)
	col.AllowSearch = &allowSearch
	col.AllowHTML = &allowHTML

	return col, true
}

// buildTableWidget builds the richest widget spec in the system:
// per-column display configs plus table-level pagination and rendering
// options. Columns given as plain strings get string-typed defaults.
func buildTableWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config

	columns := []TableColumn{}
	if raw, ok := cfgList(cfg, "columns"); ok {
		for i, entry := range raw {
			switch c := entry.(type) {
			case string:
				columns = append(columns, TableColumn{
					FieldName: c,
					Type:      "string",
					DisplayAs: "string",
					Visible:   true,
					Order:     i,
					Title:     c,
				})
			case map[string]any:
				if col, ok := tableColumnFromMap(c, i); ok {
					columns = append(columns, col)
				}
			}
		}
	}

	spec := Spec{
		Version:    WidgetVersions[TypeTable],
		WidgetType: TypeTable,
		Encodings:  map[string]any{"columns": columns},
		Frame:      buildFrame(cfg),
	}

	if v := cfgInt(cfg, "items_per_page", -1); v >= 0 {
		spec.ItemsPerPage = &v
	}
	if v := cfgInt(cfg, "pagination_size", -1); v >= 0 {
		spec.PaginationSize = &v
	}
	if _, ok := cfg["condensed"]; ok {
		v := cfgBool(cfg, "condensed", false)
		spec.Condensed = &v
	}
	if _, ok := cfg["with_row_number"]; ok {
		v := cfgBool(cfg, "with_row_number", false)
		spec.WithRowNumber = &v
	}
	if _, ok := cfg["allow_html_default"]; ok {
		v := cfgBool(cfg, "allow_html_default", false)
		spec.AllowHTMLByDefault = &v
	}

	return &WidgetSpec{
		Name:    GenerateID(),
		Spec:    spec,
		Queries: buildWidgetQueries(wc, datasets),
	}, nil
}

// buildPivotWidget maps rows/columns/values field lists onto the pivot
// encoding channels.
func buildPivotWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	for _, channel := range []string{"rows", "columns", "values"} {
		names := cfgStrings(cfg, channel)
		if len(names) == 0 {
			continue
		}
		refs := make([]FieldRef, 0, len(names))
		for _, name := range names {
			refs = append(refs, FieldRef{FieldName: name})
		}
		encodings[channel] = refs
	}

	return chartWidget(TypePivot, encodings, wc, datasets), nil
}

// buildTextWidget renders static text or markdown. Text widgets carry
// no schema version and only bind a dataset when one is named.
func buildTextWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if text, ok := cfgString(cfg, "text"); ok {
		encodings["text"] = text
	}
	if markdown, ok := cfgString(cfg, "markdown"); ok {
		encodings["markdown"] = markdown
	}

	var queries []NamedQuery
	if wc.Dataset != "" {
		queries = []NamedQuery{{
			Name:  GenerateID(),
			Query: Query{DatasetName: FindDatasetID(wc.Dataset, datasets)},
		}}
	}

	return &WidgetSpec{
		Name:    GenerateID(),
		Spec:    Spec{WidgetType: TypeText, Encodings: encodings},
		Queries: queries,
	}, nil
}
