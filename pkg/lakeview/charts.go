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

// chartWidget assembles the common widget envelope: generated name,
// versioned spec with optional title frame, and the backing query.
func chartWidget(widgetType string, encodings map[string]any, wc WidgetConfig, datasets []Dataset) *WidgetSpec {
	return &WidgetSpec{
		Name: GenerateID(),
		Spec: Spec{
			Version:    WidgetVersions[widgetType],
			WidgetType: widgetType,
			Encodings:  encodings,
			Frame:      buildFrame(wc.Config),
		},
		Queries: buildWidgetQueries(wc, datasets),
	}
}

// buildXYChartWidget covers the single-axis cartesian chart family
// (bar, line, area, scatter). withSize enables the size channel used by
// scatter bubble charts.
func buildXYChartWidget(widgetType string, wc WidgetConfig, datasets []Dataset, withSize bool) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if x, ok := cfgString(cfg, "x_field"); ok {
		encodings["x"] = BuildEncoding(x, cfg, "x")
	}
	if y, ok := cfgString(cfg, "y_field"); ok {
		encodings["y"] = BuildEncoding(y, cfg, "y")
	}
	if color, ok := cfgString(cfg, "color_field"); ok {
		encodings["color"] = BuildEncoding(color, cfg, "color")
	}
	if withSize {
		if size, ok := cfgString(cfg, "size_field"); ok {
			encodings["size"] = BuildEncoding(size, cfg, "size")
		}
	}

	return chartWidget(widgetType, encodings, wc, datasets), nil
}

func buildBarWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	return buildXYChartWidget(TypeBar, wc, datasets, false)
}

func buildLineWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	return buildXYChartWidget(TypeLine, wc, datasets, false)
}

func buildAreaWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	return buildXYChartWidget(TypeArea, wc, datasets, false)
}

func buildScatterWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	return buildXYChartWidget(TypeScatter, wc, datasets, true)
}

// buildPieWidget maps value_field to the angle channel and
// category_field to the color channel.
func buildPieWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if value, ok := cfgString(cfg, "value_field"); ok {
		encodings["angle"] = Encoding{
			FieldName:   value,
			Scale:       &Scale{Type: ScaleQuantitative},
			DisplayName: strOr(cfg, "value_display_name", value),
		}
	}
	if category, ok := cfgString(cfg, "category_field"); ok {
		encodings["color"] = Encoding{
			FieldName:   category,
			Scale:       &Scale{Type: ScaleCategorical},
			DisplayName: strOr(cfg, "category_display_name", category),
		}
	}

	return chartWidget(TypePie, encodings, wc, datasets), nil
}

// buildHistogramWidget bins the x field. The encoding's fieldName and
// the query's field name must be the same binned form character for
// character or the renderer cannot join them, so the binned name is
// computed once and threaded into both through a derived config copy.
func buildHistogramWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	derived := make(map[string]any, len(cfg)+2)
	for k, v := range cfg {
		derived[k] = v
	}

	if x, ok := cfgString(cfg, "x_field"); ok {
		binWidth := cfgInt(cfg, "bin_width", 10)
		binned := fmt.Sprintf("bin(%s, binWidth=%d)", x, binWidth)

		encodings["x"] = Encoding{
			FieldName:   binned,
			Scale:       &Scale{Type: ScaleQuantitative},
			DisplayName: strOr(cfg, "x_display_name", x),
		}
		derived["x_field"] = binned
		derived["x_expression"] = BinExpr(x, binWidth)
	}

	yField := strOr(cfg, "y_field", "count(*)")
	encodings["y"] = Encoding{
		FieldName:   yField,
		Scale:       &Scale{Type: ScaleQuantitative},
		DisplayName: strOr(cfg, "y_display_name", "Count of Records"),
	}
	derived["y_field"] = yField
	if yField == "count(*)" {
		derived["y_expression"] = CountStarExpr()
	} else {
		derived["y_expression"] = yField
	}

	derivedWC := WidgetConfig{Type: wc.Type, Dataset: wc.Dataset, Config: derived}
	return chartWidget(TypeHistogram, encodings, derivedWC, datasets), nil
}

// buildHeatmapWidget emits categorical x/y channels and a quantitative
// color channel sourced from color_field or value_field.
func buildHeatmapWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if x, ok := cfgString(cfg, "x_field"); ok {
		enc := Encoding{
			FieldName:   x,
			Scale:       &Scale{Type: ScaleCategorical},
			DisplayName: strOr(cfg, "x_display_name", x),
		}
		if cfgBool(cfg, "hide_x_title", false) {
			enc.Axis = &Axis{HideTitle: true}
		}
		encodings["x"] = enc
	}

	if y, ok := cfgString(cfg, "y_field"); ok {
		enc := Encoding{
			FieldName:   y,
			Scale:       &Scale{Type: ScaleCategorical},
			DisplayName: strOr(cfg, "y_display_name", y),
		}
		if cfgBool(cfg, "hide_y_title", false) {
			enc.Axis = &Axis{HideTitle: true}
		}
		encodings["y"] = enc
	}

	colorField := strOr(cfg, "color_field", strOr(cfg, "value_field", ""))
	if colorField != "" {
		display := strOr(cfg, "color_display_name", strOr(cfg, "value_display_name", colorField))
		encodings["color"] = Encoding{
			FieldName:   colorField,
			Scale:       buildColorScale(ScaleQuantitative, cfg),
			DisplayName: display,
		}
	}

	return chartWidget(TypeHeatmap, encodings, wc, datasets), nil
}

// BoxYEncoding is the five-statistic y channel of a box plot. FieldName
// is the single-value fallback used when no statistic fields are given.
type BoxYEncoding struct {
	Scale        *Scale    `json:"scale,omitempty"`
	FieldName    string    `json:"fieldName,omitempty"`
	WhiskerStart *FieldRef `json:"whiskerStart,omitempty"`
	BoxStart     *FieldRef `json:"boxStart,omitempty"`
	BoxMid       *FieldRef `json:"boxMid,omitempty"`
	BoxEnd       *FieldRef `json:"boxEnd,omitempty"`
	WhiskerEnd   *FieldRef `json:"whiskerEnd,omitempty"`
}

// buildBoxWidget requires a categorical x axis and either the
// statistical fields (min/q1/median/q3/max) or a plain value_field.
func buildBoxWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	xField := strOr(cfg, "x_field", strOr(cfg, "category_field", ""))
	if xField == "" {
		return nil, &ConfigError{WidgetType: TypeBox, Reason: "requires an x_field or category_field"}
	}
	encodings["x"] = Encoding{FieldName: xField, Scale: &Scale{Type: ScaleCategorical}}

	y := BoxYEncoding{Scale: &Scale{Type: ScaleQuantitative}}
	if f, ok := cfgString(cfg, "min_field"); ok {
		y.WhiskerStart = &FieldRef{FieldName: f}
	}
	if f, ok := cfgString(cfg, "q1_field"); ok {
		y.BoxStart = &FieldRef{FieldName: f}
	}
	if f, ok := cfgString(cfg, "median_field"); ok {
		y.BoxMid = &FieldRef{FieldName: f}
	}
	if f, ok := cfgString(cfg, "q3_field"); ok {
		y.BoxEnd = &FieldRef{FieldName: f}
	}
	if f, ok := cfgString(cfg, "max_field"); ok {
		y.WhiskerEnd = &FieldRef{FieldName: f}
	}

	hasStats := y.WhiskerStart != nil || y.BoxStart != nil || y.BoxMid != nil ||
		y.BoxEnd != nil || y.WhiskerEnd != nil
	if !hasStats {
		value, ok := cfgString(cfg, "value_field")
		if !ok {
			return nil, &ConfigError{
				WidgetType: TypeBox,
				Reason:     "requires statistical fields (min_field, q1_field, ...) or value_field",
			}
		}
		y.FieldName = value
	}
	encodings["y"] = y

	return chartWidget(TypeBox, encodings, wc, datasets), nil
}

// buildFunnelWidget needs a quantitative value and a categorical stage.
// When stage_field is absent, the stage is inferred from category_field,
// x_field, or color_field, in that order.
func buildFunnelWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	value, hasValue := cfgString(cfg, "value_field")
	if hasValue {
		encodings["x"] = Encoding{
			FieldName:   value,
			Scale:       &Scale{Type: ScaleQuantitative},
			DisplayName: strOr(cfg, "value_display_name", value),
		}
	}

	stage, hasStage := cfgString(cfg, "stage_field")
	if !hasStage {
		for _, key := range []string{"category_field", "x_field", "color_field"} {
			if f, ok := cfgString(cfg, key); ok {
				stage, hasStage = f, true
				break
			}
		}
	}
	if hasStage {
		encodings["y"] = Encoding{
			FieldName:   stage,
			Scale:       &Scale{Type: ScaleCategorical},
			DisplayName: strOr(cfg, "stage_display_name", stage),
		}
	}

	encodings["label"] = map[string]any{"show": true}

	if !hasValue {
		return nil, &ConfigError{WidgetType: TypeFunnel, Reason: "requires a value_field for the quantitative axis"}
	}
	if !hasStage {
		return nil, &ConfigError{
			WidgetType: TypeFunnel,
			Reason:     "requires a stage_field (or category_field, x_field, color_field) for the categorical axis",
		}
	}

	return chartWidget(TypeFunnel, encodings, wc, datasets), nil
}

// ComboField is one series on a combo chart axis.
type ComboField struct {
	FieldName   string `json:"fieldName"`
	DisplayName string `json:"displayName"`
	ChartType   string `json:"chartType"`
}

// ComboAxisEncoding is a multi-series combo chart axis (y or y2).
type ComboAxisEncoding struct {
	Fields []ComboField `json:"fields"`
	Scale  *Scale       `json:"scale"`
}

func comboAxisFields(cfg map[string]any, key, defaultChartType string) ([]ComboField, bool) {
	raw, ok := cfgList(cfg, key)
	if !ok {
		return nil, false
	}
	fields := make([]ComboField, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		field, ok := m["field"].(string)
		if !ok || field == "" {
			continue
		}
		cf := ComboField{FieldName: field, DisplayName: field, ChartType: defaultChartType}
		if d, ok := m["displayName"].(string); ok && d != "" {
			cf.DisplayName = d
		}
		if ct, ok := m["chartType"].(string); ok && ct != "" {
			cf.ChartType = ct
		}
		fields = append(fields, cf)
	}
	return fields, true
}

// buildComboWidget supports two independent y axes, each a list of
// series with per-series chart types (bars on y, lines on y2 by
// default).
func buildComboWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if x, ok := cfgString(cfg, "x_field"); ok {
		encodings["x"] = Encoding{
			FieldName:   x,
			Scale:       &Scale{Type: strOr(cfg, "x_scale_type", ScaleCategorical)},
			DisplayName: strOr(cfg, "x_display_name", x),
		}
	}

	if fields, ok := comboAxisFields(cfg, "y_fields", TypeBar); ok {
		encodings["y"] = ComboAxisEncoding{Fields: fields, Scale: &Scale{Type: ScaleQuantitative}}
	}
	if fields, ok := comboAxisFields(cfg, "y2_fields", TypeLine); ok {
		encodings["y2"] = ComboAxisEncoding{Fields: fields, Scale: &Scale{Type: ScaleQuantitative}}
	}

	return chartWidget(TypeCombo, encodings, wc, datasets), nil
}

// buildSankeyWidget emits the flow value plus an ordered stages list
// built from source_field and target_field.
func buildSankeyWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if value, ok := cfgString(cfg, "value_field"); ok {
		encodings["value"] = ValueEncoding{
			FieldName:   value,
			DisplayName: strOr(cfg, "value_display_name", "Value"),
		}
	}

	var stages []ValueEncoding
	if source, ok := cfgString(cfg, "source_field"); ok {
		stages = append(stages, ValueEncoding{
			FieldName:   source,
			DisplayName: strOr(cfg, "source_display_name", "Source"),
		})
	}
	if target, ok := cfgString(cfg, "target_field"); ok {
		stages = append(stages, ValueEncoding{
			FieldName:   target,
			DisplayName: strOr(cfg, "target_display_name", "Target"),
		})
	}
	if len(stages) > 0 {
		encodings["stages"] = stages
	}

	return chartWidget(TypeSankey, encodings, wc, datasets), nil
}
