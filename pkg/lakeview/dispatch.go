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

// Legacy widget-type names still accepted in configs.
var typeAliases = map[string]string{
	"dropdown":          TypeFilterSingle,
	"multi_select":      TypeFilterMulti,
	"date_range":        TypeFilterDateRange,
	"filter-date-range": TypeFilterDateRange,
}

// NormalizeWidgetType resolves legacy aliases to canonical widget type
// names. An empty type resolves to table.
func NormalizeWidgetType(widgetType string) string {
	if widgetType == "" {
		return TypeTable
	}
	if canonical, ok := typeAliases[widgetType]; ok {
		return canonical
	}
	return widgetType
}

// Builder dispatches widget configurations to the per-type factories.
// With Strict set, unknown widget types are rejected; otherwise they
// fall back to the table factory, which renders any field list.
type Builder struct {
	Strict bool
}

// Build routes a widget configuration to its factory. dashboardID is
// only consulted by the filter widgets, which fabricate query bindings
// from it; pass "" when no dashboard context exists.
func (b Builder) Build(wc WidgetConfig, datasets []Dataset, dashboardID string) (*WidgetSpec, error) {
	switch NormalizeWidgetType(wc.Type) {
	case TypeBar:
		return buildBarWidget(wc, datasets)
	case TypeLine:
		return buildLineWidget(wc, datasets)
	case TypeArea:
		return buildAreaWidget(wc, datasets)
	case TypeScatter:
		return buildScatterWidget(wc, datasets)
	case TypePie:
		return buildPieWidget(wc, datasets)
	case TypeHistogram:
		return buildHistogramWidget(wc, datasets)
	case TypeHeatmap:
		return buildHeatmapWidget(wc, datasets)
	case TypeBox:
		return buildBoxWidget(wc, datasets)
	case TypeSankey:
		return buildSankeyWidget(wc, datasets)
	case TypeChoroplethMap:
		return buildChoroplethWidget(wc, datasets)
	case TypeSymbolMap:
		return buildSymbolMapWidget(wc, datasets)
	case TypeFunnel:
		return buildFunnelWidget(wc, datasets)
	case TypeCombo:
		return buildComboWidget(wc, datasets)
	case TypeRangeSlider:
		return buildRangeSliderWidget(wc, datasets)
	case TypeCounter:
		return buildCounterWidget(wc, datasets)
	case TypeTable:
		return buildTableWidget(wc, datasets)
	case TypePivot:
		return buildPivotWidget(wc, datasets)
	case TypeText:
		return buildTextWidget(wc, datasets)
	case TypeFilterSingle:
		return buildFilterSingleSelectWidget(wc, datasets, dashboardID)
	case TypeFilterMulti:
		return buildFilterMultiSelectWidget(wc, datasets, dashboardID)
	case TypeFilterDateRange:
		return buildFilterDateRangeWidget(wc, datasets, dashboardID)
	default:
		if b.Strict {
			return nil, &ConfigError{WidgetType: wc.Type, Reason: "unsupported widget type"}
		}
		return buildTableWidget(wc, datasets)
	}
}

// NewWidgetSpec builds a widget spec with the default permissive
// dispatcher.
func NewWidgetSpec(wc WidgetConfig, datasets []Dataset, dashboardID string) (*WidgetSpec, error) {
	return Builder{}.Build(wc, datasets, dashboardID)
}
