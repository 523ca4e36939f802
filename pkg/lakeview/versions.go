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

// Widget type names as they appear in emitted specs.
const (
	TypeBar              = "bar"
	TypeLine             = "line"
	TypeArea             = "area"
	TypeScatter          = "scatter"
	TypeHeatmap          = "heatmap"
	TypeHistogram        = "histogram"
	TypePie              = "pie"
	TypeBox              = "box"
	TypeFunnel           = "funnel"
	TypeCombo            = "combo"
	TypeSankey           = "sankey"
	TypePivot            = "pivot"
	TypeCounter          = "counter"
	TypeTable            = "table"
	TypeText             = "text"
	TypeFilterSingle     = "filter-single-select"
	TypeFilterMulti      = "filter-multi-select"
	TypeFilterDateRange  = "filter-date-range-picker"
	TypeRangeSlider      = "range-slider"
	TypeChoroplethMap    = "choropleth-map"
	TypeSymbolMap        = "symbol-map"
)

// WidgetVersions is the schema version the Lakeview rendering engine
// requires for each widget type. This table is a fixed external contract:
// a wrong version breaks rendering even when the JSON shape is correct.
//
// choropleth-map is 1, not the schema's 3 — verified against dashboards
// the renderer actually accepts.
var WidgetVersions = map[string]int{
	TypeBar:             3,
	TypeLine:            3,
	TypeArea:            3,
	TypeScatter:         3,
	TypeHeatmap:         3,
	TypeHistogram:       3,
	TypePie:             3,
	TypeBox:             3,
	TypeFunnel:          3,
	TypeCombo:           3,
	TypeSankey:          1,
	TypePivot:           1,
	TypeCounter:         2,
	TypeTable:           1,
	TypeFilterSingle:    2,
	TypeFilterMulti:     2,
	TypeFilterDateRange: 2,
	TypeRangeSlider:     3,
	TypeChoroplethMap:   1,
	TypeSymbolMap:       3,
}

// VersionFor returns the schema version for a widget type.
func VersionFor(widgetType string) (int, bool) {
	v, ok := WidgetVersions[widgetType]
	return v, ok
}
