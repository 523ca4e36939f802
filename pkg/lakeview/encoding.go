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

// Scale types accepted by the Lakeview schema.
const (
	ScaleCategorical  = "categorical"
	ScaleQuantitative = "quantitative"
	ScaleTemporal     = "temporal"
)

// Scale describes how field values map onto a visual channel.
type Scale struct {
	Type      string         `json:"type"`
	Sort      *Sort          `json:"sort,omitempty"`
	ColorRamp *ColorRamp     `json:"colorRamp,omitempty"`
	Mappings  []ColorMapping `json:"mappings,omitempty"`
}

// Sort orders a categorical scale by the named criterion.
type Sort struct {
	By string `json:"by"`
}

// ColorRamp selects a named color scheme for quantitative color scales
// (redblue, viridis, plasma, ...).
type ColorRamp struct {
	Mode   string `json:"mode"`
	Scheme string `json:"scheme"`
}

// ColorMapping pins a specific categorical value to a specific color.
type ColorMapping struct {
	Value any    `json:"value"`
	Color string `json:"color"`
}

// Axis carries per-channel axis display options.
type Axis struct {
	Title     string `json:"title,omitempty"`
	HideTitle bool   `json:"hideTitle,omitempty"`
}

// Legend carries color-legend display options.
type Legend struct {
	Title string `json:"title"`
}

// Encoding maps a data field to a visual channel with its scale, axis,
// and display metadata.
type Encoding struct {
	FieldName   string  `json:"fieldName"`
	Scale       *Scale  `json:"scale,omitempty"`
	Axis        *Axis   `json:"axis,omitempty"`
	DisplayName string  `json:"displayName,omitempty"`
	Legend      *Legend `json:"legend,omitempty"`
}

// ValueEncoding is a bare field/label pair used where the schema forbids
// a scale: counter values, sankey value/stage entries, symbol-map
// coordinates.
type ValueEncoding struct {
	FieldName   string `json:"fieldName"`
	DisplayName string `json:"displayName,omitempty"`
}

// defaultScaleType returns the scale type assumed for a role when the
// config does not name one.
func defaultScaleType(role string) string {
	switch role {
	case "x", "color":
		return ScaleCategorical
	default:
		return ScaleQuantitative
	}
}

// BuildEncoding constructs the encoding for one visual channel. role is
// the channel name ("x", "y", "color", "size", ...); it selects which
// config keys apply: <role>_scale_type, <role>_display_name,
// <role>_axis_title, <role>_sort. Color channels additionally honor
// color_scheme, color_mappings, and legend_title.
func BuildEncoding(field string, cfg map[string]any, role string) Encoding {
	scaleType := strOr(cfg, role+"_scale_type", defaultScaleType(role))

	enc := Encoding{
		FieldName:   field,
		DisplayName: strOr(cfg, role+"_display_name", field),
	}

	if role == "color" {
		enc.Scale = buildColorScale(scaleType, cfg)
		if title, ok := cfgString(cfg, "legend_title"); ok {
			enc.Legend = &Legend{Title: title}
		}
	} else {
		scale := &Scale{Type: scaleType}
		if scaleType == ScaleCategorical {
			if by, ok := cfgString(cfg, role+"_sort"); ok {
				scale.Sort = &Sort{By: by}
			}
		}
		enc.Scale = scale
	}

	if title, ok := cfgString(cfg, role+"_axis_title"); ok {
		enc.Axis = &Axis{Title: title}
	}

	return enc
}

// buildColorScale constructs a color-channel scale. Quantitative scales
// get a colorRamp when a color_scheme is configured; categorical scales
// get explicit value-to-color mappings when color_mappings is configured.
func buildColorScale(scaleType string, cfg map[string]any) *Scale {
	scale := &Scale{Type: scaleType}

	if scaleType == ScaleQuantitative {
		if scheme, ok := cfgString(cfg, "color_scheme"); ok {
			scale.ColorRamp = &ColorRamp{Mode: "scheme", Scheme: scheme}
		}
	}

	if scaleType == ScaleCategorical {
		if raw, ok := cfgList(cfg, "color_mappings"); ok {
			for _, entry := range raw {
				m, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				color, _ := m["color"].(string)
				scale.Mappings = append(scale.Mappings, ColorMapping{
					Value: m["value"],
					Color: color,
				})
			}
		}
	}

	return scale
}

// buildFrame returns the title frame when the config carries a title,
// nil otherwise. showTitle defaults to true.
func buildFrame(cfg map[string]any) *Frame {
	title, ok := cfgString(cfg, "title")
	if !ok {
		return nil
	}
	return &Frame{Title: title, ShowTitle: cfgBool(cfg, "show_title", true)}
}
