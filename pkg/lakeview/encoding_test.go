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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEncodingDefaults(t *testing.T) {
	enc := BuildEncoding("region", map[string]any{}, "x")

	assert.Equal(t, "region", enc.FieldName)
	assert.Equal(t, "region", enc.DisplayName)
	require.NotNil(t, enc.Scale)
	assert.Equal(t, ScaleCategorical, enc.Scale.Type)
	assert.Nil(t, enc.Axis)
	assert.Nil(t, enc.Legend)
}

func TestBuildEncodingScaleDefaultsByRole(t *testing.T) {
	assert.Equal(t, ScaleCategorical, BuildEncoding("f", map[string]any{}, "x").Scale.Type)
	assert.Equal(t, ScaleQuantitative, BuildEncoding("f", map[string]any{}, "y").Scale.Type)
	assert.Equal(t, ScaleCategorical, BuildEncoding("f", map[string]any{}, "color").Scale.Type)
	assert.Equal(t, ScaleQuantitative, BuildEncoding("f", map[string]any{}, "size").Scale.Type)
}

func TestBuildEncodingConfigOverrides(t *testing.T) {
	cfg := map[string]any{
		"x_scale_type":   ScaleTemporal,
		"x_display_name": "Order Date",
		"x_axis_title":   "Date",
	}
	enc := BuildEncoding("order_date", cfg, "x")

	assert.Equal(t, ScaleTemporal, enc.Scale.Type)
	assert.Equal(t, "Order Date", enc.DisplayName)
	require.NotNil(t, enc.Axis)
	assert.Equal(t, "Date", enc.Axis.Title)
}

func TestBuildEncodingCategoricalSort(t *testing.T) {
	enc := BuildEncoding("region", map[string]any{"x_sort": "y-reversed"}, "x")
	require.NotNil(t, enc.Scale.Sort)
	assert.Equal(t, "y-reversed", enc.Scale.Sort.By)

	// Sort only applies to categorical scales.
	enc = BuildEncoding("amount", map[string]any{"y_sort": "x"}, "y")
	assert.Nil(t, enc.Scale.Sort)
}

func TestBuildEncodingColorRamp(t *testing.T) {
	cfg := map[string]any{
		"color_scale_type": ScaleQuantitative,
		"color_scheme":     "viridis",
		"legend_title":     "Revenue",
	}
	enc := BuildEncoding("revenue", cfg, "color")

	require.NotNil(t, enc.Scale.ColorRamp)
	assert.Equal(t, "scheme", enc.Scale.ColorRamp.Mode)
	assert.Equal(t, "viridis", enc.Scale.ColorRamp.Scheme)
	require.NotNil(t, enc.Legend)
	assert.Equal(t, "Revenue", enc.Legend.Title)
}

func TestBuildEncodingColorMappings(t *testing.T) {
	cfg := map[string]any{
		"color_mappings": []any{
			map[string]any{"value": "high", "color": "#ff0000"},
			map[string]any{"value": "low", "color": "#00ff00"},
		},
	}
	enc := BuildEncoding("severity", cfg, "color")

	require.Len(t, enc.Scale.Mappings, 2)
	assert.Equal(t, "high", enc.Scale.Mappings[0].Value)
	assert.Equal(t, "#ff0000", enc.Scale.Mappings[0].Color)
	assert.Nil(t, enc.Scale.ColorRamp)
}

func TestBuildFrame(t *testing.T) {
	assert.Nil(t, buildFrame(map[string]any{}))

	frame := buildFrame(map[string]any{"title": "Sales"})
	require.NotNil(t, frame)
	assert.Equal(t, "Sales", frame.Title)
	assert.True(t, frame.ShowTitle)

	frame = buildFrame(map[string]any{"title": "Sales", "show_title": false})
	require.NotNil(t, frame)
	assert.False(t, frame.ShowTitle)
}
