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

// geo_type values map to a Lakeview geographic role and an admin-level
// key under which the location field is nested.
var geoRoles = map[string]string{
	"country": "admin0-unit-code",
	"state":   "admin1-unit-code",
	"county":  "admin2-unit-code",
	"zipcode": "zipcode",
}

var adminLevels = map[string]string{
	"country": "admin0",
	"state":   "admin1",
	"county":  "admin2",
	"zipcode": "zipcode",
}

// RegionField is the location binding nested under a choropleth region's
// admin level.
type RegionField struct {
	FieldName      string `json:"fieldName"`
	Type           string `json:"type"`
	GeographicRole string `json:"geographicRole"`
	DisplayName    string `json:"displayName,omitempty"`
}

// buildChoroplethWidget nests the location field under
// region.<admin_level> with the geographic role derived from geo_type
// (country/state/county/zipcode, defaulting to state).
func buildChoroplethWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if color, ok := cfgString(cfg, "color_field"); ok {
		encodings["color"] = BuildEncoding(color, cfg, "color")
	}

	if location, ok := cfgString(cfg, "location_field"); ok {
		geoType := strOr(cfg, "geo_type", "state")

		role, ok := geoRoles[geoType]
		if !ok {
			role = geoRoles["state"]
		}
		level, ok := adminLevels[geoType]
		if !ok {
			level = adminLevels["state"]
		}

		encodings["region"] = map[string]any{
			"regionType": "mapbox-v4-admin",
			level: RegionField{
				FieldName:      location,
				Type:           "field",
				GeographicRole: role,
				DisplayName:    strOr(cfg, "location_display_name", titleCase(location)),
			},
		}
	}

	return chartWidget(TypeChoroplethMap, encodings, wc, datasets), nil
}

// buildSymbolMapWidget plots latitude/longitude points with optional
// size and color channels.
func buildSymbolMapWidget(wc WidgetConfig, datasets []Dataset) (*WidgetSpec, error) {
	cfg := wc.Config
	encodings := map[string]any{}

	if lat, ok := cfgString(cfg, "latitude_field"); ok {
		encodings["latitude"] = ValueEncoding{
			FieldName:   lat,
			DisplayName: strOr(cfg, "latitude_display_name", "Latitude"),
		}
	}
	if lon, ok := cfgString(cfg, "longitude_field"); ok {
		encodings["longitude"] = ValueEncoding{
			FieldName:   lon,
			DisplayName: strOr(cfg, "longitude_display_name", "Longitude"),
		}
	}

	if size, ok := cfgString(cfg, "size_field"); ok {
		encodings["size"] = Encoding{
			FieldName:   size,
			Scale:       &Scale{Type: ScaleQuantitative},
			DisplayName: strOr(cfg, "size_display_name", size),
		}
	}

	if color, ok := cfgString(cfg, "color_field"); ok {
		scaleType := strOr(cfg, "color_scale_type", ScaleCategorical)
		encodings["color"] = Encoding{
			FieldName:   color,
			Scale:       buildColorScale(scaleType, cfg),
			DisplayName: strOr(cfg, "color_display_name", color),
		}
	}

	return chartWidget(TypeSymbolMap, encodings, wc, datasets), nil
}
