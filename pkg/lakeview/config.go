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
	"strings"
	"unicode"
)

// Typed accessors over the loosely-typed widget config map. Config maps
// usually arrive from JSON, so numbers are float64; the int accessor
// accepts both.

func cfgString(cfg map[string]any, key string) (string, bool) {
	v, ok := cfg[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func strOr(cfg map[string]any, key, fallback string) string {
	if s, ok := cfgString(cfg, key); ok {
		return s
	}
	return fallback
}

func cfgBool(cfg map[string]any, key string, def bool) bool {
	if v, ok := cfg[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func cfgInt(cfg map[string]any, key string, def int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func cfgFloat(cfg map[string]any, key string) (float64, bool) {
	switch v := cfg[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func cfgList(cfg map[string]any, key string) ([]any, bool) {
	v, ok := cfg[key]
	if !ok {
		return nil, false
	}
	l, ok := v.([]any)
	return l, ok
}

// cfgStrings extracts a list of strings, skipping non-string entries.
func cfgStrings(cfg map[string]any, key string) []string {
	l, ok := cfgList(cfg, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// titleCase upper-cases the first letter of every alphabetic run, e.g.
// "sales region" -> "Sales Region", "state_name" -> "State_Name".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevAlpha := false
	for _, r := range s {
		alpha := unicode.IsLetter(r)
		switch {
		case alpha && !prevAlpha:
			b.WriteRune(unicode.ToUpper(r))
		case alpha:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevAlpha = alpha
	}
	return b.String()
}

// humanize turns a snake_case field name into a title-cased label,
// e.g. "sales_region" -> "Sales Region".
func humanize(field string) string {
	return titleCase(strings.ReplaceAll(field, "_", " "))
}
