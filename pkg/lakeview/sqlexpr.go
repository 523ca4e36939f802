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
	"fmt"
	"strings"
)

// AggregationExpr returns an aggregate expression over a backtick-quoted
// field, e.g. SUM(`revenue`). The function name is upper-cased.
func AggregationExpr(function, field string) string {
	return fmt.Sprintf("%s(`%s`)", strings.ToUpper(function), field)
}

// DateTruncExpr returns a DATE_TRUNC expression for time-series bucketing,
// e.g. DATE_TRUNC("MONTH", `order_date`).
func DateTruncExpr(interval, field string) string {
	return fmt.Sprintf("DATE_TRUNC(%q, `%s`)", strings.ToUpper(interval), field)
}

// BinExpr returns a BIN_FLOOR expression used by histogram queries to
// bucket a numeric field into fixed-width bins.
func BinExpr(field string, binWidth int) string {
	return fmt.Sprintf("BIN_FLOOR(`%s`, %d)", field, binWidth)
}

// CountStarExpr returns the count-all expression used as the default
// measure, e.g. for histogram y-axes.
func CountStarExpr() string {
	return "COUNT(`*`)"
}

// expression fragments that indicate something other than a read-only
// projection. This is an advisory lint, not a security boundary: the
// expressions end up inside dashboard definitions executed with the
// viewer's privileges.
var disallowedFragments = []string{"DROP", "DELETE", "UPDATE", "INSERT", "--", ";"}

// ValidateExpression checks a field expression for obvious problems:
// statement-like keywords, comment markers, and unquoted column
// references. COUNT(`*`) is exempt from the backtick requirement.
// Returns nil if the expression looks safe to embed.
func ValidateExpression(expr string) error {
	upper := strings.ToUpper(expr)
	for _, frag := range disallowedFragments {
		if strings.Contains(upper, frag) {
			return fmt.Errorf("expression contains disallowed fragment %q: %s", frag, expr)
		}
	}
	if expr == CountStarExpr() {
		return nil
	}
	if !strings.Contains(expr, "`") {
		return fmt.Errorf("expression must quote column references with backticks: %s", expr)
	}
	return nil
}
