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

// Layout strategy names accepted by AutoLayout.
const (
	LayoutGrid       = "grid"
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
	LayoutMasonry    = "masonry"
)

const (
	// GridColumns is the dashboard canvas width in grid units.
	GridColumns = 12

	// MaxLayoutWidgets caps how many widgets a single layout pass will
	// arrange.
	MaxLayoutWidgets = 100

	defaultWidgetWidth  = 6
	defaultWidgetHeight = 4
)

// Position is a widget's placement on the dashboard grid.
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size is a widget's declared footprint. Zero values fall back to the
// layout defaults (6x4).
type Size struct {
	Width  int
	Height int
}

func (s Size) orDefaults(defaultHeight int) (int, int) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = defaultWidgetWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// AutoLayout arranges widgets into non-overlapping grid positions under
// the named strategy:
//
//   - grid: left-to-right row fill with wraparound; rows advance by the
//     tallest widget seen in the row.
//   - vertical: full-width single-column stack.
//   - horizontal: one row of equal-width columns.
//   - masonry: three fixed-width columns, each widget dropped into the
//     currently shortest column.
//
// The returned slice is index-aligned with sizes.
func AutoLayout(sizes []Size, layoutType string) ([]Position, error) {
	if len(sizes) > MaxLayoutWidgets {
		return nil, fmt.Errorf("cannot arrange %d widgets: maximum is %d", len(sizes), MaxLayoutWidgets)
	}

	switch layoutType {
	case LayoutGrid:
		return layoutGrid(sizes), nil
	case LayoutVertical:
		return layoutVertical(sizes), nil
	case LayoutHorizontal:
		return layoutHorizontal(sizes), nil
	case LayoutMasonry:
		return layoutMasonry(sizes), nil
	default:
		return nil, fmt.Errorf("unknown layout type %q: use grid, vertical, horizontal, or masonry", layoutType)
	}
}

func layoutGrid(sizes []Size) []Position {
	positions := make([]Position, 0, len(sizes))
	x, y := 0, 0
	maxHeight := defaultWidgetHeight

	for _, size := range sizes {
		w, h := size.orDefaults(defaultWidgetHeight)
		if w > GridColumns {
			w = GridColumns
		}

		if x+w > GridColumns {
			x = 0
			y += maxHeight
			maxHeight = h
		} else if h > maxHeight {
			maxHeight = h
		}

		positions = append(positions, Position{X: x, Y: y, Width: w, Height: h})
		x += w
	}

	return positions
}

func layoutVertical(sizes []Size) []Position {
	positions := make([]Position, 0, len(sizes))
	y := 0

	for _, size := range sizes {
		_, h := size.orDefaults(defaultWidgetHeight)
		positions = append(positions, Position{X: 0, Y: y, Width: GridColumns, Height: h})
		y += h
	}

	return positions
}

func layoutHorizontal(sizes []Size) []Position {
	positions := make([]Position, 0, len(sizes))
	if len(sizes) == 0 {
		return positions
	}

	// Taller default than the other strategies: a single row gets the
	// whole canvas height to work with.
	const horizontalDefaultHeight = 8

	width := GridColumns / len(sizes)
	if width < 1 {
		width = 1
	}

	for i, size := range sizes {
		_, h := size.orDefaults(horizontalDefaultHeight)
		positions = append(positions, Position{X: i * width, Y: 0, Width: width, Height: h})
	}

	return positions
}

func layoutMasonry(sizes []Size) []Position {
	positions := make([]Position, 0, len(sizes))

	const columnCount = 3
	const columnWidth = GridColumns / columnCount

	var columns [columnCount]int
	for _, size := range sizes {
		_, h := size.orDefaults(defaultWidgetHeight)

		shortest := 0
		for i := 1; i < columnCount; i++ {
			if columns[i] < columns[shortest] {
				shortest = i
			}
		}

		positions = append(positions, Position{
			X:      shortest * columnWidth,
			Y:      columns[shortest],
			Width:  columnWidth,
			Height: h,
		})
		columns[shortest] += h
	}

	return positions
}
